package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/starford/vaultboot/internal/render"
	"github.com/starford/vaultboot/internal/report"
)

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List the available vault templates",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Print the Markdown list instead of a table",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ts := e.Service().Templates()
			if !cmd.Bool("markdown") {
				render.TemplateTable(stdout(cmd), ts)
				return nil
			}
			md, err := report.Templates(ts)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, md)
		},
	}
}
