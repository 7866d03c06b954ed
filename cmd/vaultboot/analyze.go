package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/starford/vaultboot/internal/report"
	"github.com/starford/vaultboot/internal/vault"
)

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := cmd.Args().First()
	if v == "" {
		return "", fmt.Errorf("missing <%s> argument", name)
	}
	return v, nil
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Report on an external vault configuration",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Analyze a vault on disk instead of cloning a url",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			var in *vault.Inspection
			if dir := cmd.String("dir"); dir != "" {
				in, err = e.Service().AnalyzeLocal(dir)
			} else {
				url, argErr := requireArg(cmd, "url")
				if argErr != nil {
					return argErr
				}
				in, err = e.Service().Analyze(ctx, url)
			}
			if err != nil {
				return err
			}
			md, err := report.Analysis(in)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, md)
		},
	}
}
