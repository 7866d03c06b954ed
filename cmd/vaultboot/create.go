package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/report"
	"github.com/starford/vaultboot/internal/vault"
)

func vaultFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Aliases:  []string{"n"},
			Usage:    "Vault name, used as the directory name",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "Parent directory (defaults to vault.default_parent)",
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a vault from a template",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "template",
				Aliases:  []string{"t"},
				Usage:    "Template key (see templates)",
				Required: true,
			},
		}, vaultFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			created, err := e.Service().Create(ctx, vault.CreateRequest{
				Template: cmd.String("template"),
				Name:     cmd.String("name"),
				Path:     cmd.String("path"),
			})
			if err != nil {
				return err
			}
			md, err := report.Created(created)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, md)
		},
	}
}

func adoptCommand() *cli.Command {
	return &cli.Command{
		Name:      "adopt",
		Usage:     "Create a vault that adopts an external configuration",
		ArgsUsage: "<url>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "base-template",
				Usage: "Template for folders and starter notes",
				Value: catalog.DefaultTemplate,
			},
		}, vaultFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			url, err := requireArg(cmd, "url")
			if err != nil {
				return err
			}
			e, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			adopted, err := e.Service().Adopt(ctx, vault.AdoptRequest{
				URL:          url,
				Name:         cmd.String("name"),
				Path:         cmd.String("path"),
				BaseTemplate: cmd.String("base-template"),
			})
			if err != nil {
				return err
			}
			md, err := report.Adopted(adopted)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, md)
		},
	}
}
