package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/starford/vaultboot/internal/history"
	"github.com/starford/vaultboot/internal/render"
)

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List previously created vaults",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of vaults to list",
				Value: history.DefaultLimit,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			records, err := e.Service().History(ctx, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			render.HistoryTable(stdout(cmd), records)
			return nil
		},
	}
}
