package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/vaultboot/internal/report"
	"github.com/starford/vaultboot/internal/watch"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Re-analyze a local vault whenever its configuration changes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "Vault directory",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "debounce",
				Usage: "Quiet period before re-analyzing",
				Value: watch.DefaultDebounce.String(),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			debounce, err := time.ParseDuration(cmd.String("debounce"))
			if err != nil {
				return err
			}
			e, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			dir := cmd.String("dir")
			logger := e.Logger()
			analyze := func() {
				in, err := e.Service().AnalyzeLocal(dir)
				if err != nil {
					logger.Warn("watch: analyze failed", slog.String("path", dir), slog.String("error", err.Error()))
					return
				}
				md, err := report.Analysis(in)
				if err == nil {
					err = printMarkdown(cmd, md)
				}
				if err != nil {
					logger.Error("watch: report failed", slog.String("error", err.Error()))
				}
			}

			analyze()
			return watch.New(dir, debounce, logger).Run(ctx, func(paths []string) {
				logger.Info("watch: configuration changed", slog.Any("paths", paths))
				analyze()
			})
		},
	}
}
