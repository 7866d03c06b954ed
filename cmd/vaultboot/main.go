package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/vaultboot/internal"
	"github.com/starford/vaultboot/internal/render"
	pkgconfig "github.com/starford/vaultboot/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func options(cmd *cli.Command) ([]internal.Option, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return []internal.Option{
		internal.WithConfig(cfg),
	}, nil
}

// openEngine wires the vault engine for one-shot commands.
func openEngine(cmd *cli.Command) (*internal.Engine, error) {
	opts, err := options(cmd)
	if err != nil {
		return nil, err
	}
	return internal.Open(opts...)
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// printMarkdown writes a report, styled unless --plain is set.
func printMarkdown(cmd *cli.Command, md string) error {
	out, err := render.Markdown(md, render.DefaultWidth, cmd.Bool("plain"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout(cmd), out)
	return err
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "vaultboot",
		Usage: "Bootstrap Obsidian vaults from templates or adopt existing configurations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Print reports as raw Markdown",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
			templatesCommand(),
			createCommand(),
			analyzeCommand(),
			adoptCommand(),
			watchCommand(),
			historyCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
