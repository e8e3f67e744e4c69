package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accessvault/cmd/app/commands"
	"github.com/allisson/accessvault/internal/app"
	"github.com/allisson/accessvault/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "show-config",
			Usage: "Print the effective configuration with secrets masked",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunShowConfig(config.Load(), commands.DefaultIO().Writer)
			},
		},
	}
}
