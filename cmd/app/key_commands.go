package main

import (
	"context"
	"crypto/rand"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accessvault/cmd/app/commands"
	"github.com/allisson/accessvault/internal/app"
	"github.com/allisson/accessvault/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-static-secret",
			Usage: "Generate a random secret for the static-secret key provider",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateStaticSecret(rand.Reader, commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
		{
			Name:  "rewrap-credentials",
			Usage: "Reencrypt stored credential secrets under the current key of a provider",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "target",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Target provider (cloud-kms or static-secret)",
				},
				&cli.IntFlag{
					Name:    "batch-size",
					Aliases: []string{"b"},
					Value:   100,
					Usage:   "Number of credentials to process per batch",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.AccessCredentialUseCase()
				if err != nil {
					return err
				}

				return commands.RunRewrapCredentials(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("target"),
					int(cmd.Int("batch-size")),
					cmd.String("format"),
				)
			},
		},
	}
}
