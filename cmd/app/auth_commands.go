package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accessvault/cmd/app/commands"
	"github.com/allisson/accessvault/internal/app"
	"github.com/allisson/accessvault/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-bearer-token",
			Usage: "Sign a bearer token for an account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "account",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Account id placed in the sub claim",
				},
				&cli.StringFlag{
					Name:    "environment",
					Aliases: []string{"e"},
					Value:   "test",
					Usage:   "Environment claim: 'test' or 'live'",
				},
				&cli.DurationFlag{
					Name:  "ttl",
					Usage: "Token lifetime (defaults to BEARER_TOKEN_EXPIRATION_SECONDS)",
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

				ttl := cmd.Duration("ttl")
				if ttl == 0 {
					ttl = cfg.BearerTokenExpiration
				}

				return commands.RunCreateBearerToken(
					container.TokenSigner(),
					commands.DefaultIO().Writer,
					cmd.String("account"),
					cmd.String("environment"),
					ttl,
					cmd.String("format"),
					time.Now(),
				)
			},
		},
	}
}
