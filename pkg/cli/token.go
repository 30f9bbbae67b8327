package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/cli/config"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdToken() *cli.Command {
	var (
		authCfg config.Auth
		subject string
		scopes  []string
		ttl     time.Duration
	)

	flags := joinFlags(
		authCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "subject",
				Usage:       "Subject (user) the token is issued to",
				Required:    true,
				Destination: &subject,
			},
			&cli.StringSliceFlag{
				Name:        "scope",
				Usage:       "Granted scope, repeatable",
				Value:       []string{model.ScopeQuery},
				Destination: &scopes,
			},
			&cli.DurationFlag{
				Name:        "ttl",
				Usage:       "Token lifetime",
				Value:       24 * time.Hour,
				Destination: &ttl,
			},
		},
	)

	return &cli.Command{
		Name:  "token",
		Usage: "Issue a query token and print it to stdout",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if !authCfg.IsConfigured() {
				return goerr.New("token secret is required to issue tokens")
			}

			authUC, err := authCfg.Configure(ctx)
			if err != nil {
				return err
			}

			token, err := authUC.IssueToken(ctx, types.UserID(subject), scopes, ttl)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(c.Root().Writer, token)
			return err
		},
	}
}
