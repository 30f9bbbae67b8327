package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/covidash/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Auth holds query token configuration
type Auth struct {
	TokenSecret string
	Issuer      string
}

// Flags returns CLI flags for Auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token-secret",
			Usage:       "HS256 secret for query tokens (at least 32 bytes). Free-text queries are disabled without it",
			Category:    "Auth",
			Sources:     cli.EnvVars("COVIDASH_TOKEN_SECRET"),
			Destination: &a.TokenSecret,
		},
		&cli.StringFlag{
			Name:        "token-issuer",
			Usage:       "Issuer claim of query tokens",
			Category:    "Auth",
			Value:       usecase.DefaultTokenIssuer,
			Sources:     cli.EnvVars("COVIDASH_TOKEN_ISSUER"),
			Destination: &a.Issuer,
		},
	}
}

// IsConfigured checks if a token secret is set
func (a *Auth) IsConfigured() bool {
	return a.TokenSecret != ""
}

// Configure creates the auth use case. It returns nil when no secret is configured.
func (a *Auth) Configure(ctx context.Context) (usecase.AuthUseCase, error) {
	if !a.IsConfigured() {
		ctxlog.From(ctx).Warn("Token secret is not configured, free-text queries are disabled")
		return nil, nil
	}
	return usecase.NewAuth([]byte(a.TokenSecret), usecase.WithIssuer(a.Issuer))
}

// LogValue returns structured log value
func (a Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_token_secret", a.TokenSecret != ""),
		slog.String("issuer", a.Issuer),
	)
}
