package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	slackSvc "github.com/secmon-lab/covidash/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	WebhookURL string
	OAuthToken string
	ChannelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL notified when a comment is added",
			Category:    "Slack",
			Sources:     cli.EnvVars("COVIDASH_SLACK_WEBHOOK_URL"),
			Destination: &s.WebhookURL,
		},
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack bot token, used with --slack-channel-id instead of a webhook",
			Category:    "Slack",
			Sources:     cli.EnvVars("COVIDASH_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID for bot notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("COVIDASH_SLACK_CHANNEL_ID"),
			Destination: &s.ChannelID,
		},
	}
}

// IsConfigured checks if either notification method is set
func (s *Slack) IsConfigured() bool {
	return s.WebhookURL != "" || s.OAuthToken != ""
}

// Configure creates a comment notifier. It returns nil when Slack is not configured.
func (s *Slack) Configure(ctx context.Context) (interfaces.Notifier, error) {
	if !s.IsConfigured() {
		ctxlog.From(ctx).Debug("Slack not configured, comment notifications are disabled")
		return nil, nil
	}

	if s.WebhookURL != "" {
		n, err := slackSvc.NewWebhook(s.WebhookURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure slack webhook")
		}
		return n, nil
	}

	n, err := slackSvc.NewBot(s.OAuthToken, s.ChannelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure slack bot")
	}
	return n, nil
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_webhook_url", s.WebhookURL != ""),
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel_id", s.ChannelID),
	)
}
