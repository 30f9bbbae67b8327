package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Notifier posts a message to Slack when a comment is added. Either an incoming webhook
// or a bot token with a channel is used.
type Notifier struct {
	webhookURL string
	client     *slack.Client
	channelID  string
	apiURL     string
}

// Option configures Notifier
type Option func(*Notifier)

// WithAPIURL overrides the Slack API endpoint used by the bot client
func WithAPIURL(url string) Option {
	return func(n *Notifier) {
		n.apiURL = url
	}
}

// NewWebhook creates a Notifier that posts to an incoming webhook
func NewWebhook(webhookURL string) (*Notifier, error) {
	if webhookURL == "" {
		return nil, goerr.New("slack webhook URL is empty")
	}
	return &Notifier{webhookURL: webhookURL}, nil
}

// NewBot creates a Notifier that posts with a bot token
func NewBot(token, channelID string, opts ...Option) (*Notifier, error) {
	if token == "" || channelID == "" {
		return nil, goerr.New("slack token and channel are required",
			goerr.V("has_token", token != ""),
			goerr.V("channel", channelID))
	}

	n := &Notifier{channelID: channelID}
	for _, opt := range opts {
		opt(n)
	}

	var clientOpts []slack.Option
	if n.apiURL != "" {
		clientOpts = append(clientOpts, slack.OptionAPIURL(n.apiURL))
	}
	n.client = slack.New(token, clientOpts...)
	return n, nil
}

// NotifyComment implements interfaces.Notifier
func (n *Notifier) NotifyComment(ctx context.Context, doc *model.CommentDocument) error {
	if doc == nil || len(doc.Comments) == 0 {
		return goerr.New("comment document has no comment")
	}

	text := FallbackText(doc)
	blocks := BuildCommentBlocks(doc)

	if n.webhookURL != "" {
		msg := &slack.WebhookMessage{
			Text:   text,
			Blocks: &slack.Blocks{BlockSet: blocks},
		}
		if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
			return goerr.Wrap(err, "failed to post comment to Slack webhook", goerr.V("id", doc.ID))
		}
		return nil
	}

	if _, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(blocks...),
	); err != nil {
		return goerr.Wrap(err, "failed to post comment to Slack", goerr.V("id", doc.ID), goerr.V("channel", n.channelID))
	}
	return nil
}

// FallbackText is the plain text shown in notifications
func FallbackText(doc *model.CommentDocument) string {
	return fmt.Sprintf("Comment added for %s: %s", doc.Country, doc.Comments[0].Comment)
}

// BuildCommentBlocks renders the comment document as Block Kit blocks
func BuildCommentBlocks(doc *model.CommentDocument) []slack.Block {
	c := doc.Comments[0]

	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, "💬 Comment added for "+doc.Country.String(), true, false),
	)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Country:*\n"+doc.Country.String(), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*User:*\n"+c.UserID.String(), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Data point:*\n"+string(doc.DataPointID), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Months:*\n%d", len(doc.CountryData)), false, false),
	}

	return []slack.Block{
		header,
		slack.NewSectionBlock(nil, fields, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, "> "+c.Comment, false, false), nil, nil),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, "Added at "+c.TimeStamp+" UTC", false, false),
		),
	}
}

var _ interfaces.Notifier = (*Notifier)(nil) // Compile-time interface check
