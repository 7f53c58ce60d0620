package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"passwatch/internal/expiry"
	"passwatch/internal/platform/config"
)

// SlackChannel posts one webhook message with a field per days-remaining
// group.
type SlackChannel struct {
	cfg config.SlackChannel
}

func NewSlackChannel(cfg config.SlackChannel) *SlackChannel {
	return &SlackChannel{cfg: cfg}
}

func (c *SlackChannel) Name() string { return "slack" }

func (c *SlackChannel) Enabled() bool { return c.cfg.Enabled }

func (c *SlackChannel) SendSummary(ctx context.Context, groups []expiry.Group, total int) error {
	fields := make([]slack.AttachmentField, 0, len(groups))
	for _, g := range groups {
		fields = append(fields, slack.AttachmentField{
			Title: g.Title(),
			Value: g.Summary(c.cfg.MaxListed),
			Short: true,
		})
	}

	msg := &slack.WebhookMessage{
		Text: "Password Expiration Alerts",
		Attachments: []slack.Attachment{{
			Color:  "warning",
			Title:  fmt.Sprintf("%d Users with Expiring Passwords", total),
			Fields: fields,
		}},
	}
	return slack.PostWebhookContext(ctx, c.cfg.WebhookURL, msg)
}
