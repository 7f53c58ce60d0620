package notify

import (
	"context"
	"fmt"
	"strings"

	goteamsnotify "github.com/atc0005/go-teams-notify/v2"
	"github.com/atc0005/go-teams-notify/v2/messagecard"

	"passwatch/internal/expiry"
	"passwatch/internal/platform/config"
)

const teamsThemeColor = "FF6B35"

// TeamsChannel posts one MessageCard summarizing the whole dispatch set to a
// Teams incoming webhook.
type TeamsChannel struct {
	cfg    config.TeamsChannel
	client *goteamsnotify.TeamsClient
}

func NewTeamsChannel(cfg config.TeamsChannel) *TeamsChannel {
	return &TeamsChannel{cfg: cfg, client: goteamsnotify.NewTeamsClient()}
}

func (c *TeamsChannel) Name() string { return "teams" }

func (c *TeamsChannel) Enabled() bool { return c.cfg.Enabled }

func (c *TeamsChannel) SendSummary(ctx context.Context, groups []expiry.Group, total int) error {
	card := messagecard.NewMessageCard()
	card.Title = "Password Expiration Alerts"
	card.ThemeColor = teamsThemeColor
	card.Text = summaryText(groups, total, c.cfg.MaxListed)

	if c.cfg.ActionURL != "" {
		action, err := messagecard.NewPotentialAction(
			messagecard.PotentialActionOpenURIType, "View AD Users")
		if err != nil {
			return fmt.Errorf("build card action: %w", err)
		}
		action.PotentialActionOpenURI.Targets = []messagecard.PotentialActionOpenURITarget{
			{OS: "default", URI: c.cfg.ActionURL},
		}
		if err := card.AddPotentialAction(action); err != nil {
			return fmt.Errorf("build card action: %w", err)
		}
	}

	return c.client.SendWithContext(ctx, c.cfg.WebhookURL, card)
}

func summaryText(groups []expiry.Group, total, maxListed int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%d %s** have passwords expiring soon:\n\n",
		total, pluralUsers(total))

	for _, g := range groups {
		fmt.Fprintf(&b, "**%s:** %d %s\n", g.Title(), len(g.Alerts), pluralUsers(len(g.Alerts)))
		b.WriteString(g.Summary(maxListed))
		b.WriteString("\n")
	}
	return b.String()
}

func pluralUsers(n int) string {
	if n == 1 {
		return "user"
	}
	return "users"
}
