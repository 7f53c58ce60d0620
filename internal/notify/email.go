package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"passwatch/internal/expiry"
	"passwatch/internal/platform/config"
)

const emailTemplate = "email.html.tmpl"

// Renderer produces message bodies from a template name and substitution
// values. The channel treats the result as opaque.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

// EmailChannel sends one rendered HTML mail per alert over SMTP with
// STARTTLS.
type EmailChannel struct {
	cfg      config.EmailChannel
	window   expiry.Window
	renderer Renderer
}

func NewEmailChannel(cfg config.EmailChannel, window expiry.Window, renderer Renderer) (*EmailChannel, error) {
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	return &EmailChannel{cfg: cfg, window: window, renderer: renderer}, nil
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Enabled() bool { return c.cfg.Enabled }

func (c *EmailChannel) Send(ctx context.Context, alert expiry.Alert) error {
	body, err := c.body(alert)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(c.cfg.FromAddress); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(alert.Email); err != nil {
		return fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("Password Expiration Reminder - %d days remaining", alert.DaysRemaining))
	msg.SetBodyString(mail.TypeTextHTML, body)

	client, err := c.newClient()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// body resolves the substitution values for one alert, including the
// configured message text for its specific days-remaining value.
func (c *EmailChannel) body(alert expiry.Alert) (string, error) {
	return c.renderer.Render(emailTemplate, map[string]any{
		"UserName":       alert.DisplayName,
		"DaysRemaining":  alert.DaysRemaining,
		"ExpirationDate": alert.ExpiresAt.Format("January 2, 2006"),
		"Message":        c.window.Message(alert.DaysRemaining),
	})
}

// newClient builds a fresh client per send; the go-mail client is not safe
// for the dispatcher's concurrent attempts.
func (c *EmailChannel) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(c.cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if c.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.cfg.Username),
			mail.WithPassword(c.cfg.Password),
		)
	}
	return mail.NewClient(c.cfg.SMTPServer, opts...)
}
