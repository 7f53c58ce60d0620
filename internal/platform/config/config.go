package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration surface, loaded once at startup and
// treated as immutable for the lifetime of the process. Every component gets
// the slice of it that it needs; there is no ambient global.
type Config struct {
	ActiveDirectory ActiveDirectory `yaml:"active_directory"`
	Reminders       Reminders       `yaml:"reminders"`
	Notifications   Notifications   `yaml:"notifications"`
	Schedule        Schedule        `yaml:"schedule"`
	Logging         Logging         `yaml:"logging"`
	HTTP            HTTP            `yaml:"http"`
}

// ActiveDirectory captures connection and policy settings for the directory.
type ActiveDirectory struct {
	Server       string `yaml:"server"`
	BindUser     string `yaml:"bind_user"`
	BindPassword string `yaml:"bind_password"`
	BaseDN       string `yaml:"base_dn"`

	// MaxPasswordAgeDays is the domain password age policy. Defaults to the
	// common AD default of 42 days.
	MaxPasswordAgeDays int `yaml:"max_password_age_days"`
}

// Reminders configures which days-remaining values trigger notification and
// the message text used for each.
type Reminders struct {
	WarningDays    []int          `yaml:"warning_days"`
	Messages       map[int]string `yaml:"messages"`
	DefaultMessage string         `yaml:"default_message"`
}

// EmailChannel configures the per-user SMTP channel.
type EmailChannel struct {
	Enabled     bool   `yaml:"enabled"`
	SMTPServer  string `yaml:"smtp_server"`
	SMTPPort    int    `yaml:"smtp_port"`
	FromAddress string `yaml:"from_address"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
}

// TeamsChannel configures the Teams broadcast channel.
type TeamsChannel struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
	MaxListed  int    `yaml:"max_listed"`
	ActionURL  string `yaml:"action_url"`
}

// SlackChannel configures the Slack broadcast channel.
type SlackChannel struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
	MaxListed  int    `yaml:"max_listed"`
}

// Notifications groups the delivery channels plus dispatch tuning.
type Notifications struct {
	Email EmailChannel `yaml:"email"`
	Teams TeamsChannel `yaml:"teams"`
	Slack SlackChannel `yaml:"slack"`

	// Concurrency bounds parallel delivery attempts within one run.
	Concurrency int `yaml:"concurrency"`
}

// Schedule holds the daily run time in "HH:MM" (24h) form.
type Schedule struct {
	RunTime string `yaml:"run_time"`
}

// Logging controls the slog level and an optional file sink.
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// HTTP configures the admin/metrics listener.
type HTTP struct {
	Addr       string `yaml:"addr"`
	AdminToken string `yaml:"admin_token"`
}

var runTimeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// Default returns the configuration used before the file and environment are
// applied.
func Default() Config {
	return Config{
		ActiveDirectory: ActiveDirectory{
			MaxPasswordAgeDays: 42,
		},
		Reminders: Reminders{
			DefaultMessage: "Your password is expiring soon. Please change it.",
		},
		Notifications: Notifications{
			Email: EmailChannel{SMTPPort: 587},
			Teams: TeamsChannel{
				MaxListed: 5,
				ActionURL: "https://portal.azure.com",
			},
			Slack:       SlackChannel{MaxListed: 10},
			Concurrency: 4,
		},
		Schedule: Schedule{RunTime: "08:00"},
		Logging:  Logging{Level: "info"},
		HTTP:     HTTP{Addr: ":8080"},
	}
}

// Load reads the YAML file at path over Default, applies environment
// overrides for secrets, and validates the result. Errors here are fatal for
// startup; there is no degraded mode without a usable configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv lets secrets come from the environment so the file can be checked
// in without credentials.
func (c *Config) applyEnv() {
	c.ActiveDirectory.BindPassword = envOrDefault("PASSWATCH_BIND_PASSWORD", c.ActiveDirectory.BindPassword)
	c.Notifications.Email.Password = envOrDefault("PASSWATCH_SMTP_PASSWORD", c.Notifications.Email.Password)
	c.Notifications.Teams.WebhookURL = envOrDefault("PASSWATCH_TEAMS_WEBHOOK_URL", c.Notifications.Teams.WebhookURL)
	c.Notifications.Slack.WebhookURL = envOrDefault("PASSWATCH_SLACK_WEBHOOK_URL", c.Notifications.Slack.WebhookURL)
	c.HTTP.AdminToken = envOrDefault("PASSWATCH_ADMIN_TOKEN", c.HTTP.AdminToken)
}

// Validate checks the invariants the rest of the system assumes. A channel
// that is disabled may leave its settings empty; an enabled one may not.
func (c Config) Validate() error {
	var errs []error

	ad := c.ActiveDirectory
	if ad.Server == "" {
		errs = append(errs, errors.New("active_directory.server is required"))
	}
	if ad.BindUser == "" {
		errs = append(errs, errors.New("active_directory.bind_user is required"))
	}
	if ad.BindPassword == "" {
		errs = append(errs, errors.New("active_directory.bind_password is required"))
	}
	if ad.BaseDN == "" {
		errs = append(errs, errors.New("active_directory.base_dn is required"))
	}
	if ad.MaxPasswordAgeDays <= 0 {
		errs = append(errs, errors.New("active_directory.max_password_age_days must be positive"))
	}

	for _, d := range c.Reminders.WarningDays {
		if d < 0 {
			errs = append(errs, fmt.Errorf("reminders.warning_days contains negative value %d", d))
		}
	}

	if e := c.Notifications.Email; e.Enabled {
		if e.SMTPServer == "" {
			errs = append(errs, errors.New("notifications.email.smtp_server is required when email is enabled"))
		}
		if e.FromAddress == "" {
			errs = append(errs, errors.New("notifications.email.from_address is required when email is enabled"))
		}
	}
	if t := c.Notifications.Teams; t.Enabled && t.WebhookURL == "" {
		errs = append(errs, errors.New("notifications.teams.webhook_url is required when teams is enabled"))
	}
	if s := c.Notifications.Slack; s.Enabled && s.WebhookURL == "" {
		errs = append(errs, errors.New("notifications.slack.webhook_url is required when slack is enabled"))
	}
	if c.Notifications.Concurrency < 1 {
		errs = append(errs, errors.New("notifications.concurrency must be at least 1"))
	}

	if !runTimeRe.MatchString(c.Schedule.RunTime) {
		errs = append(errs, fmt.Errorf("schedule.run_time %q is not in HH:MM form", c.Schedule.RunTime))
	}

	return errors.Join(errs...)
}

func envOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
