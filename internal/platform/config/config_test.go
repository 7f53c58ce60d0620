package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
active_directory:
  server: ldap://dc01.corp.example:389
  bind_user: CN=svc-passwatch,OU=Service,DC=corp,DC=example
  bind_password: hunter2
  base_dn: DC=corp,DC=example
reminders:
  warning_days: [14, 7, 3, 1]
  messages:
    3: "Three days left. Change it now."
    1: "Final warning!"
notifications:
  email:
    enabled: true
    smtp_server: smtp.corp.example
    smtp_port: 587
    from_address: it-alerts@corp.example
    username: it-alerts
    password: s3cret
  teams:
    enabled: true
    webhook_url: https://corp.webhook.office.com/x
  slack:
    enabled: false
schedule:
  run_time: "08:30"
logging:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadValidFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "ldap://dc01.corp.example:389", cfg.ActiveDirectory.Server)
	assert.Equal(t, 42, cfg.ActiveDirectory.MaxPasswordAgeDays, "default policy applies")
	assert.Equal(t, []int{14, 7, 3, 1}, cfg.Reminders.WarningDays)
	assert.Equal(t, "Three days left. Change it now.", cfg.Reminders.Messages[3])
	assert.Equal(t, "Your password is expiring soon. Please change it.", cfg.Reminders.DefaultMessage)
	assert.True(t, cfg.Notifications.Teams.Enabled)
	assert.Equal(t, 5, cfg.Notifications.Teams.MaxListed, "default truncation applies")
	assert.Equal(t, 10, cfg.Notifications.Slack.MaxListed)
	assert.Equal(t, 4, cfg.Notifications.Concurrency)
	assert.Equal(t, "08:30", cfg.Schedule.RunTime)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "active_directory: ["))
	assert.Error(t, err)
}

func TestValidateMissingDirectorySettings(t *testing.T) {
	_, err := Load(writeConfig(t, "schedule:\n  run_time: \"08:00\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "active_directory.server is required")
	assert.Contains(t, err.Error(), "active_directory.base_dn is required")
}

func TestValidateEnabledChannelNeedsSettings(t *testing.T) {
	cfg := Default()
	cfg.ActiveDirectory = ActiveDirectory{
		Server: "ldap://dc", BindUser: "u", BindPassword: "p", BaseDN: "dc=x",
		MaxPasswordAgeDays: 42,
	}
	cfg.Notifications.Slack.Enabled = true

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notifications.slack.webhook_url is required")
}

func TestValidateRunTimeFormat(t *testing.T) {
	cfg := Default()
	cfg.ActiveDirectory = ActiveDirectory{
		Server: "ldap://dc", BindUser: "u", BindPassword: "p", BaseDN: "dc=x",
		MaxPasswordAgeDays: 42,
	}

	for _, bad := range []string{"25:00", "08:60", "8am", ""} {
		cfg.Schedule.RunTime = bad
		assert.Error(t, cfg.Validate(), "run_time %q should be rejected", bad)
	}
	cfg.Schedule.RunTime = "23:59"
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverridesSecrets(t *testing.T) {
	t.Setenv("PASSWATCH_BIND_PASSWORD", "from-env")
	t.Setenv("PASSWATCH_SLACK_WEBHOOK_URL", "https://hooks.slack.example/env")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ActiveDirectory.BindPassword)
	assert.Equal(t, "https://hooks.slack.example/env", cfg.Notifications.Slack.WebhookURL)
}
