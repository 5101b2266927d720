package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		envValue string
		want     string
	}{
		{"flag takes precedence", "/path/from/flag", "/path/from/env", "/path/from/flag"},
		{"env when no flag", "", "/path/from/env", "/path/from/env"},
		{"empty when neither", "", "", ""},
		{"whitespace flag", "  ", "/path/from/env", "/path/from/env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WEBHOOK_CONFIG", tt.envValue)
			got := ResolveConfigPath(tt.flag)
			assert.Equal(t, tt.want, got)
		})
	}
}

func requiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ROUTEROS_HOST", "router.lan")
	t.Setenv("ROUTEROS_USERNAME", "admin")
	t.Setenv("ROUTEROS_PASSWORD", "secret")
}

func TestLoadDefaults(t *testing.T) {
	requiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "router.lan", cfg.RouterOS.Host)
	assert.Equal(t, "admin", cfg.RouterOS.Username)
	assert.Equal(t, "secret", cfg.RouterOS.Password)
	assert.Equal(t, 8728, cfg.RouterOS.Port)
	assert.Equal(t, 10*time.Second, cfg.RouterOS.IdleTimeout)

	assert.Equal(t, "0.0.0.0", cfg.Webhook.Host)
	assert.Equal(t, 8888, cfg.Webhook.Port)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadMissingCredentialsFails(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	content := `
routeros:
  host: "router.lan"
  username: "admin"
  password: "secret"
  port: 8729
  idle_timeout: "30s"

webhook:
  host: "127.0.0.1"
  port: 9999

domain:
  include:
    - "example.com"
  regex_exclude: "^internal\\."

logging:
  level: "debug"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8729, cfg.RouterOS.Port)
	assert.Equal(t, 30*time.Second, cfg.RouterOS.IdleTimeout)
	assert.Equal(t, "127.0.0.1", cfg.Webhook.Host)
	assert.Equal(t, 9999, cfg.Webhook.Port)
	assert.Equal(t, []string{"example.com"}, cfg.Domain.Include)
	assert.Equal(t, "^internal\\.", cfg.Domain.RegexExclude)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	requiredEnv(t)
	_, err := Load("/nonexistent/path/to/config.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routeros:\n  port: [invalid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeInvalidWebhookPort(t *testing.T) {
	requiredEnv(t)
	t.Setenv("WEBHOOK_PORT", "70000")

	_, err := Load("")
	assert.Error(t, err)
}

func TestEnvOverridesUseSpecificNames(t *testing.T) {
	requiredEnv(t)
	t.Setenv("ROUTEROS_PORT", "8729")
	t.Setenv("WEBHOOK_HOST", "192.168.1.1")
	t.Setenv("WEBHOOK_PORT", "9000")
	t.Setenv("EXTERNAL_DNS_DOMAIN_FILTER", "a.lan, b.lan")
	t.Setenv("EXTERNAL_DNS_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8729, cfg.RouterOS.Port)
	assert.Equal(t, "192.168.1.1", cfg.Webhook.Host)
	assert.Equal(t, 9000, cfg.Webhook.Port)
	assert.Equal(t, []string{"a.lan", "b.lan"}, cfg.Domain.Include)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}
