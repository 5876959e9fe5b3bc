package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_DefaultsAndEnv(t *testing.T) {
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "whsec")
	t.Setenv("ADMIN_TOKEN", "admin")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("RAZORPAY_BASE_URL", "http://gateway.local/")

	cfg, err := FromViper(newViper())

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "whsec", cfg.RazorpayWebhookSecret)
	assert.Equal(t, "admin", cfg.AdminToken)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, "http://gateway.local", cfg.RazorpayBaseURL)
}

func TestFromViper_MissingSecrets(t *testing.T) {
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "")
	t.Setenv("ADMIN_TOKEN", "")

	_, err := FromViper(newViper())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAZORPAY_WEBHOOK_SECRET")
	assert.Contains(t, err.Error(), "ADMIN_TOKEN")
}

func TestFromViper_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("razorpay_webhook_secret: from-file\nadmin_token: file-admin\nport: \"9090\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "")
	t.Setenv("ADMIN_TOKEN", "")
	t.Setenv("PORT", "")

	cfg, err := FromViper(newViper())

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.RazorpayWebhookSecret)
	assert.Equal(t, "file-admin", cfg.AdminToken)
	assert.Equal(t, "9090", cfg.Port)
}
