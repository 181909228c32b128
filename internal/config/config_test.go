package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PAYMENT_GATEWAY_SECRET=from-file\nORG_NAME=Seed Trust\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("ORG_NAME") })
	t.Setenv("PAYMENT_LOCK_TTL", "5s")
	t.Setenv("PAYMENT_GATEWAY_SECRET", "from-env")

	require.NoError(t, Load(path))
	cfg := Get()

	// variables already in the environment win over the file
	assert.Equal(t, "from-env", cfg.PaymentGatewaySecret)
	assert.Equal(t, "Seed Trust", cfg.OrgName)
	assert.Equal(t, 5*time.Second, cfg.PaymentLockTTL)
	assert.Equal(t, ":8080", cfg.HttpListenAddr)
	assert.Equal(t, "disable", cfg.PostgresSSLMode)
	assert.Equal(t, 5, cfg.PostgresConnectTimeout)
	assert.True(t, cfg.NotifyAsync)
}

func TestLoad_MissingFile(t *testing.T) {
	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		PaymentGatewaySecret: "s3cret",
		MailSendTimeout:      time.Second,
		NotifyAsync:          true,
		NotifyWorkers:        2,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing secret", func(c *Config) { c.PaymentGatewaySecret = "" }},
		{"zero send timeout", func(c *Config) { c.MailSendTimeout = 0 }},
		{"async without workers", func(c *Config) { c.NotifyWorkers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	inline := valid
	inline.NotifyAsync = false
	inline.NotifyWorkers = 0
	assert.NoError(t, inline.Validate())
}
