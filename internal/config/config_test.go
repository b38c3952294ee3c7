package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFileWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  env: production
database:
  driver: sqlite
  url: file:test.db
jwt:
  secret: from-file
cache:
  listing_ttl: 45s
workers:
  job_expiry_schedule: "@every 10m"
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("JOBS_REQUIRE_PAYMENT", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret, "Переменная окружения важнее файла")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.False(t, cfg.Jobs.RequirePayment)
	assert.Equal(t, 45*time.Second, cfg.Cache.ListingTTL)
	assert.Equal(t, "@every 10m", cfg.Workers.JobExpirySchedule)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATABASE_URL", "postgres://localhost/vacancy")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RememberMeTTL)
	assert.Equal(t, "https://api.paystack.co", cfg.Paystack.BaseURL)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "/uploads", cfg.Storage.BaseURL)
	assert.True(t, cfg.Jobs.RequirePayment)
	assert.Equal(t, []string{cfg.App.ClientURL}, cfg.App.AllowedOrigins)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"JWT_SECRET": "s"}},
		{"missing jwt secret", map[string]string{"DATABASE_URL": "file:x"}},
		{"unknown driver", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "s", "DATABASE_DRIVER": "oracle"}},
		{"unknown email provider", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "s", "EMAIL_PROVIDER": "pigeon"}},
		{"bad port", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "s", "SERVER_PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
			t.Setenv("DATABASE_URL", "")
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "server: [unclosed"))

	_, err := Load()
	assert.Error(t, err)
}
