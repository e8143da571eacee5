package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/networth/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "USD", cfg.App.DefaultCurrency)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, "postgres://postgres:@localhost:5432/networth?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DEFAULT_CURRENCY", "EUR")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "EUR", cfg.App.DefaultCurrency)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:secret@db:5432/networth?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var cfg config.Config
			cfg.App.LogLevel = tt.in
			assert.Equal(t, tt.want, cfg.Level())
		})
	}
}
