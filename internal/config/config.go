package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name            string `envconfig:"APP_NAME" default:"networth"`
		Port            int    `envconfig:"PORT" default:"8080"`
		LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat       string `envconfig:"LOG_FORMAT" default:"text"`
		DefaultCurrency string `envconfig:"DEFAULT_CURRENCY" default:"USD"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"networth"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

		// Migrate applies the embedded schema migrations on startup.
		Migrate bool `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// Level maps LOG_LEVEL onto a slog level. Unknown values fall back to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if strings.TrimSpace(cfg.App.DefaultCurrency) == "" {
		return nil, fmt.Errorf("DEFAULT_CURRENCY must not be empty")
	}

	return &cfg, nil
}
