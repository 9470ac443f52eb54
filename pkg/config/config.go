// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// App holds the environment-driven settings shared by the service
// binaries and the HTTP error boundary.
type App struct {
	Environment     string `env:"ENVIRONMENT" env-default:"development"`
	Port            uint16 `env:"PORT" env-default:"4000"`
	ExposeErrorMeta bool   `env:"EXPOSE_ERROR_META" env-default:"false"`
	LogLevel        string `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads the configuration from the environment.
func Load() (App, error) {
	var cfg App
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return App{}, fmt.Errorf("read env config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
// Development mode allows error metadata and stack traces to reach HTTP
// responses.
func (a App) IsDevelopment() bool {
	return strings.EqualFold(a.Environment, "development")
}

// ExposeMeta reports whether error metadata may leak to clients: either
// explicitly enabled or implied by development mode.
func (a App) ExposeMeta() bool {
	return a.ExposeErrorMeta || a.IsDevelopment()
}

// SlogLevel maps the configured log level onto slog.
func (a App) SlogLevel() slog.Level {
	switch strings.ToLower(a.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the listen address derived from Port.
func (a App) Addr() string {
	return fmt.Sprintf(":%d", a.Port)
}
