package main

import (
	"log/slog"

	"github.com/dmitrymomot/querybind/pkg/httpserver"
	"github.com/dmitrymomot/querybind/pkg/logger"
)

// Config is loaded from the environment, with an optional .env file.
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Service   string `env:"APP_SERVICE" envDefault:"querybind-demo"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// StrictShapes rejects query models with unsupported field types instead
	// of skipping those fields.
	StrictShapes bool `env:"BINDER_STRICT_SHAPES" envDefault:"false"`

	HTTP httpserver.Config
}

func (c Config) loggerOptions() []logger.Option {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	format := logger.FormatJSON
	if c.LogFormat == string(logger.FormatText) {
		format = logger.FormatText
	}
	return []logger.Option{
		logger.WithEnvironment(c.Env, c.Service),
		logger.WithLevel(level),
		logger.WithFormat(format),
	}
}
