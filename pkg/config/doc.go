// Package config loads application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// optional `.env` files are read first, then the environment is parsed into a
// struct using `env` and `envDefault` field tags. Variables already present in
// the process environment are never overridden by a `.env` file.
//
// # Usage
//
//	type Config struct {
//	    Addr     string `env:"ADDR" envDefault:":8080"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	cfg, err := config.Load[Config](config.WithEnvFiles(".env"))
//	if err != nil {
//	    // handle error
//	}
//
// MustLoad panics instead of returning an error and is meant for main.
package config
