package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type options struct {
	envFiles []string
	prefix   string
	environ  map[string]string
}

// Option configures Load.
type Option func(*options)

// WithEnvFiles reads the given .env files before parsing. Missing files are
// skipped; a file that exists but cannot be parsed is an error.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.envFiles = append(o.envFiles, paths...)
	}
}

// WithPrefix only considers variables starting with prefix, which is
// stripped before matching `env` tags.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnviron parses from the given map instead of the process environment.
// Env files are still applied to the process environment.
func WithEnviron(environ map[string]string) Option {
	return func(o *options) { o.environ = environ }
}

// Load parses the environment into a new T.
//
// Example:
//
//	type Config struct {
//		Addr string `env:"ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[Config](config.WithPrefix("APP_"))
func Load[T any](opts ...Option) (T, error) {
	var (
		cfg T
		o   options
	)
	for _, opt := range opts {
		opt(&o)
	}

	for _, path := range o.envFiles {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return cfg, fmt.Errorf("%w %s: %w", ErrLoadingEnvFile, path, err)
		}
	}

	envOpts := env.Options{Prefix: o.prefix, Environment: o.environ}
	if envOpts.Environment == nil {
		envOpts.Environment = env.ToMap(os.Environ())
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
