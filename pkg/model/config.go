package model

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries environment-driven construction defaults so applications
// can tune validation behavior without code changes.
type Config struct {
	Mode        Mode `env:"MODEL_VALIDATION_MODE" envDefault:"all"`
	EventBuffer int  `env:"MODEL_EVENT_BUFFER" envDefault:"16"`
}

var loadDotenv sync.Once

// LoadConfig reads Config from environment variables, loading the default
// .env file once per process if present.
func LoadConfig() (Config, error) {
	loadDotenv.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(errors.New("failed to parse model config"), err)
	}

	switch cfg.Mode {
	case ValidateAll, ValidateChanged:
	default:
		return Config{}, ErrInvalidMode
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}

	return cfg, nil
}

// OptionsFromConfig converts a Config into construction options.
func OptionsFromConfig[T any](cfg Config) []Option[T] {
	return []Option[T]{
		WithMode[T](cfg.Mode),
		WithEventBuffer[T](cfg.EventBuffer),
	}
}
