// Package config loads service configuration from the environment.
// A .env file is honored when present; real environment variables win.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the autostate server.
type Config struct {
	// HTTPAddr is the listen address of the API server.
	HTTPAddr string `env:"AUTOSTATE_HTTP_ADDR" envDefault:":8080"`

	// RedisAddr selects the Redis model store when non-empty; otherwise
	// the in-memory store is used.
	RedisAddr     string        `env:"AUTOSTATE_REDIS_ADDR"`
	RedisPassword string        `env:"AUTOSTATE_REDIS_PASSWORD"`
	RedisDB       int           `env:"AUTOSTATE_REDIS_DB" envDefault:"0"`
	RedisPrefix   string        `env:"AUTOSTATE_REDIS_PREFIX" envDefault:"autostate:model:"`
	RedisTTL      time.Duration `env:"AUTOSTATE_REDIS_TTL" envDefault:"0"`

	// DataDir selects the filesystem model store when non-empty and no
	// Redis address is configured.
	DataDir string `env:"AUTOSTATE_DATA_DIR"`

	// OpenAIKey enables the natural-language collaborator when set.
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"AUTOSTATE_OPENAI_MODEL" envDefault:"gpt-4o"`
	OpenAIBaseURL string `env:"AUTOSTATE_OPENAI_BASE_URL"`

	// LogLevel accepts debug, info, warn or error.
	LogLevel string `env:"AUTOSTATE_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	// The .env file might not exist and that's ok.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
