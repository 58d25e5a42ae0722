// Package config holds runtime settings and the static lookup tables shared
// read-only across concurrent requests. Tables are loaded once at startup and
// never mutated afterwards.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Settings are the process-wide runtime knobs, sourced from the environment.
type Settings struct {
	App struct {
		Port int `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		URL string `envconfig:"DATABASE_URL"`
	}

	AI struct {
		APIKey      string        `envconfig:"GEMINI_API_KEY"`
		Model       string        `envconfig:"AI_MODEL" default:"gemini-2.0-flash"`
		Timeout     time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
		MaxAttempts int           `envconfig:"AI_MAX_ATTEMPTS" default:"3"`
		BackoffBase time.Duration `envconfig:"AI_BACKOFF_BASE" default:"1s"`
	}

	Tables struct {
		Path string `envconfig:"TABLES_PATH"` // optional YAML override for static tables
	}
}

// LoadSettings reads settings from the environment.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("failed to process settings: %w", err)
	}
	return &s, nil
}
