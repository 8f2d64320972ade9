// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration. Everything comes from the
// environment at startup; there is no per-request configuration.
type Config struct {
	HTTPAddr     string
	AuthUser     string
	AuthPassword string
	StoreDSN     string
}

// Load reads a .env file if one is present, then the process environment,
// and validates the result. A missing credential pair is a startup failure.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr: ":8080",
		StoreDSN: "root:123456@tcp(127.0.0.1:3306)/tarefas?parseTime=true",
	}
	if v := os.Getenv("TAREFAS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STORE_DSN"); v != "" {
		cfg.StoreDSN = v
	}
	cfg.AuthUser = os.Getenv("TAREFAS_AUTH_USER")
	cfg.AuthPassword = os.Getenv("TAREFAS_AUTH_PASSWORD")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every required field is set.
func (c *Config) Validate() error {
	if c.AuthUser == "" {
		return fmt.Errorf("TAREFAS_AUTH_USER is required")
	}
	if c.AuthPassword == "" {
		return fmt.Errorf("TAREFAS_AUTH_PASSWORD is required")
	}
	if c.StoreDSN == "" {
		return fmt.Errorf("STORE_DSN is required")
	}
	return nil
}
