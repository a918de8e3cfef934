// Package config provides server configuration loading from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/evcraddock/rent-ledger/internal/db"
	"github.com/evcraddock/rent-ledger/internal/email"
)

// DefaultAddr is the listen address used when RL_ADDR is unset.
const DefaultAddr = ":8080"

// Config holds the server configuration.
type Config struct {
	Addr        string
	DBPath      string
	DatabaseURL string
	LogLevel    string
	DevMode     bool

	SMTP     email.SMTPConfig
	NotifyTo []string
}

// Load reads configuration from environment variables, loading a .env file
// from the working directory first when one exists.
func Load() (*Config, error) {
	var errs []string
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Sprintf(".env: %v", err))
	}

	cfg := &Config{
		Addr:        os.Getenv("RL_ADDR"),
		DBPath:      os.Getenv("RL_DB_PATH"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    strings.ToLower(os.Getenv("RL_LOG_LEVEL")),
		SMTP: email.SMTPConfig{
			Host: os.Getenv("RL_SMTP_HOST"),
			Port: os.Getenv("RL_SMTP_PORT"),
			User: os.Getenv("RL_SMTP_USER"),
			Pass: os.Getenv("RL_SMTP_PASS"),
			From: os.Getenv("RL_SMTP_FROM"),
		},
		NotifyTo: splitList(os.Getenv("RL_NOTIFY_TO")),
	}

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.SMTP.Port == "" {
		cfg.SMTP.Port = "587"
	}
	if cfg.DBPath == "" && cfg.DatabaseURL == "" {
		path, err := db.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	if v := os.Getenv("RL_DEV_MODE"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("RL_DEV_MODE must be a boolean, got %q", v))
		}
		cfg.DevMode = dev
	}

	errs = append(errs, cfg.problems()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return cfg, nil
}

// DSN returns the database to open: DATABASE_URL when set, else the SQLite path.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func (c *Config) problems() []string {
	var errs []string

	if c.DatabaseURL != "" && !db.IsPostgresDSN(c.DatabaseURL) {
		errs = append(errs, "DATABASE_URL must be a postgres:// or postgresql:// URL")
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("RL_LOG_LEVEL %q is not a valid level", c.LogLevel))
	}

	if c.SMTP.Host != "" && c.SMTP.From == "" {
		errs = append(errs, "RL_SMTP_FROM is required when RL_SMTP_HOST is set")
	}
	if _, err := strconv.Atoi(c.SMTP.Port); err != nil {
		errs = append(errs, fmt.Sprintf("RL_SMTP_PORT must be a number, got %q", c.SMTP.Port))
	}

	return errs
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
