package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Realtime   RealtimeConfig `mapstructure:"realtime"`
	Storage    StorageConfig  `mapstructure:"storage"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	URL    string `mapstructure:"url"`
}

type RealtimeConfig struct {
	Driver   string `mapstructure:"driver"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	Dir         string `mapstructure:"dir"`
	Bucket      string `mapstructure:"bucket"`
	Credentials string `mapstructure:"credentials"`
}

type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	SessionFile string        `mapstructure:"session_file"`
}

type LedgerConfig struct {
	Pagination string `mapstructure:"pagination"`
	Realtime   string `mapstructure:"realtime"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// NewDefault returns the configuration of a fresh local install. Empty paths
// are resolved against the app data dir at startup.
func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite"},
		Realtime: RealtimeConfig{Driver: "memory", Exchange: "carteira.changes"},
		Storage:  StorageConfig{Driver: "fs"},
		Auth:     AuthConfig{SessionTTL: 30 * 24 * time.Hour},
		Ledger:   LedgerConfig{Pagination: "offset", Realtime: "reload"},
		Log:      LogConfig{Level: "info"},
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.URL == "" {
			errs = append(errs, fmt.Errorf("database.url is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver '%s' is not supported (use sqlite or postgres)", c.Database.Driver))
	}

	switch c.Realtime.Driver {
	case "memory":
	case "amqp":
		if c.Realtime.URL == "" {
			errs = append(errs, fmt.Errorf("realtime.url is required for the amqp driver"))
		}
		if c.Realtime.Exchange == "" {
			errs = append(errs, fmt.Errorf("realtime.exchange can't be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("realtime.driver '%s' is not supported (use memory or amqp)", c.Realtime.Driver))
	}

	switch c.Storage.Driver {
	case "fs":
	case "gcs":
		if c.Storage.Bucket == "" {
			errs = append(errs, fmt.Errorf("storage.bucket is required for the gcs driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver '%s' is not supported (use fs or gcs)", c.Storage.Driver))
	}

	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.session_ttl must be positive"))
	}

	if p := c.Ledger.Pagination; p != "offset" && p != "keyset" {
		errs = append(errs, fmt.Errorf("ledger.pagination '%s' is not supported (use offset or keyset)", p))
	}
	if r := c.Ledger.Realtime; r != "reload" && r != "patch" {
		errs = append(errs, fmt.Errorf("ledger.realtime '%s' is not supported (use reload or patch)", r))
	}

	return errors.Join(errs...)
}
