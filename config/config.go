// Package config reads service settings from the process environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const minSessionSecretLen = 16

var defaults = map[string]any{
	"PORT":                  "8080",
	"SESSION_TTL":           "720h",
	"COOKIE_SECURE":         false,
	"DISPLAY_TIMEZONE":      "Asia/Kathmandu",
	"RATE_LIMIT_MAX":        3,
	"RATE_LIMIT_WINDOW":     "1m",
	"MAX_CONFESSION_LENGTH": 1000,
	"DEFAULT_PER_PAGE":      40,
	"MAX_PER_PAGE":          100,
	"BCRYPT_COST":           12,
}

type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	SessionSecret  string
	SessionTTL     time.Duration
	CookieSecure   bool
	AllowedOrigins []string

	DisplayTimezone string
	Location        *time.Location

	RateLimitMax    int
	RateLimitWindow time.Duration
	MaxTextLength   int
	DefaultPerPage  int
	MaxPerPage      int
	BcryptCost      int

	Storage StorageConfig
}

type StorageConfig struct {
	Driver string

	R2Bucket          string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Endpoint        string
	R2PublicDomain    string

	GCSBucket          string
	GCSCredentialsFile string
}

// Load reads the environment over the built-in defaults.
func Load() (*Config, error) {
	k := koanf.New(".")
	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return nil, fmt.Errorf("config default %s: %w", key, err)
		}
	}
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		Port:            k.String("PORT"),
		MongoURI:        k.String("MONGODB_URI"),
		MongoDB:         k.String("MONGODB_DB"),
		SessionSecret:   k.String("SESSION_SECRET"),
		SessionTTL:      k.Duration("SESSION_TTL"),
		CookieSecure:    k.Bool("COOKIE_SECURE"),
		AllowedOrigins:  splitList(k.String("ALLOWED_ORIGINS")),
		DisplayTimezone: k.String("DISPLAY_TIMEZONE"),
		RateLimitMax:    k.Int("RATE_LIMIT_MAX"),
		RateLimitWindow: k.Duration("RATE_LIMIT_WINDOW"),
		MaxTextLength:   k.Int("MAX_CONFESSION_LENGTH"),
		DefaultPerPage:  k.Int("DEFAULT_PER_PAGE"),
		MaxPerPage:      k.Int("MAX_PER_PAGE"),
		BcryptCost:      k.Int("BCRYPT_COST"),
		Storage: StorageConfig{
			Driver:             strings.ToLower(strings.TrimSpace(k.String("STORAGE_DRIVER"))),
			R2Bucket:           k.String("R2_BUCKET"),
			R2AccessKeyID:      k.String("R2_ACCESS_KEY_ID"),
			R2SecretAccessKey:  k.String("R2_SECRET_ACCESS_KEY"),
			R2Endpoint:         k.String("R2_ENDPOINT"),
			R2PublicDomain:     k.String("R2_PUBLIC_DOMAIN"),
			GCSBucket:          k.String("GCS_BUCKET"),
			GCSCredentialsFile: k.String("GCS_CREDENTIALS_FILE"),
		},
	}

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE %q: %w", cfg.DisplayTimezone, err)
	}
	cfg.Location = loc

	if cfg.RateLimitMax < 1 || cfg.RateLimitWindow <= 0 {
		return nil, errors.New("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}
	if cfg.MaxTextLength < 1 {
		return nil, errors.New("MAX_CONFESSION_LENGTH must be positive")
	}
	if cfg.DefaultPerPage < 1 || cfg.MaxPerPage < cfg.DefaultPerPage {
		return nil, errors.New("DEFAULT_PER_PAGE must be positive and not above MAX_PER_PAGE")
	}
	switch cfg.Storage.Driver {
	case "", "r2", "gcs":
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER %q: expected r2, gcs or empty", cfg.Storage.Driver)
	}
	return cfg, nil
}

// ValidateDatabase checks the settings every command needs.
func (c *Config) ValidateDatabase() error {
	if c.MongoURI == "" {
		return errors.New("MONGODB_URI is required")
	}
	if c.MongoDB == "" {
		return errors.New("MONGODB_DB is required")
	}
	return nil
}

// ValidateServer checks the settings the HTTP server needs on top of the database.
func (c *Config) ValidateServer() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if len(c.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLen)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
