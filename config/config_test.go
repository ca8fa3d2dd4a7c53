package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "Asia/Kathmandu", cfg.Location.String())
	assert.Equal(t, 3, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 1000, cfg.MaxTextLength)
	assert.Equal(t, 40, cfg.DefaultPerPage)
	assert.Equal(t, 100, cfg.MaxPerPage)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Storage.Driver)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB", "confession")
	t.Setenv("SESSION_SECRET", "0123456789abcdef")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("DISPLAY_TIMEZONE", "UTC")
	t.Setenv("STORAGE_DRIVER", "R2")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateServer())

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "r2", cfg.Storage.Driver)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown zone", "DISPLAY_TIMEZONE", "Mars/Olympus"},
		{"zero limit", "RATE_LIMIT_MAX", "0"},
		{"unknown driver", "STORAGE_DRIVER", "ftp"},
		{"per page above max", "DEFAULT_PER_PAGE", "500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateServer(t *testing.T) {
	cfg := &Config{MongoURI: "mongodb://x", MongoDB: "db", SessionTTL: time.Hour}

	cfg.SessionSecret = "short"
	assert.ErrorContains(t, cfg.ValidateServer(), "SESSION_SECRET")

	cfg.SessionSecret = "0123456789abcdef"
	assert.NoError(t, cfg.ValidateServer())

	cfg.MongoDB = ""
	assert.ErrorContains(t, cfg.ValidateServer(), "MONGODB_DB")
}
