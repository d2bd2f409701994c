package config

import (
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "UPSTREAM_BASE_URL", "UPSTREAM_TIMEOUT", "UPSTREAM_MAX_ATTEMPTS", "TOKEN_TTL", "DB_DRIVER", "NATS_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := FromEnv()
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "https://api.servicem8.com/api_1.0", cfg.UpstreamBaseURL)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 1, cfg.UpstreamMaxAttempts)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Empty(t, cfg.NATSURL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("UPSTREAM_RETRY_BACKOFF", "2")
	t.Setenv("UPSTREAM_MAX_ATTEMPTS", "3")
	t.Setenv("UPSTREAM_RATE_LIMIT", "2.5")
	t.Setenv("DB_DRIVER", "postgres")

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 2*time.Second, cfg.UpstreamRetryBackoff)
	assert.Equal(t, 3, cfg.UpstreamMaxAttempts)
	assert.Equal(t, 2.5, cfg.UpstreamRateLimit)
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("UPSTREAM_MAX_ATTEMPTS", "many")
	t.Setenv("UPSTREAM_TIMEOUT", "soon")
	t.Setenv("UPSTREAM_RATE_LIMIT", "fast")

	cfg := FromEnv()
	assert.Equal(t, 1, cfg.UpstreamMaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 0.0, cfg.UpstreamRateLimit)
}
