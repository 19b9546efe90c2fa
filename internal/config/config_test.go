package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "DB_DSN", "KEY_PREFIX", "STORE_LATENCY_MS", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "intellivend_", cfg.KeyPrefix)
	assert.Equal(t, 300*time.Millisecond, cfg.StoreLatency)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORE_LATENCY_MS", "0")
	t.Setenv("RESET_DELAY_MS", "nope")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")

	cfg := Load()

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Zero(t, cfg.StoreLatency)
	assert.Equal(t, 1200*time.Millisecond, cfg.ResetDelay)
	assert.Equal(t, "legacy-key", cfg.GeminiAPIKey)
}
