package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StoreDriver   string // sqlite | redis | memory
	DBDSN         string
	RedisAddr     string
	RedisPassword string
	KeyPrefix     string
	StoreLatency  time.Duration
	PaymentDelay  time.Duration
	ResetDelay    time.Duration
	GeminiAPIKey  string
	GeminiModel   string
	LogFile       string
}

func Load() Config {
	if err := godotenv.Load(".env"); err == nil {
		log.Printf("[config] loaded .env")
	}

	cfg := Config{
		Port:          env("PORT", "8080"),
		StoreDriver:   env("STORE_DRIVER", "sqlite"),
		DBDSN:         env("DB_DSN", "intellivend.db"), // sqlite file in project root
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:     env("KEY_PREFIX", "intellivend_"),
		StoreLatency:  millis("STORE_LATENCY_MS", 300),
		PaymentDelay:  millis("PAYMENT_DELAY_MS", 2000),
		ResetDelay:    millis("RESET_DELAY_MS", 1200),
		GeminiAPIKey:  env("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:   env("GEMINI_MODEL", "gemini-2.5-flash"),
		LogFile:       env("LOG_FILE", "./intellivend.log"),
	}

	log.Printf("[config] PORT=%s STORE_DRIVER=%s DB_DSN=%s REDIS_ADDR=%s KEY_PREFIX=%s STORE_LATENCY=%s GEMINI_MODEL=%s LOG_FILE=%s",
		cfg.Port, cfg.StoreDriver, cfg.DBDSN, cfg.RedisAddr, cfg.KeyPrefix, cfg.StoreLatency, cfg.GeminiModel, cfg.LogFile)
	return cfg
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// millis reads a non-negative millisecond count; bad values fall back to def.
func millis(key string, def int) time.Duration {
	n := def
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			n = parsed
		} else {
			log.Printf("[config] ignoring %s=%q", key, v)
		}
	}
	return time.Duration(n) * time.Millisecond
}
