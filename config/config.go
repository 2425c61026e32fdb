package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the sync server settings.
type Config struct {
	Port     string
	LogLevel slog.Level
}

// Load reads settings from the environment, consulting a .env file first as
// a development convenience. CLI flags override the result afterwards.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "3001"),
		LogLevel: ParseLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
