package main

import (
	"os"
	"path/filepath"
	"strconv"

	"footdash/report"

	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	Report      report.Options
}

func loadConfig() Config {
	// a missing .env is normal in production
	_ = godotenv.Load()

	defaults := report.DefaultOptions()
	return Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		DatabaseURL: databaseURL(),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		Report: report.Options{
			MinMinutes:    getEnvFloatOrDefault("MIN_MINUTES", defaults.MinMinutes),
			TopN:          getEnvPositiveIntOrDefault("TOP_N", defaults.TopN),
			DefaultPlayer: getEnvOrDefault("DEFAULT_PLAYER", defaults.DefaultPlayer),
		},
	}
}

// databaseURL prefers DATABASE_URL, then a sqlite file on the Railway volume,
// then a local sqlite file.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	if mountPath := os.Getenv("RAILWAY_VOLUME_MOUNT_PATH"); mountPath != "" {
		return filepath.Join(mountPath, "footdash.db")
	}
	return "./footdash.db"
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvPositiveIntOrDefault ignores zero and negative values.
func getEnvPositiveIntOrDefault(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func getEnvFloatOrDefault(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}
