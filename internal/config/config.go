package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all server settings in correct types
type Config struct {
	Port           string
	DownloadDir    string
	TempDir        string
	PollInterval   time.Duration
	WriteTimeout   time.Duration
	CleanupAfter   time.Duration
	AllowedOrigins string
}

// Load: The only way to get config in the app
func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", ":8000"),
		DownloadDir:    getEnv("DOWNLOAD_DIR", "downloads"),
		TempDir:        getEnv("TEMP_DIR", "temp"),
		PollInterval:   time.Duration(getEnvAsInt("POLL_INTERVAL_MS", 500)) * time.Millisecond,
		WriteTimeout:   time.Duration(getEnvAsInt("WS_WRITE_TIMEOUT_MS", 5000)) * time.Millisecond,
		CleanupAfter:   time.Duration(getEnvAsInt("CLEAN_UP_AFTER_MINUTES", 15)) * time.Minute,
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
	}

	// 🛡️ Post-load Validation
	validate(cfg)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	str := getEnv(key, "")
	if val, err := strconv.Atoi(str); err == nil {
		return val
	}
	return fallback
}

// validate ensures the server won't crash due to misconfiguration
func validate(cfg *Config) {
	if cfg.PollInterval < 50*time.Millisecond {
		log.Println("⚠️ Warning: POLL_INTERVAL_MS must be at least 50. Resetting to 500.")
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.WriteTimeout < time.Second {
		log.Println("⚠️ Warning: WS_WRITE_TIMEOUT_MS must be at least 1000. Resetting to 5000.")
		cfg.WriteTimeout = 5 * time.Second
	}
	if cfg.CleanupAfter < time.Minute {
		log.Println("⚠️ Warning: CLEAN_UP_AFTER_MINUTES must be at least 1. Resetting to 15.")
		cfg.CleanupAfter = 15 * time.Minute
	}
}
