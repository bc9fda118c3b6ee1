package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	RawDataDir   string
	ProcessedDir string
	OutputDir    string
	DBPath       string
	LogLevel     string

	ApplyToDB bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		RawDataDir:   getEnv("RAW_DATA_DIR", filepath.Join(cwd, "data", "raw", "scraped_data")),
		ProcessedDir: getEnv("PROCESSED_DIR", filepath.Join(cwd, "data", "processed")),
		OutputDir:    getEnv("OUTPUT_DIR", filepath.Join(cwd, "data", "outputs")),
		DBPath:       getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		ApplyToDB: getEnvBool("APPLY_TO_DB", false),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
