// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Environment     string
	ReadTimeout     int
	WriteTimeout    int
	DBPath          string
	TemplateCatalog string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first if present.
func Load() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENV", "development"),
		ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 10),
		DBPath:          getEnv("DB_PATH", "data/db/mallbuilder.db"),
		TemplateCatalog: getEnv("TEMPLATE_CATALOG", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
