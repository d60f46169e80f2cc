package config

import "os"

type Config struct {
	Port     string
	Env      string
	LogLevel string
	// DBSource is optional; only the snapshot archive uses it.
	DBSource string
}

func Load() *Config {
	return &Config{
		Port:     getenv("SERVER_PORT", "8080"),
		Env:      getenv("ENVIRONMENT", "development"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		DBSource: os.Getenv("DB_SOURCE"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
