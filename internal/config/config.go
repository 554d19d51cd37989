package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const defaultStoreTimeout = 10 * time.Second

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName: getEnvOrDefault("DB_NAME", "league.db"),
		Port:   getEnv("PORT"),
		Store: StoreConfig{
			BaseURL: getEnv("STORE_BASE_URL"),
			Timeout: getDuration("STORE_TIMEOUT", defaultStoreTimeout),
		},
		Slack: SlackConfig{
			Token:         getEnvOrDefault("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnvOrDefault("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnvOrDefault("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOrDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOrDefault("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnvOrDefault("GCP_PROJECT", ""),
	}
	return cfg
}

func getEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warn("Invalid duration, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}
