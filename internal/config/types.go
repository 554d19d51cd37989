package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Store     StoreConfig
	Slack     SlackConfig
	Turso     TursoConfig
	ProjectID string
}

type StoreConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
