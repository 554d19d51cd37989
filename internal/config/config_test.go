package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_BASE_URL", "http://store.local/api")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("DB_NAME", "")
	t.Setenv("SLACK_CHANNEL_ID", "C42")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://store.local/api", cfg.Store.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "league.db", cfg.DBName, "blank values fall back to the default")
	assert.Equal(t, "C42", cfg.Slack.ChannelID)
}

func TestGetDuration(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getDuration("SOME_TIMEOUT", time.Minute))

	t.Setenv("SOME_TIMEOUT", "250ms")
	assert.Equal(t, 250*time.Millisecond, getDuration("SOME_TIMEOUT", time.Minute))
}
