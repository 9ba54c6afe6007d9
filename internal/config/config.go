// Package config provides configuration for the chat relay.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the relay configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Transcript archive
	DatabaseURL string

	// Completion service
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeout     time.Duration

	// Vector search
	SearchURL        string
	SearchCollection string
	RetrieveLimit    int
	SearchTimeout    time.Duration

	// Session policy
	DefaultRole     string
	HistoryMaxTurns int
	RolesFile       string

	// Messaging platform (webhook)
	ChannelSecret      string
	ChannelAccessToken string
	ReplyBaseURL       string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:           getEnvInt("HTTP_PORT", 8000),
		DatabaseURL:        getEnv("DATABASE_URL", "file:rolechat.db?cache=shared&mode=rwc"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:          getEnv("OPENAI_API_KEY", ""),
		LLMModel:           getEnv("LLM_MODEL", "gpt-4o"),
		LLMMaxTokens:       getEnvInt("LLM_MAX_TOKENS", 1000),
		LLMTemperature:     getEnvFloat("LLM_TEMPERATURE", 0.7),
		LLMTimeout:         time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		SearchURL:          getEnv("SEARCH_URL", ""),
		SearchCollection:   getEnv("SEARCH_COLLECTION", "knowledge-base"),
		RetrieveLimit:      getEnvInt("RETRIEVE_LIMIT", 3),
		SearchTimeout:      time.Duration(getEnvInt("SEARCH_TIMEOUT_MS", 5000)) * time.Millisecond,
		DefaultRole:        getEnv("DEFAULT_ROLE", "客服代表"),
		HistoryMaxTurns:    getEnvInt("HISTORY_MAX_TURNS", 20),
		RolesFile:          getEnv("ROLES_FILE", ""),
		ChannelSecret:      getEnv("LINE_CHANNEL_SECRET", ""),
		ChannelAccessToken: getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		ReplyBaseURL:       getEnv("LINE_API_BASE_URL", "https://api.line.me"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
