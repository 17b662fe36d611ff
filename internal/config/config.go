package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	// Empty connection string degrades persistence to a no-op; the chat
	// path never depends on it.
	Connection string
}

type AIConfig struct {
	LLMProvider string // "deepseek", "openai"
	LLMModel    string // e.g. "deepseek-chat"
	BaseURL     string
	APIKey      string
	MaxTokens   int
	Temperature float64
}

type TopicConfig struct {
	ArchiveExchange string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "deepseek"),
			LLMModel:    getEnv("LLM_MODEL", "deepseek-chat"),
			BaseURL:     getEnv("LLM_BASE_URL", "https://api.deepseek.com/v1"),
			APIKey:      getEnv("LLM_API_KEY", ""),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 1000),
			Temperature: getEnvAsFloat("LLM_TEMPERATURE", 0.7),
		},
		Topics: TopicConfig{
			ArchiveExchange: getEnv("ARCHIVE_EXCHANGE_TOPIC_NAME", "ARCHIVE_EXCHANGE"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
