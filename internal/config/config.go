package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port     string
	LogLevel string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string

	// Results store
	ResultsBackend string // "memory" or "sqlite"
	SQLitePath     string

	// Optional S3 archive of raw uploads; disabled when endpoint is empty
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Pipeline limits
	MaxFileSize    int64
	MaxPromptChars int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ResultsBackend:    getEnv("RESULTS_BACKEND", "memory"),
		SQLitePath:        getEnv("SQLITE_PATH", "data/analyses.db"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "legal-documents"),
		S3UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
		MaxFileSize:       10 * 1024 * 1024,
		MaxPromptChars:    getEnvInt("MAX_PROMPT_CHARS", 12000),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	if cfg.ResultsBackend != "memory" && cfg.ResultsBackend != "sqlite" {
		return nil, fmt.Errorf("RESULTS_BACKEND must be 'memory' or 'sqlite', got %q", cfg.ResultsBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
