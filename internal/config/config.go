package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Embedding provider: "openai" or "bedrock"
	EmbeddingProvider   string
	EmbeddingModel      string
	EmbeddingDimensions int

	OpenAIAPIKey string
	ChatModel    string

	AWSRegion               string
	AWSAccessKeyID          string
	AWSSecretAccessKey      string
	AWSEndpointOverride     string
	BedrockEmbeddingModelID string

	// Retrieval tuning
	SearchThreshold float64
	SearchLimit     int

	// Per-call timeouts for external dependencies
	EmbedTimeout  time.Duration
	SearchTimeout time.Duration
	WriteTimeout  time.Duration

	// Context cache
	ContextCacheTTL     time.Duration
	ContextCacheEntries int

	SessionTTL time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		EmbeddingProvider:   strings.ToLower(strings.TrimSpace(getEnv("EMBEDDING_PROVIDER", "openai"))),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),
		EmbeddingDimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", 1536),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		ChatModel:    getEnv("CHAT_MODEL", "gpt-4o-mini"),

		AWSRegion:               getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:          getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:      getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride:     getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		BedrockEmbeddingModelID: getEnv("BEDROCK_EMBEDDING_MODEL_ID", "amazon.titan-embed-text-v2:0"),

		SearchThreshold: getEnvAsFloat("SEARCH_THRESHOLD", 0.75),
		SearchLimit:     getEnvAsInt("SEARCH_LIMIT", 5),

		EmbedTimeout:  getEnvAsDuration("EMBED_TIMEOUT", 10*time.Second),
		SearchTimeout: getEnvAsDuration("SEARCH_TIMEOUT", 5*time.Second),
		WriteTimeout:  getEnvAsDuration("WRITE_TIMEOUT", 10*time.Second),

		ContextCacheTTL:     getEnvAsDuration("CONTEXT_CACHE_TTL", time.Minute),
		ContextCacheEntries: getEnvAsInt("CONTEXT_CACHE_ENTRIES", 1024),

		SessionTTL: getEnvAsDuration("SESSION_TTL", 24*time.Hour),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
