package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// MongoDB
	MongoURI    string
	MongoDbName string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret string
	JwtTTL    time.Duration

	// Operator credentials (single-operator system)
	OperatorUsername     string
	OperatorPassword     string // plaintext fallback, used only when no hash is set
	OperatorPasswordHash string // bcrypt hash, takes precedence when non-empty

	// Server
	ApiPort string

	// Query limits
	MaxListLimit int

	// Cache
	ItemCacheTTL time.Duration

	// Rate Limiting
	RateLimitSoftBucketSize int
	RateLimitSoftRefillRate int // tokens per second
	RateLimitHardBucketSize int
	RateLimitHardRefillRate int // tokens per second
}

// Load configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
	if err != nil {
		return nil, err
	}
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "shop_billing")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret = getEnv("JWT_SECRET", "shop_billing_secret_key_2025")
	cfg.ApiPort = getEnv("API_PORT", "8080")
	cfg.OperatorUsername = getEnv("OPERATOR_USERNAME", "VVR")
	cfg.OperatorPassword = getEnv("OPERATOR_PASSWORD", "Vvr9704585785")
	cfg.OperatorPasswordHash = getEnv("OPERATOR_PASSWORD_HASH", "")

	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLMinutes, err := strconv.ParseInt(getEnv("JWT_TTL_MINUTES", "1440"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLMinutes) * time.Minute

	cfg.MaxListLimit, err = strconv.Atoi(getEnv("MAX_LIST_LIMIT", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_LIST_LIMIT: %w", err)
	}

	itemCacheTTLSeconds, err := strconv.ParseInt(getEnv("ITEM_CACHE_TTL_SECONDS", "60"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ITEM_CACHE_TTL_SECONDS: %w", err)
	}
	cfg.ItemCacheTTL = time.Duration(itemCacheTTLSeconds) * time.Second

	cfg.RateLimitSoftBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_SOFT_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SOFT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitSoftRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_SOFT_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SOFT_REFILL_RATE: %w", err)
	}
	cfg.RateLimitHardBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_HARD_BUCKET_SIZE", "32"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_HARD_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitHardRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_HARD_REFILL_RATE", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_HARD_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
