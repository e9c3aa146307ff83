package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	// Postgres
	DatabaseURL string

	// Blob store (S3-compatible)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	MusicBucket string
	CoverBucket string

	// Queue store
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	QueueTTL      time.Duration

	// Auth
	TokenSecret    string
	TokenExpiry    time.Duration
	AdminBootstrap string

	// Server
	ServerPort string
	LogLevel   string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3Region:       getEnvOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		MusicBucket:    getEnvOrDefault("MUSIC_BUCKET", "music"),
		CoverBucket:    getEnvOrDefault("COVER_BUCKET", "covers"),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisUsername:  os.Getenv("REDIS_USERNAME"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		TokenSecret:    os.Getenv("TOKEN_SECRET"),
		AdminBootstrap: os.Getenv("ADMIN_BOOTSTRAP_KEY"),
		ServerPort:     getEnvOrDefault("PORT", "8080"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = redisDB

	ttlSeconds, err := getEnvInt("QUEUE_TTL_SECONDS", 3600)
	if err != nil {
		return nil, err
	}
	cfg.QueueTTL = time.Duration(ttlSeconds) * time.Second

	expiryMinutes, err := getEnvInt("TOKEN_EXPIRY_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	cfg.TokenExpiry = time.Duration(expiryMinutes) * time.Minute

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET environment variable is required")
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer environment variable with a default
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
