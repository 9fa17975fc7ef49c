// Package config defines environment configuration structs and loaders.
package config

import (
	"fmt"
	"time"
)

type AppConfig struct {
	CompletionEnvConfig
	ServerEnvConfig
	StoreEnvConfig
	RedisEnvConfig
	Environment string `env:"ENVIRONMENT, default=prod"`
}

// CompletionEnvConfig configures access to the text completion endpoint.
type CompletionEnvConfig struct {
	OpenrouterAPIKey string        `env:"OPENROUTER_API_KEY"`
	BaseURL          string        `env:"COMPLETION_BASE_URL, default=https://openrouter.ai/api/v1"`
	Model            string        `env:"COMPLETION_MODEL, default=meta-llama/llama-3.3-70b-instruct"`
	Timeout          time.Duration `env:"COMPLETION_TIMEOUT, default=60s"`
	BackoffBase      time.Duration `env:"COMPLETION_BACKOFF_BASE, default=1s"`
	MaxRetries       int           `env:"COMPLETION_MAX_RETRIES, default=3"`
}

// ServerEnvConfig configures the HTTP API.
type ServerEnvConfig struct {
	Host      string `env:"SERVER_HOST, default=0.0.0.0"`
	Port      int    `env:"SERVER_PORT, default=8080"`
	BodyLimit int    `env:"SERVER_BODY_LIMIT, default=1048576"`
}

func (s ServerEnvConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreEnvConfig selects and configures the generated content store.
type StoreEnvConfig struct {
	Backend      string        `env:"STORE_BACKEND, default=memory"`
	TTL          time.Duration `env:"STORE_TTL, default=24h"`
	RestURL      string        `env:"STORE_REST_URL"`
	RestAPIKey   string        `env:"STORE_REST_API_KEY"`
	RestTable    string        `env:"STORE_REST_TABLE, default=generated_contents"`
	RestRetryMax int           `env:"STORE_REST_RETRY_MAX, default=3"`
}

// RedisEnvConfig configures Redis connection.
type RedisEnvConfig struct {
	RedisHost     string `env:"REDIS_HOST, default=127.0.0.1"`
	RedisPort     int    `env:"REDIS_PORT, default=6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB, default=0"`
	RedisUsername string `env:"REDIS_USERNAME"`
}

const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
	StoreBackendRest   = "rest"
)
