package internal

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	Contact string
	BaseURL string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	NATSUrl      string
	NATSClientID string

	RateLimitRedisPrefix string

	AppPort  string
	AppEnv   string
	LogLevel string

	DatabaseEnabled bool
	AuditEnabled    bool
}

func LoadConfig() (*Config, error) {
	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid REDIS_DB value")
		}
		redisDB = parsed
	}

	cfg := &Config{
		Contact: os.Getenv("TEEMO_CONTACT"),
		BaseURL: os.Getenv("TEEMO_BASE_URL"),

		RedisHost:     getEnvDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		PostgresHost:     getEnvDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvDefault("POSTGRES_PORT", "5432"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresSSLMode:  getEnvDefault("POSTGRES_SSL_MODE", "disable"),

		NATSUrl:      getEnvDefault("NATS_URL", "nats://localhost:4222"),
		NATSClientID: getEnvDefault("NATS_CLIENT_ID", "teemo-core"),

		RateLimitRedisPrefix: getEnvDefault("RATE_LIMIT_REDIS_PREFIX", "teemo:ratelimit"),

		AppPort:  getEnvDefault("APP_PORT", "8000"),
		AppEnv:   getEnvDefault("APP_ENV", "development"),
		LogLevel: getEnvDefault("LOG_LEVEL", "info"),

		DatabaseEnabled: getBoolEnvDefault("DATABASE_ENABLED", true),
		AuditEnabled:    getBoolEnvDefault("AUDIT_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Contact == "" {
		return errors.New("TEEMO_CONTACT is required")
	}
	if c.DatabaseEnabled {
		if c.PostgresUser == "" {
			return errors.New("POSTGRES_USER is required when database is enabled")
		}
		if c.PostgresPassword == "" {
			return errors.New("POSTGRES_PASSWORD is required when database is enabled")
		}
		if c.PostgresDB == "" {
			return errors.New("POSTGRES_DB is required when database is enabled")
		}
	}
	return nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnvDefault(key string, def bool) bool {
	switch os.Getenv(key) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}
