// Package config loads ClassCore configuration from TOML files and
// environment variables. Environment variables always win over file
// values.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the ClassCore server.
type Config struct {
	HTTP    HTTPConfig
	MongoDB MongoDBConfig
	NATS    NATSConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Notify  NotifyConfig

	// DevMode relaxes operational requirements: ephemeral signing keys,
	// debug logging.
	DevMode bool
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port        int
	CORSOrigins []string
}

// MongoDBConfig holds MongoDB connection configuration. The URI may also
// come from the secrets provider, which takes precedence.
type MongoDBConfig struct {
	URI      string
	Database string
}

// NATSConfig holds event broker configuration.
type NATSConfig struct {
	URL string

	// Enabled disables event publishing entirely when false; events are
	// still persisted with the aggregate.
	Enabled bool
}

// RedisConfig holds the schedule read-through cache configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// ScheduleTTL bounds staleness of cached schedule reads.
	ScheduleTTL time.Duration

	Enabled bool
}

// AuthConfig holds credential signing configuration.
type AuthConfig struct {
	Issuer         string
	PrivateKeyPath string
	PublicKeyPath  string
	TokenTTL       time.Duration
}

// NotifyConfig holds the guardian webhook notifier configuration.
type NotifyConfig struct {
	GuardianWebhookURL string
	Timeout            time.Duration
	Enabled            bool
}

// Load builds configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port:        getEnvInt("CLASSCORE_HTTP_PORT", 8080),
			CORSOrigins: getEnvSlice("CLASSCORE_CORS_ORIGINS", []string{"http://localhost:4200"}),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("CLASSCORE_MONGODB_URI", "mongodb://localhost:27017/?replicaSet=rs0&directConnection=true"),
			Database: getEnv("CLASSCORE_MONGODB_DATABASE", "classcore"),
		},
		NATS: NATSConfig{
			URL:     getEnv("CLASSCORE_NATS_URL", "nats://localhost:4222"),
			Enabled: getEnvBool("CLASSCORE_NATS_ENABLED", true),
		},
		Redis: RedisConfig{
			Addr:        getEnv("CLASSCORE_REDIS_ADDR", "localhost:6379"),
			Password:    getEnv("CLASSCORE_REDIS_PASSWORD", ""),
			DB:          getEnvInt("CLASSCORE_REDIS_DB", 0),
			ScheduleTTL: getEnvDuration("CLASSCORE_REDIS_SCHEDULE_TTL", 5*time.Minute),
			Enabled:     getEnvBool("CLASSCORE_REDIS_ENABLED", false),
		},
		Auth: AuthConfig{
			Issuer:         getEnv("CLASSCORE_AUTH_ISSUER", "classcore"),
			PrivateKeyPath: getEnv("CLASSCORE_AUTH_PRIVATE_KEY_PATH", ""),
			PublicKeyPath:  getEnv("CLASSCORE_AUTH_PUBLIC_KEY_PATH", ""),
			TokenTTL:       getEnvDuration("CLASSCORE_AUTH_TOKEN_TTL", 30*time.Minute),
		},
		Notify: NotifyConfig{
			GuardianWebhookURL: getEnv("CLASSCORE_NOTIFY_GUARDIAN_URL", ""),
			Timeout:            getEnvDuration("CLASSCORE_NOTIFY_TIMEOUT", 10*time.Second),
			Enabled:            getEnvBool("CLASSCORE_NOTIFY_ENABLED", false),
		},
		DevMode: getEnvBool("CLASSCORE_DEV", false),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return defaultValue
}
