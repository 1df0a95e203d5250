// Package config provides configuration management for the application
package config

import (
	"os"
	"strconv"
	"time"
)

// MonitorConfig holds the supervisor timing knobs and the platform
// websocket endpoint override
type MonitorConfig struct {
	// Endpoint overrides the production websocket endpoint when non-empty
	Endpoint string
	// CredentialRetryInterval is the fixed wait between failed credential
	// acquisitions
	CredentialRetryInterval time.Duration
	// CooldownInterval is the wait after a session settles a room's status
	// before re-observing it
	CooldownInterval time.Duration
}

// RedisConfig holds Redis/Valkey configuration for the status store
type RedisConfig struct {
	Enabled bool
	// URI is prioritized if provided, otherwise individual connection parameters are used
	URI       string
	Host      string
	Port      string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// GetMonitorConfig loads supervisor configuration from environment variables
func GetMonitorConfig() MonitorConfig {
	retrySecs, _ := strconv.Atoi(getEnv("ACROOMS_CREDENTIAL_RETRY_SECONDS", "10"))
	cooldownMins, _ := strconv.Atoi(getEnv("ACROOMS_COOLDOWN_MINUTES", "15"))

	return MonitorConfig{
		Endpoint:                getEnv("ACROOMS_WS_ENDPOINT", ""),
		CredentialRetryInterval: time.Duration(retrySecs) * time.Second,
		CooldownInterval:        time.Duration(cooldownMins) * time.Minute,
	}
}

// GetRedisConfig loads Redis/Valkey configuration from environment variables
func GetRedisConfig() RedisConfig {
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:   getEnvBool("REDIS_ENABLED", false),
		URI:       getEnv("REDIS_URI_ACROOMS", ""),
		Host:      getEnv("REDIS_HOST_ACROOMS", getEnv("REDIS_ADDRESS", "localhost")),
		Port:      getEnv("REDIS_PORT_ACROOMS", "6379"),
		Username:  getEnv("REDIS_USERNAME_ACROOMS", ""),
		Password:  getEnv("REDIS_PASSWORD_ACROOMS", getEnv("REDIS_PASSWORD", "")),
		DB:        db,
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", "acrooms:"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves a boolean environment variable
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
