// pkg/config/env_config.go
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig holds deploy-time settings for the SSH game service.
type EnvironmentConfig struct {
	SSHHost     string
	SSHPort     int
	HostKeyPath string
	HealthPort  int
	MaxSessions int
	IdleTimeout time.Duration

	// Circuit breaker guarding frame writes to clients
	CircuitBreakerMaxRequests         int
	CircuitBreakerInterval            time.Duration
	CircuitBreakerTimeout             time.Duration
	CircuitBreakerMaxConsecutiveFails int

	// Resource management
	MaxMemoryMB           int64
	ShutdownTimeout       time.Duration
	ResourceCheckInterval time.Duration

	// Connection rate limiting per remote address
	ConnectRate   int
	ConnectWindow time.Duration
}

// ValidationError describes a configuration field that failed validation
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// LoadConfigFromEnv reads the SSH service configuration from SPACEWARRIORS_*
// environment variables and validates it.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	config := &EnvironmentConfig{
		SSHHost:     getEnvOrDefault("SPACEWARRIORS_SSH_HOST", "0.0.0.0"),
		SSHPort:     getEnvAsIntOrDefault("SPACEWARRIORS_SSH_PORT", 2222),
		HostKeyPath: getEnvOrDefault("SPACEWARRIORS_HOST_KEY_PATH", ".ssh/spacewarriors_ed25519"),
		HealthPort:  getEnvAsIntOrDefault("SPACEWARRIORS_HEALTH_PORT", 8080),
		MaxSessions: getEnvAsIntOrDefault("SPACEWARRIORS_MAX_SESSIONS", 32),
		IdleTimeout: getEnvAsDurationOrDefault("SPACEWARRIORS_IDLE_TIMEOUT", 10*time.Minute),

		CircuitBreakerMaxRequests:         getEnvAsIntOrDefault("SPACEWARRIORS_CB_MAX_REQUESTS", 1),
		CircuitBreakerInterval:            getEnvAsDurationOrDefault("SPACEWARRIORS_CB_INTERVAL", 30*time.Second),
		CircuitBreakerTimeout:             getEnvAsDurationOrDefault("SPACEWARRIORS_CB_TIMEOUT", 5*time.Second),
		CircuitBreakerMaxConsecutiveFails: getEnvAsIntOrDefault("SPACEWARRIORS_CB_MAX_CONSECUTIVE_FAILS", 30),

		MaxMemoryMB:           int64(getEnvAsIntOrDefault("SPACEWARRIORS_MAX_MEMORY_MB", 512)),
		ShutdownTimeout:       getEnvAsDurationOrDefault("SPACEWARRIORS_SHUTDOWN_TIMEOUT", 15*time.Second),
		ResourceCheckInterval: getEnvAsDurationOrDefault("SPACEWARRIORS_RESOURCE_CHECK_INTERVAL", 10*time.Second),

		ConnectRate:   getEnvAsIntOrDefault("SPACEWARRIORS_CONNECT_RATE", 5),
		ConnectWindow: getEnvAsDurationOrDefault("SPACEWARRIORS_CONNECT_WINDOW", time.Minute),
	}

	if err := validateEnvironmentConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ListenAddress returns the host:port the SSH server binds to
func (c *EnvironmentConfig) ListenAddress() string {
	return net.JoinHostPort(c.SSHHost, strconv.Itoa(c.SSHPort))
}

// validateEnvironmentConfig checks ranges of every setting
func validateEnvironmentConfig(config *EnvironmentConfig) error {
	if config.SSHHost == "" {
		return &ValidationError{Field: "SSHHost", Value: config.SSHHost, Message: "must not be empty"}
	}
	if config.SSHPort < 1 || config.SSHPort > 65535 {
		return &ValidationError{Field: "SSHPort", Value: config.SSHPort, Message: "must be between 1 and 65535"}
	}
	if config.HealthPort < 1 || config.HealthPort > 65535 {
		return &ValidationError{Field: "HealthPort", Value: config.HealthPort, Message: "must be between 1 and 65535"}
	}
	if config.HealthPort == config.SSHPort {
		return &ValidationError{Field: "HealthPort", Value: config.HealthPort, Message: "must differ from SSHPort"}
	}
	if config.MaxSessions < 1 || config.MaxSessions > 1000 {
		return &ValidationError{Field: "MaxSessions", Value: config.MaxSessions, Message: "must be between 1 and 1000"}
	}
	if config.IdleTimeout < 10*time.Second || config.IdleTimeout > 24*time.Hour {
		return &ValidationError{Field: "IdleTimeout", Value: config.IdleTimeout, Message: "must be between 10s and 24h"}
	}
	if config.CircuitBreakerMaxRequests < 1 {
		return &ValidationError{Field: "CircuitBreakerMaxRequests", Value: config.CircuitBreakerMaxRequests, Message: "must be at least 1"}
	}
	if config.CircuitBreakerInterval < time.Second {
		return &ValidationError{Field: "CircuitBreakerInterval", Value: config.CircuitBreakerInterval, Message: "must be at least 1s"}
	}
	if config.CircuitBreakerTimeout < 100*time.Millisecond {
		return &ValidationError{Field: "CircuitBreakerTimeout", Value: config.CircuitBreakerTimeout, Message: "must be at least 100ms"}
	}
	if config.CircuitBreakerMaxConsecutiveFails < 1 {
		return &ValidationError{Field: "CircuitBreakerMaxConsecutiveFails", Value: config.CircuitBreakerMaxConsecutiveFails, Message: "must be at least 1"}
	}
	if config.MaxMemoryMB < 16 {
		return &ValidationError{Field: "MaxMemoryMB", Value: config.MaxMemoryMB, Message: "must be at least 16"}
	}
	if config.ShutdownTimeout < time.Second {
		return &ValidationError{Field: "ShutdownTimeout", Value: config.ShutdownTimeout, Message: "must be at least 1s"}
	}
	if config.ResourceCheckInterval < time.Second {
		return &ValidationError{Field: "ResourceCheckInterval", Value: config.ResourceCheckInterval, Message: "must be at least 1s"}
	}
	if config.ConnectRate < 1 {
		return &ValidationError{Field: "ConnectRate", Value: config.ConnectRate, Message: "must be at least 1"}
	}
	if config.ConnectWindow < time.Second {
		return &ValidationError{Field: "ConnectWindow", Value: config.ConnectWindow, Message: "must be at least 1s"}
	}
	return nil
}

// ApplyEnvironmentOverrides overrides game tuning from environment variables
// and re-validates the result.
func ApplyEnvironmentOverrides(gameConfig *GameConfig) error {
	gameConfig.Simulation.TickRate = getEnvAsIntOrDefault("SPACEWARRIORS_TICK_RATE", gameConfig.Simulation.TickRate)
	gameConfig.Frontend.Renderer = getEnvOrDefault("SPACEWARRIORS_RENDERER", gameConfig.Frontend.Renderer)
	gameConfig.Spawn.EnemyInterval = getEnvAsIntOrDefault("SPACEWARRIORS_ENEMY_SPAWN_INTERVAL", gameConfig.Spawn.EnemyInterval)
	gameConfig.Spawn.PowerupInterval = getEnvAsIntOrDefault("SPACEWARRIORS_POWERUP_SPAWN_INTERVAL", gameConfig.Spawn.PowerupInterval)
	gameConfig.Frontend.Fullscreen = getEnvAsBoolOrDefault("SPACEWARRIORS_FULLSCREEN", gameConfig.Frontend.Fullscreen)
	gameConfig.Frontend.MinimapScale = getEnvAsFloatOrDefault("SPACEWARRIORS_MINIMAP_SCALE", gameConfig.Frontend.MinimapScale)

	if seed := getEnvAsIntOrDefault("SPACEWARRIORS_SEED", 0); seed > 0 {
		gameConfig.Simulation.Seed = uint64(seed)
	}

	return gameConfig.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
