package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/janani-ai/janani-server/internal/domain"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	// Set configuration file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/janani-server/")

	// Set environment variable prefix and enable automatic env binding
	viper.SetEnvPrefix("JANANI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	m.setDefaults()

	// Read configuration file (optional - will use defaults and env vars if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	// Unmarshal configuration into struct
	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.tls_enabled", false)

	// Storage defaults
	viper.SetDefault("storage.profile_db_path", "./data/profiles.db")
	viper.SetDefault("storage.triage_log_db_path", "./data/triage_log.db")

	// Cache defaults
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_url", "redis://localhost:6379")
	viper.SetDefault("cache.default_ttl", "15m")
	viper.SetDefault("cache.max_entries", 1000)
	viper.SetDefault("cache.max_retries", 3)
	viper.SetDefault("cache.pool_size", 10)
	viper.SetDefault("cache.pool_timeout", "4s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")

	// Triage defaults
	viper.SetDefault("triage.default_gestational_week", 20)
	viper.SetDefault("triage.dialect_transform_enabled", false)

	// Emergency bridge defaults
	viper.SetDefault("bridge.emergency_number", "999")
	viper.SetDefault("bridge.health_hotline", "16789")
	viper.SetDefault("bridge.maternal_hotline", "16263")
	viper.SetDefault("bridge.hospitals_file", "")
	viper.SetDefault("bridge.volunteers_file", "")
	viper.SetDefault("bridge.dispatch_url", "")
	viper.SetDefault("bridge.dispatch_timeout", "10s")
	viper.SetDefault("bridge.dispatch_max_retries", 3)

	// Rate limit defaults
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_second", 10.0)
	viper.SetDefault("rate_limit.burst", 20)
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetBridgeConfig returns emergency bridge configuration
func (m *Manager) GetBridgeConfig() *domain.BridgeConfig {
	return &m.config.Bridge
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Server.TLSEnabled {
		if config.Server.CertFile == "" || config.Server.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert_file or key_file is missing")
		}
	}

	if config.Storage.ProfileDBPath == "" {
		return fmt.Errorf("profile database path is required")
	}
	if config.Storage.TriageLogDBPath == "" {
		return fmt.Errorf("triage log database path is required")
	}

	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case "memory":
			if config.Cache.MaxEntries <= 0 {
				return fmt.Errorf("cache max_entries must be positive, got %d", config.Cache.MaxEntries)
			}
		case "redis":
			if config.Cache.RedisURL == "" {
				return fmt.Errorf("cache backend is redis but redis_url is empty")
			}
		default:
			return fmt.Errorf("unknown cache backend: %s", config.Cache.Backend)
		}
	}

	if config.Triage.DefaultGestationalWeek < 1 || config.Triage.DefaultGestationalWeek > 45 {
		return fmt.Errorf("default gestational week out of range: %d", config.Triage.DefaultGestationalWeek)
	}

	if config.Bridge.EmergencyNumber == "" {
		return fmt.Errorf("emergency number is required")
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate limit requests_per_second must be positive, got %f", config.RateLimit.RequestsPerSecond)
		}
		if config.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate limit burst must be positive, got %d", config.RateLimit.Burst)
		}
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true,
	}
	if !validLogLevels[config.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}
