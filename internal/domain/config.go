package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Triage    TriageConfig    `mapstructure:"triage"`
	Bridge    BridgeConfig    `mapstructure:"bridge"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	TLSEnabled   bool          `mapstructure:"tls_enabled"`
	CertFile     string        `mapstructure:"cert_file"`
	KeyFile      string        `mapstructure:"key_file"`
}

// StorageConfig represents the SQLite store locations
type StorageConfig struct {
	ProfileDBPath   string `mapstructure:"profile_db_path"`
	TriageLogDBPath string `mapstructure:"triage_log_db_path"`
}

// CacheConfig represents the triage response cache configuration.
// Backend "memory" uses the in-process LRU cache; "redis" shares results
// across replicas.
type CacheConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Backend     string        `mapstructure:"backend"` // "memory", "redis"
	RedisURL    string        `mapstructure:"redis_url"`
	DefaultTTL  time.Duration `mapstructure:"default_ttl"`
	MaxEntries  int           `mapstructure:"max_entries"`
	MaxRetries  int           `mapstructure:"max_retries"`
	PoolSize    int           `mapstructure:"pool_size"`
	PoolTimeout time.Duration `mapstructure:"pool_timeout"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TriageConfig represents triage engine configuration
type TriageConfig struct {
	DefaultGestationalWeek int `mapstructure:"default_gestational_week"`

	// DialectTransformEnabled turns on the Noakhali phonological rewrite of
	// patient-facing Bengali text. Off in the current deployment; the voice
	// pipeline expects Standard Bengali.
	DialectTransformEnabled bool `mapstructure:"dialect_transform_enabled"`
}

// BridgeConfig represents emergency bridge configuration
type BridgeConfig struct {
	EmergencyNumber    string        `mapstructure:"emergency_number"`
	HealthHotline      string        `mapstructure:"health_hotline"`
	MaternalHotline    string        `mapstructure:"maternal_hotline"`
	HospitalsFile      string        `mapstructure:"hospitals_file"`
	VolunteersFile     string        `mapstructure:"volunteers_file"`
	DispatchURL        string        `mapstructure:"dispatch_url"`
	DispatchTimeout    time.Duration `mapstructure:"dispatch_timeout"`
	DispatchMaxRetries int           `mapstructure:"dispatch_max_retries"`
}

// RateLimitConfig represents API rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}
