package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janani-ai/janani-server/internal/domain"
)

func TestNewManagerDefaults(t *testing.T) {
	clearEnvVars(t)

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "./data/profiles.db", cfg.Storage.ProfileDBPath)
	assert.Equal(t, "./data/triage_log.db", cfg.Storage.TriageLogDBPath)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 15*time.Minute, cfg.Cache.DefaultTTL)
	assert.Equal(t, 1000, cfg.Cache.MaxEntries)

	assert.Equal(t, 20, cfg.Triage.DefaultGestationalWeek)
	assert.False(t, cfg.Triage.DialectTransformEnabled)

	assert.Equal(t, "999", cfg.Bridge.EmergencyNumber)
	assert.Equal(t, "16789", cfg.Bridge.HealthHotline)
	assert.Equal(t, "16263", cfg.Bridge.MaternalHotline)
	assert.Equal(t, 10*time.Second, cfg.Bridge.DispatchTimeout)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestNewManagerEnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)

	os.Setenv("JANANI_SERVER_PORT", "9090")
	os.Setenv("JANANI_CACHE_BACKEND", "redis")
	os.Setenv("JANANI_BRIDGE_EMERGENCY_NUMBER", "112")
	os.Setenv("JANANI_LOGGING_LEVEL", "debug")
	defer clearEnvVars(t)

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "112", cfg.Bridge.EmergencyNumber)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	valid := func() *domain.Config {
		return &domain.Config{
			Server: domain.ServerConfig{Host: "0.0.0.0", Port: 8080},
			Storage: domain.StorageConfig{
				ProfileDBPath:   "./data/profiles.db",
				TriageLogDBPath: "./data/triage_log.db",
			},
			Cache:     domain.CacheConfig{Enabled: true, Backend: "memory", MaxEntries: 100},
			Logging:   domain.LoggingConfig{Level: "info", Format: "json"},
			Triage:    domain.TriageConfig{DefaultGestationalWeek: 20},
			Bridge:    domain.BridgeConfig{EmergencyNumber: "999"},
			RateLimit: domain.RateLimitConfig{Enabled: true, RequestsPerSecond: 10, Burst: 20},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *domain.Config) {},
		},
		{
			name:    "invalid port",
			mutate:  func(c *domain.Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "tls without certs",
			mutate:  func(c *domain.Config) { c.Server.TLSEnabled = true },
			wantErr: "cert_file or key_file",
		},
		{
			name:    "missing profile db path",
			mutate:  func(c *domain.Config) { c.Storage.ProfileDBPath = "" },
			wantErr: "profile database path",
		},
		{
			name:    "redis backend without url",
			mutate:  func(c *domain.Config) { c.Cache.Backend = "redis" },
			wantErr: "redis_url is empty",
		},
		{
			name:    "unknown cache backend",
			mutate:  func(c *domain.Config) { c.Cache.Backend = "memcached" },
			wantErr: "unknown cache backend",
		},
		{
			name:    "gestational week out of range",
			mutate:  func(c *domain.Config) { c.Triage.DefaultGestationalWeek = 60 },
			wantErr: "gestational week out of range",
		},
		{
			name:    "missing emergency number",
			mutate:  func(c *domain.Config) { c.Bridge.EmergencyNumber = "" },
			wantErr: "emergency number is required",
		},
		{
			name:    "zero rate limit",
			mutate:  func(c *domain.Config) { c.RateLimit.RequestsPerSecond = 0 },
			wantErr: "requests_per_second must be positive",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *domain.Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			m := &Manager{config: cfg}

			err := m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"JANANI_SERVER_PORT",
		"JANANI_SERVER_HOST",
		"JANANI_CACHE_BACKEND",
		"JANANI_BRIDGE_EMERGENCY_NUMBER",
		"JANANI_LOGGING_LEVEL",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}
