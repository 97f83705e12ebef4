package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/entreplan/planner/internal/auth"
	"github.com/entreplan/planner/internal/planner"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

// Config holds the application configuration.
type Config struct {
	APIPort    string `yaml:"api_port"`
	HealthPort string `yaml:"health_port"`

	// HTTP server timeouts (optional, defaults apply in server.go)
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	// JWT signing secret (env var only for testing). When empty, only unsigned tokens
	// (alg=none) are accepted if AllowUnsignedTokens is true.
	// Normally in production it should be fetched from a secrets provider like Vault,
	// and not set via config file or env var.
	JWTSecret string `yaml:"-"`

	// AllowUnsignedTokens permits unsigned JWT tokens (alg=none) when true.
	// This should ONLY be enabled for local development and testing.
	// Requires explicit opt-in via ALLOW_UNSIGNED_TOKENS=true env var.
	AllowUnsignedTokens bool `yaml:"-"`

	// DefaultPlatform is used when a request names an unsupported platform.
	// Must be one of the fixed supported platforms.
	DefaultPlatform string `yaml:"default_platform"`

	// QRDecodeEnabled switches the optional QR image decode capability.
	// When false the decode endpoint reports itself unavailable.
	QRDecodeEnabled bool `yaml:"qr_decode_enabled"`

	// Rate limiting configuration
	RateLimitRequests int           `yaml:"rate_limit_requests"` // Max requests per window (0 = disabled)
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`   // Time window for rate limiting
}

// Load reads configuration with the following precedence (highest wins):
//  1. Environment variables (API_PORT, HEALTH_PORT, ...)
//  2. YAML config file (path from CONFIG_PATH env var, or "config.yaml")
func Load() (*Config, error) {
	cfg := &Config{QRDecodeEnabled: true}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("API_PORT"); v != "" {
		cfg.APIPort = v
	}
	if v := os.Getenv("HEALTH_PORT"); v != "" {
		cfg.HealthPort = v
	}

	if cfg.APIPort == "" {
		return nil, fmt.Errorf("api_port is required (set via config file or API_PORT env var)")
	}
	if cfg.HealthPort == "" {
		return nil, fmt.Errorf("health_port is required (set via config file or HEALTH_PORT env var)")
	}

	// JWT secret (optional — when empty AND AllowUnsignedTokens is true, unsigned tokens are accepted)
	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	// Allow unsigned tokens (explicit opt-in for dev/test only)
	cfg.AllowUnsignedTokens = os.Getenv("ALLOW_UNSIGNED_TOKENS") == "true"

	// HTTP server timeouts (optional — defaults apply in server.go if zero)
	if v := os.Getenv("READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReadTimeout = d
		}
	}
	if v := os.Getenv("WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WriteTimeout = d
		}
	}
	if v := os.Getenv("IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.IdleTimeout = d
		}
	}

	// Planner defaults (env vars override config file)
	if v := os.Getenv("DEFAULT_PLATFORM"); v != "" {
		cfg.DefaultPlatform = v
	}
	if cfg.DefaultPlatform == "" {
		cfg.DefaultPlatform = planner.DefaultPlatform
	}
	if _, err := planner.ResolvePlatform(cfg.DefaultPlatform); err != nil {
		return nil, fmt.Errorf("default_platform: %w", err)
	}

	if v := os.Getenv("QR_DECODE_ENABLED"); v != "" {
		cfg.QRDecodeEnabled = v == "true"
	}

	// Rate limiting configuration (env vars override config file)
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitRequests = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RateLimitWindow = d
		}
	}

	// Apply rate limiting defaults if partially configured
	if cfg.RateLimitRequests > 0 && cfg.RateLimitWindow == 0 {
		cfg.RateLimitWindow = time.Minute // Default window: 1 minute
	}

	return cfg, nil
}

// APIAddr returns the listen address for the API server.
func (c *Config) APIAddr() string {
	return ":" + c.APIPort
}

// HealthAddr returns the listen address for the health check server.
func (c *Config) HealthAddr() string {
	return ":" + c.HealthPort
}

// AuthConfig returns the JWT authentication configuration.
func (c *Config) AuthConfig() auth.AuthConfig {
	return auth.AuthConfig{
		Secret:              c.JWTSecret,
		AllowUnsignedTokens: c.AllowUnsignedTokens,
	}
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	Requests int           // Max requests per window (0 = disabled)
	Window   time.Duration // Time window for rate limiting
}

// RateLimitConfig returns the rate limiting configuration.
func (c *Config) RateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Requests: c.RateLimitRequests,
		Window:   c.RateLimitWindow,
	}
}
