// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// CacheConfig provides settings for the shared irradiance cache.
type CacheConfig interface {
	GetRedisURL() string
	IsRedisEnabled() bool
}

// IrradianceConfig provides settings for the NASA POWER client.
type IrradianceConfig interface {
	GetNASABaseURL() string
	GetNASATimeout() time.Duration
	GetIrradianceCacheTTL() time.Duration
	GetNASARequestsPerSecond() float64
	IsNASAEnabled() bool
}

// GeocodingConfig provides settings for address lookup.
type GeocodingConfig interface {
	GetGeocoderBaseURL() string
	GetGeocoderUserAgent() string
	IsGeocodingEnabled() bool
}

// AssumptionsConfig points at the optional business assumptions override file.
type AssumptionsConfig interface {
	GetAssumptionsFile() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	DatabaseURL           string
	MigrationsDir         string
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	RateLimitRPS          float64
	RateLimitBurst        int
	RedisURL              string
	NASABaseURL           string
	NASATimeout           time.Duration
	NASADisabled          bool
	NASARequestsPerSecond float64
	IrradianceCacheTTL    time.Duration
	GeocoderBaseURL       string
	GeocoderUserAgent     string
	AssumptionsFile       string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// CacheConfig implementation
func (c *Config) GetRedisURL() string  { return c.RedisURL }
func (c *Config) IsRedisEnabled() bool { return c.RedisURL != "" }

// IrradianceConfig implementation
func (c *Config) GetNASABaseURL() string               { return c.NASABaseURL }
func (c *Config) GetNASATimeout() time.Duration        { return c.NASATimeout }
func (c *Config) GetIrradianceCacheTTL() time.Duration { return c.IrradianceCacheTTL }
func (c *Config) GetNASARequestsPerSecond() float64    { return c.NASARequestsPerSecond }
func (c *Config) IsNASAEnabled() bool                  { return !c.NASADisabled && c.NASABaseURL != "" }

// GeocodingConfig implementation
func (c *Config) GetGeocoderBaseURL() string   { return c.GeocoderBaseURL }
func (c *Config) GetGeocoderUserAgent() string { return c.GeocoderUserAgent }
func (c *Config) IsGeocodingEnabled() bool     { return c.GeocoderBaseURL != "" }

// AssumptionsConfig implementation
func (c *Config) GetAssumptionsFile() string { return c.AssumptionsFile }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		MigrationsDir:         getEnv("MIGRATIONS_DIR", "migrations"),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		RateLimitRPS:          mustFloat(getEnv("RATE_LIMIT_RPS", "10")),
		RateLimitBurst:        mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		RedisURL:              getEnv("REDIS_URL", ""),
		NASABaseURL:           getEnv("NASA_POWER_BASE_URL", "https://power.larc.nasa.gov/api/temporal/daily/point"),
		NASATimeout:           mustDuration(getEnv("NASA_POWER_TIMEOUT", "10s")),
		NASADisabled:          strings.EqualFold(getEnv("NASA_POWER_DISABLED", "false"), "true"),
		NASARequestsPerSecond: mustFloat(getEnv("NASA_POWER_RPS", "2")),
		IrradianceCacheTTL:    mustDuration(getEnv("IRRADIANCE_CACHE_TTL", "720h")),
		GeocoderBaseURL:       getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent:     getEnv("GEOCODER_USER_AGENT", "solar-potential-backend/1.0"),
		AssumptionsFile:       getEnv("ASSUMPTIONS_FILE", ""),
	}

	if cfg.NASATimeout <= 0 {
		return nil, fmt.Errorf("NASA_POWER_TIMEOUT must be a positive duration")
	}
	if cfg.IrradianceCacheTTL <= 0 {
		return nil, fmt.Errorf("IRRADIANCE_CACHE_TTL must be a positive duration")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
