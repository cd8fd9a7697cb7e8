package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultGeocoderURL is the Census bureau batch address endpoint
const DefaultGeocoderURL = "https://geocoding.geo.census.gov/geocoder/locations/addressbatch"

// Config holds all runtime settings
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Geocoder GeocoderConfig
	Cache    CacheConfig
	Matching MatchingConfig
	Log      LogConfig
}

// DatabaseConfig holds PostGIS connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// DSN renders a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
	MaxUploadBytes int64
	ManualOverride bool
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GeocoderConfig holds batch geocoder settings
type GeocoderConfig struct {
	URL           string
	Benchmark     string
	State         string
	BatchSize     int
	Concurrency   int
	Timeout       time.Duration
	MaxRetries    int
	RetryWait     time.Duration
	RetryMaxWait  time.Duration
	RatePerSecond float64
}

// CacheConfig holds the optional redis geocode cache settings. An empty
// Addr disables the cache.
type CacheConfig struct {
	Addr string
	DB   int
	TTL  time.Duration
}

// MatchingConfig holds linkage settings
type MatchingConfig struct {
	SuggestionRadiusMeters float64
	AddressParser          string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env files and the environment into a Config
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnvInt("DB_PORT", 5432),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD", "postgres"),
			Name:     GetEnv("DB_NAME", "evictions"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
			MaxConns: GetEnvInt("DB_MAX_CONNS", 20),
		},
		Server: ServerConfig{
			Host:           GetEnv("SERVER_HOST", "0.0.0.0"),
			Port:           GetEnvInt("SERVER_PORT", 8080),
			// "*" allows any origin
			AllowedOrigins: splitList(GetEnv("CORS_ALLOWED_ORIGINS", "*")),
			MaxUploadBytes: int64(GetEnvInt("MAX_UPLOAD_MB", 32)) << 20,
			ManualOverride: GetEnvBool("MANUAL_OVERRIDE_ENABLED", true),
		},
		Geocoder: GeocoderConfig{
			URL:           GetEnv("GEOCODER_URL", DefaultGeocoderURL),
			Benchmark:     GetEnv("GEOCODER_BENCHMARK", "4"),
			State:         GetEnv("GEOCODER_STATE", "GA"),
			BatchSize:     GetEnvInt("GEOCODER_BATCH_SIZE", 5000),
			Concurrency:   GetEnvInt("GEOCODER_CONCURRENCY", 4),
			Timeout:       GetEnvDuration("GEOCODER_TIMEOUT", 5*time.Minute),
			MaxRetries:    GetEnvInt("GEOCODER_MAX_RETRIES", 3),
			RetryWait:     GetEnvDuration("GEOCODER_RETRY_WAIT", 2*time.Second),
			RetryMaxWait:  GetEnvDuration("GEOCODER_RETRY_MAX_WAIT", 30*time.Second),
			RatePerSecond: GetEnvFloat("GEOCODER_RATE_PER_SEC", 1),
		},
		Cache: CacheConfig{
			Addr: GetEnv("REDIS_ADDR", ""),
			DB:   GetEnvInt("REDIS_DB", 0),
			TTL:  GetEnvDuration("GEOCODE_CACHE_TTL", 720*time.Hour),
		},
		Matching: MatchingConfig{
			SuggestionRadiusMeters: GetEnvFloat("SUGGESTION_RADIUS_METERS", 160),
			AddressParser:          GetEnv("ADDRESS_PARSER", "rules"),
		},
		Log: LogConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a run
func (c *Config) Validate() error {
	if c.Geocoder.BatchSize <= 0 {
		return fmt.Errorf("GEOCODER_BATCH_SIZE must be positive, got %d", c.Geocoder.BatchSize)
	}
	if c.Geocoder.Concurrency <= 0 {
		return fmt.Errorf("GEOCODER_CONCURRENCY must be positive, got %d", c.Geocoder.Concurrency)
	}
	if c.Geocoder.MaxRetries < 0 {
		return fmt.Errorf("GEOCODER_MAX_RETRIES must not be negative, got %d", c.Geocoder.MaxRetries)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if c.Matching.SuggestionRadiusMeters < 0 {
		return fmt.Errorf("SUGGESTION_RADIUS_METERS must not be negative, got %v", c.Matching.SuggestionRadiusMeters)
	}
	switch c.Matching.AddressParser {
	case "rules", "libpostal":
	default:
		return fmt.Errorf("ADDRESS_PARSER must be rules or libpostal, got %q", c.Matching.AddressParser)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
