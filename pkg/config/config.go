// Package config provides application configuration management using environment variables.
// It uses github.com/kelseyhightower/envconfig for loading configuration from environment variables
// with support for validation, default values, and environment-specific helpers.
//
// # Basic Usage
//
// Load configuration from environment variables:
//
//	cfg, err := config.Load("APP")
//	if err != nil {
//		log.Fatalf("Failed to load configuration: %v", err)
//	}
//
//	// Validate configuration
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("Invalid configuration: %v", err)
//	}
//
// # Environment Variables
//
// The following environment variables are supported (using "APP" prefix):
//
// Basic configuration:
//   - APP_ENVIRONMENT: Environment (local, development, staging, production; default: local)
//   - APP_SHUTDOWN_TIMEOUT: Graceful shutdown timeout (default: 30s)
//
// Server configuration:
//   - APP_CONNECT_SERVER_PORT: Server port (default: 8080)
//   - APP_SERVER_HOST: Server host (default: localhost)
//   - APP_SERVER_READ_HEADER_TIMEOUT: Read header timeout (default: 500ms)
//   - APP_SERVER_READ_TIMEOUT: Read timeout (default: 1000ms)
//   - APP_SERVER_HANDLER_TIMEOUT: Handler timeout (default: 5s)
//   - APP_SERVER_IDLE_TIMEOUT: Idle timeout (default: 3s)
//   - APP_CORS_ALLOWED_ORIGINS: Allowed CORS origins (default: http://localhost:9000)
//
// Database configuration:
//   - APP_DATABASE_PATH: SQLite database file path (default: data/archive-core.db)
//   - APP_DATABASE_MAX_OPEN_CONNS: Maximum open connections (default: 25)
//   - APP_DATABASE_MAX_IDLE_CONNS: Maximum idle connections (default: 5)
//   - APP_DATABASE_CONN_MAX_LIFETIME: Connection max lifetime in seconds (default: 300)
//
// Upstream configuration:
//   - APP_UPSTREAM_BASE_URL: Save/profile host base URL (required)
//   - APP_UPSTREAM_APP_ID: Upstream application ID (required)
//   - APP_UPSTREAM_APP_KEY: Upstream application key (required)
//   - APP_UPSTREAM_TIMEOUT: HTTP request timeout (default: 10s)
//
// Scoring configuration:
//   - APP_SCORING_PUSH_ACC_CACHE_SIZE: Push-ACC LRU cache entry count (default: 5000)
//   - APP_SCORING_BEST_N_COUNT: Best-N chart count for display/export (default: 27)
//   - APP_SCORING_HISTORY_MAX_RECORDS: History rows retained per chart (default: 10)
//   - APP_SCORING_STORE_PUSH_ACC: Persist push-ACC rows after each archive write (default: true)
//   - APP_SCORING_CACHE_TTL: Player-archive read cache TTL (default: 60s)
//
// Logging configuration:
//   - APP_LOGGING_LEVEL: Log level (debug, info, warn, error, default: info)
//   - APP_LOGGING_FORMAT: Log format (json, text, default: json)
//   - APP_LOGGING_STRUCTURED: Enable structured logging (default: true)
//   - APP_LOGGING_INCLUDE_CALLER: Include caller information (default: false)
//
// Telemetry configuration:
//   - APP_TELEMETRY_OTLP_ENDPOINT: OTLP exporter endpoint for sending traces
//   - APP_TELEMETRY_SERVICE_NAME: Service name for tracing (default: go-backend-scaffold)
//   - APP_TELEMETRY_SERVICE_VERSION: Service version for tracing (default: 1.0.0)
//
// # Environment Helpers
//
// Use environment detection helpers:
//
//	if cfg.IsDevelopment() {
//		// Development-specific logic
//	}
//
//	if cfg.IsProduction() {
//		// Production-specific logic
//	}
//
// # Database Connection
//
// Get the SQLite data source name:
//
//	dsn := cfg.Database.DSN()
//	// Returns: "file:data/archive-core.db?_pragma=busy_timeout(5000)"
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration loaded from environment variables.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Upstream save/profile host configuration
	Upstream UpstreamConfig

	// Scoring engine configuration
	Scoring ScoringConfig

	// Logging configuration
	Logging LoggingConfig

	// Telemetry configuration
	Telemetry TelemetryConfig

	// Environment
	Environment string `envconfig:"ENVIRONMENT" default:"local"`

	// Shutdown timeout in seconds
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// ServerConfig represents server-specific configuration.
type ServerConfig struct {
	// Port to listen on
	Port int `envconfig:"CONNECT_SERVER_PORT" default:"8080"`

	// Host to bind to
	Host string `envconfig:"SERVER_HOST" default:"localhost"`

	// Read header timeout in milliseconds
	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"500ms"`

	// Read timeout in milliseconds
	ReadTimeout time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"1000ms"`

	// Handler timeout in seconds
	HandlerTimeout time.Duration `envconfig:"SERVER_HANDLER_TIMEOUT" default:"5s"`

	// Idle timeout in seconds
	IdleTimeout time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"3s"`

	// Allowed CORS origins
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:9000"`
}

// DatabaseConfig represents database-specific configuration. Unlike the
// Postgres-backed services in this family, the archive store is a single
// embedded SQLite file: there is no host/port/user to configure, only a
// path and pool-size knobs.
type DatabaseConfig struct {
	// Path to the SQLite database file.
	Path string `envconfig:"DATABASE_PATH" default:"data/archive-core.db"`

	// Connection pool settings. SQLite serializes writers internally, but
	// a modest read pool still helps concurrent read-only queries.
	MaxOpenConns    int `envconfig:"DATABASE_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime int `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"300"`
}

// UpstreamConfig represents the save/profile host the archive service
// fetches player data from.
type UpstreamConfig struct {
	// Base URL of the upstream save/profile host.
	BaseURL string `envconfig:"UPSTREAM_BASE_URL" required:"true"`

	// Application ID presented on every upstream request.
	AppID string `envconfig:"UPSTREAM_APP_ID" required:"true"`

	// Application key presented on every upstream request.
	AppKey string `envconfig:"UPSTREAM_APP_KEY" required:"true"`

	// Per-request HTTP timeout.
	Timeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
}

// ScoringConfig represents the scoring engine's tunable knobs.
type ScoringConfig struct {
	// Push-ACC result LRU cache entry count.
	PushAccCacheSize int `envconfig:"SCORING_PUSH_ACC_CACHE_SIZE" default:"5000"`

	// Number of top charts considered for display/export. The composite
	// RKS recomputation always uses the fixed best-27/AP-3 rule; no
	// component in this module reads this value.
	BestNCount int `envconfig:"SCORING_BEST_N_COUNT" default:"27"`

	// History rows retained per chart beyond the current one.
	HistoryMaxRecords int `envconfig:"SCORING_HISTORY_MAX_RECORDS" default:"10"`

	// Whether to persist push-ACC rows after each archive write.
	StorePushAcc bool `envconfig:"SCORING_STORE_PUSH_ACC" default:"true"`

	// TTL for the in-memory player-archive read cache.
	CacheTTL time.Duration `envconfig:"SCORING_CACHE_TTL" default:"60s"`
}

// LoggingConfig represents logging-specific configuration.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `envconfig:"LOGGING_LEVEL" default:"info"`

	// Log format (json, text)
	Format string `envconfig:"LOGGING_FORMAT" default:"json"`

	// Enable structured logging
	Structured bool `envconfig:"LOGGING_STRUCTURED" default:"true"`

	// Include caller information
	IncludeCaller bool `envconfig:"LOGGING_INCLUDE_CALLER" default:"false"`
}

// TelemetryConfig represents telemetry-specific configuration.
type TelemetryConfig struct {
	// OTLP exporter endpoint for sending traces
	OTLPEndpoint string `envconfig:"TELEMETRY_OTLP_ENDPOINT"`

	// Service name for tracing
	ServiceName string `envconfig:"TELEMETRY_SERVICE_NAME" default:"go-backend-scaffold"`

	// Service version for tracing
	ServiceVersion string `envconfig:"TELEMETRY_SERVICE_VERSION" default:"1.0.0"`
}

// Load loads configuration from environment variables.
// The prefix parameter is used to namespace environment variables.
// For example, with prefix "APP", environment variables like APP_SERVER_PORT will be loaded.
//
// Example:
//
//	cfg, err := config.Load("APP")
//	if err != nil {
//		return fmt.Errorf("failed to load config: %w", err)
//	}
func Load(prefix string) (*Config, error) {
	var cfg Config

	// Process environment variables with the given prefix
	err := envconfig.Process(prefix, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration according to the following rules:
//   - Server port: 1-65535 range
//   - Environment: local, development, staging, or production
//   - Log level: debug, info, warn, or error
//   - Log format: json or text
//   - Required fields: database path, upstream credentials
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	validEnvironments := []string{"local", "development", "staging", "production"}
	valid := false

	for _, env := range validEnvironments {
		if c.Environment == env {
			valid = true

			break
		}
	}

	if !valid {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	valid = false

	for _, level := range validLogLevels {
		if c.Logging.Level == level {
			valid = true

			break
		}
	}

	if !valid {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validLogFormats := []string{"json", "text"}
	valid = false

	for _, format := range validLogFormats {
		if c.Logging.Format == format {
			valid = true

			break
		}
	}

	if !valid {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Upstream.BaseURL == "" || c.Upstream.AppID == "" || c.Upstream.AppKey == "" {
		return fmt.Errorf("upstream base URL, app ID, and app key are required")
	}

	return nil
}

// DSN returns the SQLite data source name, enabling WAL-friendly busy
// handling via a connection-string pragma so transient lock contention
// retries instead of failing immediately.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", c.Path)
}

// IsDevelopment returns true if the environment is "development".
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsStaging returns true if the environment is "staging".
func (c *Config) IsStaging() bool {
	return c.Environment == "staging"
}

// IsLocal returns true if the environment is "local".
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}
