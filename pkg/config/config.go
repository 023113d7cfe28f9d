// Package config loads service configuration from config.yaml and the
// environment. Environment variables override YAML values; secrets and
// connection settings must come from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for medscan-engine.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Storage configuration (S3-compatible blob store)
	Storage StorageConfig `yaml:"storage"`

	// OCR configuration (vision model endpoint)
	OCR OCRConfig `yaml:"ocr"`
}

// DatabaseConfig holds PostgreSQL connection settings. All fields are
// required at process start; absence fails fast instead of producing a
// confusing downstream connection error.
type DatabaseConfig struct {
	Host           string `yaml:"-" env:"DATABASE_HOST" env-required:"true"`
	Port           int    `yaml:"-" env:"DATABASE_PORT" env-required:"true"`
	User           string `yaml:"-" env:"DATABASE_USER" env-required:"true"`
	Password       string `yaml:"-" env:"DATABASE_PASSWORD" env-required:"true"`
	Database       string `yaml:"-" env:"DATABASE_NAME" env-required:"true"`
	SSLMode        string `yaml:"ssl_mode" env:"DATABASE_SSL_MODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"DATABASE_MAX_CONNECTIONS" env-default:"25"`
}

// StorageConfig holds blob store settings. The endpoint and key pair
// point at any S3-compatible store (MinIO, Supabase storage gateway).
type StorageConfig struct {
	Endpoint  string `yaml:"-" env:"STORAGE_ENDPOINT" env-required:"true"`
	AccessKey string `yaml:"-" env:"STORAGE_ACCESS_KEY" env-required:"true"`
	SecretKey string `yaml:"-" env:"STORAGE_SECRET_KEY" env-required:"true"`
	Bucket    string `yaml:"-" env:"STORAGE_BUCKET" env-required:"true"`
	Region    string `yaml:"region" env:"STORAGE_REGION" env-default:"us-east-1"`
	// KeyPrefix namespaces uploaded objects within the bucket.
	KeyPrefix string `yaml:"key_prefix" env:"STORAGE_KEY_PREFIX" env-default:"medications"`
}

// OCRConfig holds settings for the external text-recognition endpoint.
type OCRConfig struct {
	Endpoint string `yaml:"endpoint" env:"OCR_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model    string `yaml:"model" env:"OCR_MODEL" env-default:"gpt-4o-mini"`
	APIKey   string `yaml:"-" env:"OCR_API_KEY"`
	// Timeout bounds one recognition call; a slow upstream otherwise
	// blocks the request indefinitely.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"OCR_TIMEOUT_SECONDS" env-default:"60"`
}

// Timeout returns the recognition timeout as a duration.
func (c *OCRConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads configuration from config.yaml (if present) with
// environment variable overrides, or from the environment alone.
// The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.Storage.Endpoint = strings.TrimSuffix(cfg.Storage.Endpoint, "/")

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
