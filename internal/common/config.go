// Package common provides shared utilities for Folioboard
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folioboard
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Logging     LoggingConfig   `toml:"logging"`
	Auth        AuthConfig      `toml:"auth"`
	Community   CommunityConfig `toml:"community"`
	Sentiment   SentimentConfig `toml:"sentiment"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the embedded store location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Brokerlink BrokerlinkConfig `toml:"brokerlink"`
	Trendfeed  TrendfeedConfig  `toml:"trendfeed"`
}

// BrokerlinkConfig holds brokerage provider API configuration
type BrokerlinkConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *BrokerlinkConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// TrendfeedConfig holds trending-stocks feed API configuration
type TrendfeedConfig struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	RateLimit    int    `toml:"rate_limit"`
	Timeout      string `toml:"timeout"`
	ChartTimeout string `toml:"chart_timeout"` // per-symbol enrichment timeout
}

// GetTimeout parses and returns the timeout duration
func (c *TrendfeedConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetChartTimeout parses and returns the per-symbol chart timeout.
func (c *TrendfeedConfig) GetChartTimeout() time.Duration {
	d, err := time.ParseDuration(c.ChartTimeout)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// AuthConfig holds bearer token validation configuration.
// Token issuance is owned by the external identity provider; the server
// only validates signatures and extracts claims.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// CommunityConfig holds leaderboard tuning.
type CommunityConfig struct {
	TopPositions    int `toml:"top_positions"`     // max top positions per leaderboard row
	DefaultPageSize int `toml:"default_page_size"` // leaderboard page size when limit is omitted
	MaxPageSize     int `toml:"max_page_size"`
}

// SentimentConfig holds filtered-pagination tuning.
type SentimentConfig struct {
	OverfetchMultiplier int `toml:"overfetch_multiplier"` // upstream window multiplier (M)
	DefaultPageSize     int `toml:"default_page_size"`
	MaxPageSize         int `toml:"max_page_size"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/folioboard",
		},
		Clients: ClientsConfig{
			Brokerlink: BrokerlinkConfig{
				BaseURL:   "https://api.brokerlink.io",
				RateLimit: 5,
				Timeout:   "30s",
			},
			Trendfeed: TrendfeedConfig{
				BaseURL:      "https://feed.trendpulse.io",
				RateLimit:    10,
				Timeout:      "10s",
				ChartTimeout: "2s",
			},
		},
		Auth: AuthConfig{
			JWTSecret: "dev-jwt-secret-change-in-production",
		},
		Community: CommunityConfig{
			TopPositions:    5,
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Sentiment: SentimentConfig{
			OverfetchMultiplier: 3,
			DefaultPageSize:     20,
			MaxPageSize:         100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIOBOARD_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIOBOARD_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIOBOARD_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FOLIOBOARD_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FOLIOBOARD_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if v := os.Getenv("FOLIOBOARD_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}

	if v := os.Getenv("FOLIOBOARD_BROKERLINK_API_KEY"); v != "" {
		config.Clients.Brokerlink.APIKey = v
	}

	if v := os.Getenv("FOLIOBOARD_TRENDFEED_API_KEY"); v != "" {
		config.Clients.Trendfeed.APIKey = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
