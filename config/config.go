package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Parser    ParserConfig
	Recommend RecommendConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig points to the static product and celebrity datasets
type CatalogConfig struct {
	ProductsPath    string `mapstructure:"products_path"`
	CelebritiesPath string `mapstructure:"celebrities_path"`
}

// ParserConfig holds rider parser configuration
type ParserConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// RecommendConfig holds recommendation configuration
type RecommendConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
}

// CacheConfig holds parse-cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	PerIPRPS float64 `mapstructure:"per_ip_rps"`
	Burst    int     `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/riderbuilder/")

	// Environment variable settings
	v.SetEnvPrefix("RIDERBUILDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.products_path", "./data/products.json")
	v.SetDefault("catalog.celebrities_path", "./data/celebrity-riders.json")

	// Parser defaults
	v.SetDefault("parser.enable_debug_logging", false)

	// Recommendation defaults
	v.SetDefault("recommend.default_limit", 10)

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip_rps", 10.0)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.ProductsPath == "" {
		return fmt.Errorf("products path is required (set RIDERBUILDER_CATALOG_PRODUCTS_PATH)")
	}

	if config.Recommend.DefaultLimit < 1 {
		return fmt.Errorf("recommend default limit must be positive, got: %d", config.Recommend.DefaultLimit)
	}

	if config.RateLimit.PerIPRPS < 0 {
		return fmt.Errorf("rate limit must not be negative, got: %f", config.RateLimit.PerIPRPS)
	}

	return nil
}
