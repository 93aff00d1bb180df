// Package config provides configuration loading and validation for the service and CLI.
//
// Values come, in increasing precedence, from built-in defaults, an optional YAML file
// (ats-analyzer.yaml in the working directory unless a path is given) and ATS_*
// environment variables such as ATS_SERVER_PORT or ATS_RATE_LIMIT_ENABLED.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load
	EnvPrefix = "ATS"
	// FileName is the config file looked up when no path is given
	FileName = "ats-analyzer"
)

// Config represents the service configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate-limit"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle-timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max-body-bytes" validate:"min=1024"`
}

// LogConfig selects the log encoder and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// RateLimitConfig configures per-client token buckets
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerMinute int           `mapstructure:"requests-per-minute" validate:"min=1"`
	Burst             int           `mapstructure:"burst" validate:"min=1"`
	BatchPerMinute    int           `mapstructure:"batch-per-minute" validate:"min=1"`
	BatchBurst        int           `mapstructure:"batch-burst" validate:"min=1"`
	CleanupInterval   time.Duration `mapstructure:"cleanup-interval" validate:"gt=0"`
	IdleTTL           time.Duration `mapstructure:"idle-ttl" validate:"gt=0"`
	Whitelist         []string      `mapstructure:"whitelist"`
	Blacklist         []string      `mapstructure:"blacklist"`
}

// AnalysisConfig configures the scorer, matcher and batch pool
type AnalysisConfig struct {
	HeuristicsFile   string `mapstructure:"heuristics-file"`
	Locale           string `mapstructure:"locale" validate:"omitempty,oneof=pt-BR en"`
	BatchConcurrency int    `mapstructure:"batch-concurrency" validate:"min=1,max=256"`
	MaxBatchSize     int    `mapstructure:"max-batch-size" validate:"min=1,max=10000"`
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read-timeout", 15*time.Second)
	v.SetDefault("server.write-timeout", 60*time.Second)
	v.SetDefault("server.idle-timeout", 60*time.Second)
	v.SetDefault("server.shutdown-timeout", 30*time.Second)
	v.SetDefault("server.max-body-bytes", 4<<20)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("rate-limit.enabled", true)
	v.SetDefault("rate-limit.requests-per-minute", 600)
	v.SetDefault("rate-limit.burst", 60)
	v.SetDefault("rate-limit.batch-per-minute", 30)
	v.SetDefault("rate-limit.batch-burst", 5)
	v.SetDefault("rate-limit.cleanup-interval", 5*time.Minute)
	v.SetDefault("rate-limit.idle-ttl", time.Hour)
	v.SetDefault("rate-limit.whitelist", []string{})
	v.SetDefault("rate-limit.blacklist", []string{})

	v.SetDefault("analysis.heuristics-file", "")
	v.SetDefault("analysis.locale", "")
	v.SetDefault("analysis.batch-concurrency", 8)
	v.SetDefault("analysis.max-batch-size", 100)
}

// New returns a viper instance with defaults and environment bindings applied
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. An empty path looks for ats-analyzer.yaml in the
// working directory and tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.RateLimit.Whitelist = splitList(cfg.RateLimit.Whitelist)
	cfg.RateLimit.Blacklist = splitList(cfg.RateLimit.Blacklist)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with built-in defaults only
func Default() *Config {
	cfg, err := FromViper(New())
	if err != nil {
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// splitList trims entries and splits comma-separated values from the environment
func splitList(list []string) []string {
	result := make([]string, 0, len(list))
	for _, item := range list {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
