package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-ats/internal/config"
)

// BatchPath is the batch analysis route, limited more strictly than the rest
const BatchPath = "/v1/analyze/batch"

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// FromServiceConfig builds the limiter configuration from the service configuration.
func FromServiceConfig(c config.RateLimitConfig) *Config {
	return &Config{
		Enabled:         c.Enabled,
		DefaultLimit:    c.RequestsPerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    c.Burst,
		CleanupInterval: c.CleanupInterval,
		IdleTTL:         c.IdleTTL,
		Whitelist:       parseIPList(c.Whitelist),
		Blacklist:       parseIPList(c.Blacklist),
		EndpointConfigs: []EndpointConfig{
			{Path: BatchPath, Method: http.MethodPost, Limit: c.BatchPerMinute, Window: time.Minute, Burst: c.BatchBurst},
		},
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Batches fan out to many analyses
		{Path: BatchPath, Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
	}
}

// parseIPList turns a list of client addresses into a set.
func parseIPList(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
