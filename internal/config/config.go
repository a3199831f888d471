// Package config loads runtime settings from the environment. A .env
// file in the working directory is honored when present so local agent
// hosts can keep the API key out of their MCP client config.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tidewater-labs/linear-mcp/internal/cache"
	"github.com/tidewater-labs/linear-mcp/internal/paginate"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
)

// Environment variable names.
const (
	EnvAPIKey        = "LINEAR_API_KEY"
	EnvEndpoint      = "LINEAR_MCP_ENDPOINT"
	EnvRequestLimit  = "LINEAR_MCP_REQUEST_LIMIT"
	EnvMaxPages      = "LINEAR_MCP_MAX_PAGES"
	EnvCacheTTL      = "LINEAR_MCP_CACHE_TTL"
	EnvDisabledTools = "LINEAR_MCP_DISABLED_TOOLS"
)

// personalKeyPrefix is how Linear personal API keys start. Other
// credential shapes (OAuth tokens) still work against the API, so a
// mismatch is a warning, not an error.
const personalKeyPrefix = "lin_api_"

// Config holds application configuration.
type Config struct {
	// APIKey is the Linear API credential. Required.
	APIKey string

	// Endpoint overrides the GraphQL endpoint. Empty means the public
	// Linear API; useful for proxies and tests.
	Endpoint string

	// RequestLimit is the number of outbound requests admitted per
	// sliding window.
	RequestLimit int

	// MaxPages caps how many pages a collected listing may fetch in one
	// tool call.
	MaxPages int

	// CacheTTL is how long resolved name-to-id mappings and the
	// workspace snapshot stay fresh.
	CacheTTL time.Duration

	// DisabledTools lists MCP tool names to exclude from registration.
	// Unknown names are logged as warnings.
	DisabledTools []string
}

// DefaultConfig returns the default configuration, without a key.
func DefaultConfig() *Config {
	return &Config{
		RequestLimit: ratelimit.DefaultLimit,
		MaxPages:     paginate.DefaultMaxPages,
		CacheTTL:     cache.DefaultTTL,
	}
}

// Load reads configuration from the environment, first folding in a
// .env file if one exists in the working directory.
func Load() (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv(EnvAPIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s is required; create a personal API key at linear.app/settings/api", EnvAPIKey)
	}

	cfg.Endpoint = os.Getenv(EnvEndpoint)

	if v := os.Getenv(EnvRequestLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", EnvRequestLimit, v)
		}
		cfg.RequestLimit = n
	}

	if v := os.Getenv(EnvMaxPages); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", EnvMaxPages, v)
		}
		cfg.MaxPages = n
	}

	if v := os.Getenv(EnvCacheTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%s must be a positive duration like 5m, got %q", EnvCacheTTL, v)
		}
		cfg.CacheTTL = d
	}

	cfg.DisabledTools = splitList(os.Getenv(EnvDisabledTools))

	return cfg, nil
}

// KeyLooksNonPersonal reports whether the API key does not carry the
// personal-key prefix. Callers warn on this but proceed.
func (c *Config) KeyLooksNonPersonal() bool {
	return !strings.HasPrefix(c.APIKey, personalKeyPrefix)
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
