package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/docker/go-units"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Parsed-document cache.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration

	// Inspect tool paging.
	ListLimit int
	MaxLimit  int

	// MaxInlineSize caps inline document content in bytes.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from HSRGEN_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:  envBool("HSRGEN_CACHE_ENABLED", true),
		CacheMaxSize:  envInt("HSRGEN_CACHE_MAX_SIZE", 10),
		CacheTTL:      envDuration("HSRGEN_CACHE_TTL", 15*time.Minute),
		ListLimit:     envInt("HSRGEN_LIST_LIMIT", 100),
		MaxLimit:      envInt("HSRGEN_MAX_LIMIT", 1000),
		MaxInlineSize: envSize("HSRGEN_MAX_INLINE_SIZE", 10*units.MiB),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// envSize accepts human sizes such as "512KiB" or "10MB".
func envSize(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := units.RAMInBytes(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", units.BytesSize(float64(fallback)))
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
