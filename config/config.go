// Package config loads application configuration from environment
// variables, with an optional YAML file providing defaults underneath
// them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Furafrafrfr/readability"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Extract   ExtractConfig   `yaml:"extract"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
	Webhook   WebhookConfig   `yaml:"webhook"`
}

// CacheConfig controls the extraction result cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached results.
	MaxEntries int `yaml:"max_entries"` // default: 1000

	// TTL is how long a cached result stays valid.
	TTL time.Duration `yaml:"ttl"` // default: 1h
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string `yaml:"host"` // default: "0.0.0.0"
	Port int    `yaml:"port"` // default: 8080
	Mode string `yaml:"mode"` // "debug", "release", "test"; default: "release"
}

// ExtractConfig controls the extraction engine's default behavior. It
// mirrors readability.Options field for field, minus the fields that
// aren't representable as plain config (regexes, callbacks, the
// serializer hook), which keep their package defaults.
type ExtractConfig struct {
	// MaxElemsToParse aborts extraction above this many elements. 0 disables it.
	MaxElemsToParse int `yaml:"max_elems_to_parse"`

	// NbTopCandidates is the size of the top-N candidate list tracked during scoring.
	NbTopCandidates int `yaml:"nb_top_candidates"` // default: 5

	// CharThreshold is the minimum accepted textContent length.
	CharThreshold int `yaml:"char_threshold"` // default: 500

	// ClassesToPreserve lists extra class tokens the post-processor keeps.
	ClassesToPreserve []string `yaml:"classes_to_preserve"`

	// KeepClasses disables class-attribute stripping entirely.
	KeepClasses bool `yaml:"keep_classes"`

	// DisableJSONLD skips the JSON-LD metadata pass.
	DisableJSONLD bool `yaml:"disable_json_ld"`

	// LinkDensityModifier adjusts the link-density thresholds used by conditional cleaning.
	LinkDensityModifier float64 `yaml:"link_density_modifier"`

	// DefaultFormat is loaded from file and environment ("html", "text",
	// or "markdown") but is not read by the API or CLI, which both fall
	// back to "html" when the caller doesn't specify a format.
	DefaultFormat string `yaml:"default_format"` // default: "html"
}

// ToOptions builds a readability.Options from c, leaving Debug,
// AllowedVideoRegex, OnRecoverableError, and Serializer at their
// zero/default values for the caller to fill in.
func (c ExtractConfig) ToOptions() readability.Options {
	opts := readability.DefaultOptions()
	opts.MaxElemsToParse = c.MaxElemsToParse
	if c.NbTopCandidates > 0 {
		opts.NbTopCandidates = c.NbTopCandidates
	}
	if c.CharThreshold > 0 {
		opts.CharThreshold = c.CharThreshold
	}
	if len(c.ClassesToPreserve) > 0 {
		opts.ClassesToPreserve = c.ClassesToPreserve
	}
	opts.KeepClasses = c.KeepClasses
	opts.DisableJSONLD = c.DisableJSONLD
	opts.LinkDensityModifier = c.LinkDensityModifier
	return opts
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool `yaml:"enabled"` // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string `yaml:"api_keys"`
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 `yaml:"requests_per_second"` // default: 5

	// Burst is the maximum burst size per API key.
	Burst int `yaml:"burst"` // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // default: "info"
	Format string `yaml:"format"` // "json" or "text"; default: "json"
}

// WebhookConfig holds settings for the optional batch-completion
// notification. They are loaded from file and environment but not read by
// the batch handler, which signs with BatchRequest.WebhookSecret and uses a
// fixed 10s delivery timeout.
type WebhookConfig struct {
	// Secret is an HMAC-SHA256 signing secret for webhook payloads.
	Secret string `yaml:"secret"`

	// Timeout is a per-delivery-attempt time limit.
	Timeout time.Duration `yaml:"timeout"` // default: 10s
}

// defaults returns the baseline configuration before any file or
// environment overrides are applied.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080, Mode: "release"},
		Extract: ExtractConfig{
			NbTopCandidates: 5,
			CharThreshold:   500,
			DefaultFormat:   "html",
		},
		Auth:      AuthConfig{Enabled: true},
		RateLimit: RateLimitConfig{RequestsPerSecond: 5.0, Burst: 10},
		Cache:     CacheConfig{MaxEntries: 1000, TTL: time.Hour},
		Log:       LogConfig{Level: "info", Format: "json"},
		Webhook:   WebhookConfig{Timeout: 10 * time.Second},
	}
}

// LoadFile reads a YAML config file as the base layer, then applies
// environment overrides on top via the same variable names Load uses.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// Load reads configuration from environment variables alone, layered
// over the built-in defaults.
func Load() *Config {
	cfg := defaults()
	applyEnv(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = envOr("READABILITY_HOST", cfg.Server.Host)
	cfg.Server.Port = envIntOr("READABILITY_PORT", cfg.Server.Port)
	cfg.Server.Mode = envOr("READABILITY_MODE", cfg.Server.Mode)

	cfg.Extract.MaxElemsToParse = envIntOr("READABILITY_MAX_ELEMS", cfg.Extract.MaxElemsToParse)
	cfg.Extract.NbTopCandidates = envIntOr("READABILITY_TOP_CANDIDATES", cfg.Extract.NbTopCandidates)
	cfg.Extract.CharThreshold = envIntOr("READABILITY_CHAR_THRESHOLD", cfg.Extract.CharThreshold)
	cfg.Extract.ClassesToPreserve = envSliceOr("READABILITY_PRESERVE_CLASSES", cfg.Extract.ClassesToPreserve)
	cfg.Extract.KeepClasses = envBoolOr("READABILITY_KEEP_CLASSES", cfg.Extract.KeepClasses)
	cfg.Extract.DisableJSONLD = envBoolOr("READABILITY_DISABLE_JSONLD", cfg.Extract.DisableJSONLD)
	cfg.Extract.LinkDensityModifier = envFloatOr("READABILITY_LINK_DENSITY_MOD", cfg.Extract.LinkDensityModifier)
	cfg.Extract.DefaultFormat = envOr("READABILITY_DEFAULT_FORMAT", cfg.Extract.DefaultFormat)

	cfg.Auth.Enabled = envBoolOr("READABILITY_AUTH_ENABLED", cfg.Auth.Enabled)
	cfg.Auth.APIKeys = envSliceOr("READABILITY_API_KEYS", cfg.Auth.APIKeys)

	cfg.RateLimit.RequestsPerSecond = envFloatOr("READABILITY_RATE_RPS", cfg.RateLimit.RequestsPerSecond)
	cfg.RateLimit.Burst = envIntOr("READABILITY_RATE_BURST", cfg.RateLimit.Burst)

	cfg.Cache.MaxEntries = envIntOr("READABILITY_CACHE_MAX_ENTRIES", cfg.Cache.MaxEntries)
	cfg.Cache.TTL = envDurationOr("READABILITY_CACHE_TTL", cfg.Cache.TTL)

	cfg.Log.Level = envOr("READABILITY_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOr("READABILITY_LOG_FORMAT", cfg.Log.Format)

	cfg.Webhook.Secret = envOr("READABILITY_WEBHOOK_SECRET", cfg.Webhook.Secret)
	cfg.Webhook.Timeout = envDurationOr("READABILITY_WEBHOOK_TIMEOUT", cfg.Webhook.Timeout)
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
