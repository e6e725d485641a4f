package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/overwave-systems/overwave/internal/wfc"
	"github.com/overwave-systems/overwave/internal/wfcstore"
)

// Config holds top-level configuration for a generation service: the
// exemplar/solve parameters, the catalog store, and the optional streaming
// interface. Logging is not part of it: internal/logger loads its own
// Config.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Storage    wfcstore.Config  `yaml:"storage"`
	Stream     StreamConfig     `yaml:"stream"`
}

// GenerationConfig mirrors wfc.Config for YAML configuration, plus the
// fields that live outside the core's scope: where exemplars are loaded
// from and whether to apply augmentation before building the catalog.
type GenerationConfig struct {
	// ExemplarPaths lists exemplar text files to load and extract
	// patterns from. Loading and decoding exemplars is left to the
	// caller of the core (outside wfc's scope); this just records where
	// they live.
	ExemplarPaths []string `yaml:"exemplar_paths"`

	// Augment expands each loaded exemplar into its eight rotation/
	// reflection variants (wfc.Augment) before pattern extraction.
	Augment bool `yaml:"augment"`

	PatternSize         int    `yaml:"pattern_size"`
	OutputWidth         int    `yaml:"output_width"`
	OutputHeight        int    `yaml:"output_height"`
	Seed                int64  `yaml:"seed"`
	SeedPhrase          string `yaml:"seed_phrase"` // if set, overrides Seed via wfc.DeriveSeed
	MaxAttempts         int    `yaml:"max_attempts"`
	UseCenterTileFilter bool   `yaml:"use_center_tile_filter"`
}

// StreamConfig holds the streaming interface's WebSocket settings.
type StreamConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	WebSocket  WebSocketConfig `yaml:"websocket"`
}

// WebSocketConfig holds WebSocket-specific settings for streaming
// observers.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect via
	// WebSocket. Empty list enforces same-origin policy. Use "*" to
	// allow all origins (not recommended for production).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// DefaultConfig returns a Config with secure, local-development defaults:
// a small deterministic solve against a SQLite catalog store, streaming
// disabled unless ListenAddr is set.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			PatternSize:         2,
			OutputWidth:         32,
			OutputHeight:        32,
			MaxAttempts:         1000,
			UseCenterTileFilter: true,
		},
		Storage: wfcstore.DefaultConfig("data/wfc.db"),
		Stream: StreamConfig{
			WebSocket: WebSocketConfig{
				AllowedOrigins: []string{}, // Same-origin only by default
				MaxMessageSize: 4096,
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), err
	}

	return cfg, nil
}

// ToWFCConfig converts a GenerationConfig into the wfc.Config the core
// accepts, resolving SeedPhrase to a concrete seed when set.
func (g GenerationConfig) ToWFCConfig() wfc.Config {
	cfg := wfc.Config{
		PatternSize:         g.PatternSize,
		OutputWidth:         g.OutputWidth,
		OutputHeight:        g.OutputHeight,
		Seed:                g.Seed,
		MaxAttempts:         g.MaxAttempts,
		UseCenterTileFilter: g.UseCenterTileFilter,
	}
	if g.SeedPhrase != "" {
		cfg.Seed = wfc.DeriveSeed(g.SeedPhrase)
	}
	return cfg
}

// IsOriginAllowed checks if the given origin is allowed based on the
// config. Returns true if:
//   - AllowedOrigins contains "*" (allow all)
//   - AllowedOrigins contains the exact origin
//   - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return true
		}
		if allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host (same-origin policy).
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means same-origin (e.g., non-browser client)
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
