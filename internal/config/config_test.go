package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/overwave-systems/overwave/internal/wfc"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if len(cfg.Stream.WebSocket.AllowedOrigins) != 0 {
		t.Errorf("expected empty allowed origins by default, got %v", cfg.Stream.WebSocket.AllowedOrigins)
	}
	if cfg.Stream.WebSocket.MaxMessageSize != 4096 {
		t.Errorf("expected max message size 4096, got %d", cfg.Stream.WebSocket.MaxMessageSize)
	}
	if cfg.Generation.PatternSize != 2 {
		t.Errorf("expected default pattern size 2, got %d", cfg.Generation.PatternSize)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %s", cfg.Storage.Driver)
	}
}

func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config for missing file, got nil")
	}
	if len(cfg.Stream.WebSocket.AllowedOrigins) != 0 {
		t.Errorf("expected empty allowed origins by default")
	}
}

func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "generator.yaml")

	content := `
generation:
  pattern_size: 3
  output_width: 40
  output_height: 20
  seed_phrase: "dungeon-floor-1"
  max_attempts: 500
  use_center_tile_filter: true
storage:
  driver: postgres
  postgres:
    host: db.internal
    port: 5432
stream:
  listen_addr: ":8090"
  websocket:
    allowed_origins:
      - "https://example.com"
      - "http://localhost:3000"
    max_message_size: 8192
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Generation.PatternSize != 3 {
		t.Errorf("expected pattern size 3, got %d", cfg.Generation.PatternSize)
	}
	if cfg.Generation.SeedPhrase != "dungeon-floor-1" {
		t.Errorf("expected seed phrase to load, got %q", cfg.Generation.SeedPhrase)
	}
	if cfg.Storage.Driver != "postgres" || cfg.Storage.Postgres.Host != "db.internal" {
		t.Errorf("storage config did not load: %+v", cfg.Storage)
	}
	if len(cfg.Stream.WebSocket.AllowedOrigins) != 2 {
		t.Errorf("expected 2 allowed origins, got %d", len(cfg.Stream.WebSocket.AllowedOrigins))
	}
	if cfg.Stream.WebSocket.MaxMessageSize != 8192 {
		t.Errorf("expected max message size 8192, got %d", cfg.Stream.WebSocket.MaxMessageSize)
	}
}

func TestGenerationConfigToWFCConfigResolvesSeedPhrase(t *testing.T) {
	g := GenerationConfig{PatternSize: 2, OutputWidth: 10, OutputHeight: 10, SeedPhrase: "abc"}
	cfg := g.ToWFCConfig()
	if cfg.Seed != wfc.DeriveSeed("abc") {
		t.Fatalf("seed not derived from phrase: got %d", cfg.Seed)
	}
}

func TestGenerationConfigToWFCConfigKeepsExplicitSeed(t *testing.T) {
	g := GenerationConfig{PatternSize: 2, OutputWidth: 10, OutputHeight: 10, Seed: 99}
	cfg := g.ToWFCConfig()
	if cfg.Seed != 99 {
		t.Fatalf("got seed %d, want 99 (no phrase set)", cfg.Seed)
	}
}

func TestIsOriginAllowedEmptyListSameOrigin(t *testing.T) {
	cfg := WebSocketConfig{AllowedOrigins: []string{}}

	if !cfg.IsOriginAllowed("", "localhost:4000") {
		t.Error("expected empty origin to be allowed (same-origin)")
	}
	if !cfg.IsOriginAllowed("http://localhost:4000", "localhost:4000") {
		t.Error("expected matching origin to be allowed (same-origin)")
	}
	if cfg.IsOriginAllowed("http://evil.com", "localhost:4000") {
		t.Error("expected different origin to be rejected (same-origin policy)")
	}
}

func TestIsOriginAllowedWildcard(t *testing.T) {
	cfg := WebSocketConfig{AllowedOrigins: []string{"*"}}

	if !cfg.IsOriginAllowed("http://anything.com", "localhost:4000") {
		t.Error("expected wildcard to allow any origin")
	}
	if !cfg.IsOriginAllowed("", "localhost:4000") {
		t.Error("expected wildcard to allow empty origin")
	}
}

func TestIsOriginAllowedExactMatch(t *testing.T) {
	cfg := WebSocketConfig{AllowedOrigins: []string{"https://example.com", "http://localhost:3000"}}

	if !cfg.IsOriginAllowed("https://example.com", "localhost:4000") {
		t.Error("expected exact match to be allowed")
	}
	if cfg.IsOriginAllowed("http://evil.com", "localhost:4000") {
		t.Error("expected non-matching origin to be rejected")
	}
	if cfg.IsOriginAllowed("https://example.com:8080", "localhost:4000") {
		t.Error("expected partial match to be rejected")
	}
}

func TestIsSameOrigin(t *testing.T) {
	tests := []struct {
		origin      string
		requestHost string
		expected    bool
	}{
		{"", "localhost:4000", true},
		{"http://localhost:4000", "localhost:4000", true},
		{"https://localhost:4000", "localhost:4000", true},
		{"http://localhost:4000/", "localhost:4000", true},
		{"http://example.com", "localhost:4000", false},
		{"http://localhost:3000", "localhost:4000", false},
		{"ws://localhost:4000", "localhost:4000", true},
	}

	for _, tt := range tests {
		result := isSameOrigin(tt.origin, tt.requestHost)
		if result != tt.expected {
			t.Errorf("isSameOrigin(%q, %q) = %v, want %v", tt.origin, tt.requestHost, result, tt.expected)
		}
	}
}
