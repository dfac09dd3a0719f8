package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.Scope != "inmofeed" {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
cache:
  backend: redis
  scope: staging
logging:
  level: DEBUG
tenants:
  - id: tenant-a
    external_feed_enabled: true
    external_feed_provider: resales
    external_feed_config:
      api_url: https://api.example.com
      cache_ttl_search: 600
    search:
      per_page: 12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Scope != "staging" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if len(cfg.Tenants) != 1 {
		t.Fatalf("tenants = %d", len(cfg.Tenants))
	}
	tn := cfg.Tenants[0]
	if !tn.FeedConfigured() {
		t.Error("tenant should be feed-configured")
	}
	if tn.Search.PerPage != 12 {
		t.Errorf("per_page = %d", tn.Search.PerPage)
	}
	if tn.ConfigString("api_url") != "https://api.example.com" {
		t.Errorf("api_url = %q", tn.ConfigString("api_url"))
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("CACHE_BACKEND", "redis")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("backend = %q, want env override", cfg.Cache.Backend)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad backend", "cache:\n  backend: memcached\n"},
		{"bad port", "server:\n  port: 99999\n"},
		{"duplicate tenant", "tenants:\n  - id: a\n  - id: a\n"},
		{"empty tenant id", "tenants:\n  - id: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("invalid config should fail validation")
			}
		})
	}
}
