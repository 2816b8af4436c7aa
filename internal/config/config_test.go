// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const minimalYAML = `
source:
  base_url: https://www.vidsite.test
cdn:
  host: cdn.vidsite.test
`

func TestLoadFromBytesAppliesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("LoadFromBytes() error = %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != 15*time.Second || cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server timeouts = %v/%v", cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	}
	if cfg.Source.SearchTimeout != 10*time.Second || cfg.Source.DetailsTimeout != 15*time.Second {
		t.Errorf("source timeouts = %v/%v", cfg.Source.SearchTimeout, cfg.Source.DetailsTimeout)
	}
	if cfg.Source.RateLimit != 3.0 || cfg.Source.RateBurst != 5 {
		t.Errorf("rate = %v burst %d", cfg.Source.RateLimit, cfg.Source.RateBurst)
	}
	if !strings.HasPrefix(cfg.Source.UserAgent, "Mozilla/5.0") {
		t.Errorf("user agent = %q, want browser-like default", cfg.Source.UserAgent)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromBytesFullConfig(t *testing.T) {
	yaml := `
server:
  address: ":9090"
  read_timeout: 5s
  write_timeout: 10s
source:
  base_url: https://www.vidsite.test
  user_agent: custom-agent/1.0
  search_timeout: 3s
  details_timeout: 4s
  rate_limit: 1.5
  rate_burst: 2
cdn:
  host: cdn.vidsite.test
logging:
  level: debug
`
	cfg, err := LoadFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("LoadFromBytes() error = %v", err)
	}
	if cfg.Server.Address != ":9090" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Source.UserAgent != "custom-agent/1.0" || cfg.Source.RateLimit != 1.5 || cfg.Source.RateBurst != 2 {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Source.SearchTimeout != 3*time.Second || cfg.Source.DetailsTimeout != 4*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.Source.SearchTimeout, cfg.Source.DetailsTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadFromBytesEnvironmentExpansion(t *testing.T) {
	t.Setenv("VIDPROXY_TEST_BASE", "https://env.vidsite.test")
	yaml := `
source:
  base_url: ${VIDPROXY_TEST_BASE}
cdn:
  host: cdn.vidsite.test
`
	cfg, err := LoadFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("LoadFromBytes() error = %v", err)
	}
	if cfg.Source.BaseURL != "https://env.vidsite.test" {
		t.Errorf("base_url = %q, want expanded env value", cfg.Source.BaseURL)
	}
}

func TestLoadFromBytesValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty input", ""},
		{"missing base_url", "cdn:\n  host: cdn.test\n"},
		{"relative base_url", "source:\n  base_url: www.vidsite.test\ncdn:\n  host: cdn.test\n"},
		{"bad scheme", "source:\n  base_url: ftp://www.vidsite.test\ncdn:\n  host: cdn.test\n"},
		{"missing cdn host", "source:\n  base_url: https://www.vidsite.test\n"},
		{"cdn host with path", "source:\n  base_url: https://www.vidsite.test\ncdn:\n  host: cdn.test/media\n"},
		{"bad log level", minimalYAML + "logging:\n  level: loud\n"},
		{"malformed yaml", "source: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromBytes([]byte(tt.yaml)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Source.BaseURL != "https://www.vidsite.test" {
		t.Errorf("base_url = %q", cfg.Source.BaseURL)
	}

	if _, err := LoadFromFile(""); err == nil {
		t.Fatal("expected an error for an empty filename")
	}
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(minimalYAML))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.CDN.Host != "cdn.vidsite.test" {
		t.Errorf("cdn host = %q", cfg.CDN.Host)
	}
	if _, err := LoadFromReader(nil); err == nil {
		t.Fatal("expected an error for a nil reader")
	}
}
