package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port: got %d", cfg.Server.Port)
	}
	if cfg.Automation.Mode != "browser" {
		t.Errorf("automation.mode: got %q", cfg.Automation.Mode)
	}
	if cfg.Automation.NavigationTimeout != 15*time.Second {
		t.Errorf("navigation_timeout: got %s", cfg.Automation.NavigationTimeout)
	}
	if cfg.Enrichment.DefaultCurrency != "GBP" {
		t.Errorf("default_currency: got %q", cfg.Enrichment.DefaultCurrency)
	}
	if cfg.Storage.Enabled {
		t.Error("storage must be disabled by default")
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scout.yaml")
	content := []byte(`
server:
  port: 9999
automation:
  mode: static
  scroll_cycles: 5
enrichment:
  provider: openai
  model: gpt-4o-mini
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("server.port: got %d", cfg.Server.Port)
	}
	if cfg.Automation.Mode != "static" {
		t.Errorf("automation.mode: got %q", cfg.Automation.Mode)
	}
	if cfg.Automation.ScrollCycles != 5 {
		t.Errorf("scroll_cycles: got %d", cfg.Automation.ScrollCycles)
	}
	if cfg.Enrichment.Provider != "openai" {
		t.Errorf("provider: got %q", cfg.Enrichment.Provider)
	}
	// Untouched keys keep their defaults.
	if cfg.Enrichment.DefaultCurrency != "GBP" {
		t.Errorf("default_currency: got %q", cfg.Enrichment.DefaultCurrency)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SCOUT_SERVER_PORT", "7777")
	t.Setenv("SCOUT_ENRICHMENT_PROVIDER", "gemini")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("server.port: got %d", cfg.Server.Port)
	}
	if cfg.Enrichment.Provider != "gemini" {
		t.Errorf("provider: got %q", cfg.Enrichment.Provider)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad mode", func(c *Config) { c.Automation.Mode = "puppeteer" }},
		{"bad provider", func(c *Config) { c.Enrichment.Provider = "mistral" }},
		{"empty model", func(c *Config) { c.Enrichment.Model = "" }},
		{"bad currency", func(c *Config) { c.Enrichment.DefaultCurrency = "POUNDS" }},
		{"bad storage type", func(c *Config) { c.Storage.Enabled = true; c.Storage.Type = "sqlite" }},
		{"mongo without uri", func(c *Config) { c.Storage.Enabled = true; c.Storage.Type = "mongodb" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://www.size.co.uk/product/x/1/",
		"http://example.com/item",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q): unexpected error %v", u, err)
		}
	}

	invalid := []string{"", "ftp://example.com/x", "https://", "::bad::"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q): expected error", u)
		}
	}
}
