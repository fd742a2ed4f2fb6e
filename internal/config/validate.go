package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestsPerSec <= 0 {
		return fmt.Errorf("server.requests_per_sec must be > 0")
	}

	if cfg.Automation.Mode != "browser" && cfg.Automation.Mode != "static" {
		return fmt.Errorf("automation.mode must be 'browser' or 'static', got %q", cfg.Automation.Mode)
	}
	if cfg.Automation.NavigationTimeout <= 0 {
		return fmt.Errorf("automation.navigation_timeout must be > 0")
	}
	if cfg.Automation.ScrollCycles < 0 {
		return fmt.Errorf("automation.scroll_cycles must be >= 0, got %d", cfg.Automation.ScrollCycles)
	}

	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}

	validProviders := map[string]bool{
		"ollama": true, "openai": true, "gemini": true, "custom": true,
	}
	if !validProviders[cfg.Enrichment.Provider] {
		return fmt.Errorf("enrichment.provider %q is not supported (valid: ollama, openai, gemini, custom)", cfg.Enrichment.Provider)
	}
	if cfg.Enrichment.Model == "" {
		return fmt.Errorf("enrichment.model must not be empty")
	}
	if len(cfg.Enrichment.DefaultCurrency) != 3 {
		return fmt.Errorf("enrichment.default_currency must be a 3-letter code, got %q", cfg.Enrichment.DefaultCurrency)
	}

	if cfg.Storage.Enabled {
		validStorageTypes := map[string]bool{
			"json": true, "jsonl": true, "mongodb": true,
		}
		if !validStorageTypes[cfg.Storage.Type] {
			return fmt.Errorf("storage.type %q is not supported (valid: json, jsonl, mongodb)", cfg.Storage.Type)
		}
		if cfg.Storage.Type == "mongodb" && cfg.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongo_uri must be set for mongodb storage")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Port < 1 || cfg.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be 1-65535, got %d", cfg.Metrics.Port)
		}
	}

	return nil
}

// ValidateURL checks if a URL string is a scrapeable product page address.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
