package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and CLI flags.
// Priority (highest to lowest): CLI flags > env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults from struct
	setDefaults(v, cfg)

	// Environment variable support
	v.SetEnvPrefix("SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search default locations
		v.SetConfigName("scout")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".scout"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.requests_per_sec", cfg.Server.RequestsPerSec)

	v.SetDefault("automation.mode", cfg.Automation.Mode)
	v.SetDefault("automation.navigation_timeout", cfg.Automation.NavigationTimeout)
	v.SetDefault("automation.settle_delay", cfg.Automation.SettleDelay)
	v.SetDefault("automation.scroll_cycles", cfg.Automation.ScrollCycles)
	v.SetDefault("automation.scroll_delay", cfg.Automation.ScrollDelay)
	v.SetDefault("automation.user_agent", cfg.Automation.UserAgent)
	v.SetDefault("automation.viewport_width", cfg.Automation.ViewportWidth)
	v.SetDefault("automation.viewport_height", cfg.Automation.ViewportHeight)

	v.SetDefault("fetcher.max_body_size", cfg.Fetcher.MaxBodySize)
	v.SetDefault("fetcher.idle_conn_timeout", cfg.Fetcher.IdleConnTimeout)
	v.SetDefault("fetcher.max_idle_conns", cfg.Fetcher.MaxIdleConns)
	v.SetDefault("fetcher.user_agents", cfg.Fetcher.UserAgents)

	v.SetDefault("enrichment.provider", cfg.Enrichment.Provider)
	v.SetDefault("enrichment.model", cfg.Enrichment.Model)
	v.SetDefault("enrichment.endpoint", cfg.Enrichment.Endpoint)
	v.SetDefault("enrichment.max_tokens", cfg.Enrichment.MaxTokens)
	v.SetDefault("enrichment.temperature", cfg.Enrichment.Temperature)
	v.SetDefault("enrichment.timeout", cfg.Enrichment.Timeout)
	v.SetDefault("enrichment.default_currency", cfg.Enrichment.DefaultCurrency)

	v.SetDefault("storage.enabled", cfg.Storage.Enabled)
	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.output_path", cfg.Storage.OutputPath)
	v.SetDefault("storage.mongo_database", cfg.Storage.MongoDatabase)
	v.SetDefault("storage.mongo_collection", cfg.Storage.MongoCollection)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.port", cfg.Metrics.Port)
	v.SetDefault("metrics.path", cfg.Metrics.Path)
}
