package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for Scout.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"      yaml:"server"`
	Automation  AutomationConfig  `mapstructure:"automation"  yaml:"automation"`
	Fetcher     FetcherConfig     `mapstructure:"fetcher"     yaml:"fetcher"`
	Enrichment  EnrichmentConfig  `mapstructure:"enrichment"  yaml:"enrichment"`
	Storage     StorageConfig     `mapstructure:"storage"     yaml:"storage"`
	Logging     LoggingConfig     `mapstructure:"logging"     yaml:"logging"`
	Metrics     MetricsConfig     `mapstructure:"metrics"     yaml:"metrics"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port           int     `mapstructure:"port"             yaml:"port"`
	RequestsPerSec float64 `mapstructure:"requests_per_sec" yaml:"requests_per_sec"`
}

// AutomationConfig controls the browser automation collaborator.
type AutomationConfig struct {
	// Mode is "browser" (headless Chromium via rod) or "static"
	// (plain HTTP fetch, markup-only signals).
	Mode string `mapstructure:"mode" yaml:"mode"`

	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	SettleDelay       time.Duration `mapstructure:"settle_delay"       yaml:"settle_delay"`
	ScrollCycles      int           `mapstructure:"scroll_cycles"      yaml:"scroll_cycles"`
	ScrollDelay       time.Duration `mapstructure:"scroll_delay"       yaml:"scroll_delay"`

	// Mobile emulation: many product pages serve simpler, image-forward
	// markup to phones.
	UserAgent      string `mapstructure:"user_agent"      yaml:"user_agent"`
	ViewportWidth  int    `mapstructure:"viewport_width"  yaml:"viewport_width"`
	ViewportHeight int    `mapstructure:"viewport_height" yaml:"viewport_height"`
}

// FetcherConfig controls the static HTTP fallback fetcher.
type FetcherConfig struct {
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
	UserAgents      []string      `mapstructure:"user_agents"       yaml:"user_agents"`
}

// EnrichmentConfig controls the text-generation collaborator.
type EnrichmentConfig struct {
	Provider        string        `mapstructure:"provider"         yaml:"provider"`
	Model           string        `mapstructure:"model"            yaml:"model"`
	Endpoint        string        `mapstructure:"endpoint"         yaml:"endpoint"`
	APIKey          string        `mapstructure:"api_key"          yaml:"api_key"`
	MaxTokens       int           `mapstructure:"max_tokens"       yaml:"max_tokens"`
	Temperature     float64       `mapstructure:"temperature"      yaml:"temperature"`
	Timeout         time.Duration `mapstructure:"timeout"          yaml:"timeout"`
	DefaultCurrency string        `mapstructure:"default_currency" yaml:"default_currency"`
}

// StorageConfig controls the optional result archive.
type StorageConfig struct {
	Enabled         bool   `mapstructure:"enabled"          yaml:"enabled"`
	Type            string `mapstructure:"type"             yaml:"type"`
	OutputPath      string `mapstructure:"output_path"      yaml:"output_path"`
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Port    int    `mapstructure:"port"    yaml:"port"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			RequestsPerSec: 1,
		},
		Automation: AutomationConfig{
			Mode:              "browser",
			NavigationTimeout: 15 * time.Second,
			SettleDelay:       3 * time.Second,
			ScrollCycles:      3,
			ScrollDelay:       1 * time.Second,
			UserAgent:         "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.0 Mobile/15E148 Safari/604.1",
			ViewportWidth:     390,
			ViewportHeight:    844,
		},
		Fetcher: FetcherConfig{
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
		},
		Enrichment: EnrichmentConfig{
			Provider:        "ollama",
			Model:           "llama3",
			Endpoint:        "http://localhost:11434",
			MaxTokens:       1024,
			Temperature:     0.2,
			Timeout:         120 * time.Second,
			DefaultCurrency: "GBP",
		},
		Storage: StorageConfig{
			Enabled:         false,
			Type:            "jsonl",
			OutputPath:      "./output/products.jsonl",
			MongoDatabase:   "scout",
			MongoCollection: "products",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}
