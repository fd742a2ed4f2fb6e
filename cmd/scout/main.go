package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wearstack/scout/internal/api"
	"github.com/wearstack/scout/internal/browser"
	"github.com/wearstack/scout/internal/config"
	"github.com/wearstack/scout/internal/enrich"
	"github.com/wearstack/scout/internal/extract"
	"github.com/wearstack/scout/internal/fetcher"
	"github.com/wearstack/scout/internal/observability"
	"github.com/wearstack/scout/internal/pipeline"
	"github.com/wearstack/scout/internal/schema"
	"github.com/wearstack/scout/internal/storage"
	"github.com/wearstack/scout/internal/vocab"
)

var (
	cfgFile string
	verbose bool
	mode    string
)

func main() {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "scout",
		Short: "Scout is a fashion product page scraper",
		Long: `Scout turns a product page URL into a structured product record.

It renders the page in a headless browser (or fetches it statically),
extracts title, brand, price, images and sizes with layout-aware
heuristics, and fills the remaining gaps with an LLM pass that never
overrides what was actually observed on the page.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "page loading mode: browser or static (overrides config)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// serveCmd creates the "serve" subcommand.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scrape API server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	scraper, metrics, cleanup, err := buildScraper(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var archive storage.Archive
	if cfg.Storage.Enabled {
		archive, err = storage.New(&cfg.Storage, logger)
		if err != nil {
			return fmt.Errorf("create archive: %w", err)
		}
		defer archive.Close()
	}

	if cfg.Metrics.Enabled {
		if err := metrics.StartServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Warn("failed to start metrics server", "error", err)
		}
	}

	server := api.NewServer(&cfg.Server, scraper, archive, metrics, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	return server.Start()
}

// scrapeCmd creates the "scrape" subcommand for one-shot use.
func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape [url]",
		Short: "Scrape a single product page and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runScrape,
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	scraper, _, cleanup, err := buildScraper(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := scraper.Scrape(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("scrape %s: %w", args[0], err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Scout %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Printf("Server:\n")
			fmt.Printf("  Port:              %d\n", cfg.Server.Port)
			fmt.Printf("  Requests/sec:      %.1f\n", cfg.Server.RequestsPerSec)
			fmt.Printf("\nAutomation:\n")
			fmt.Printf("  Mode:              %s\n", cfg.Automation.Mode)
			fmt.Printf("  Navigation Timeout: %s\n", cfg.Automation.NavigationTimeout)
			fmt.Printf("  Settle Delay:      %s\n", cfg.Automation.SettleDelay)
			fmt.Printf("  Scroll Cycles:     %d\n", cfg.Automation.ScrollCycles)
			fmt.Printf("  Viewport:          %dx%d\n", cfg.Automation.ViewportWidth, cfg.Automation.ViewportHeight)
			fmt.Printf("\nEnrichment:\n")
			fmt.Printf("  Provider:          %s\n", cfg.Enrichment.Provider)
			fmt.Printf("  Model:             %s\n", cfg.Enrichment.Model)
			fmt.Printf("  Default Currency:  %s\n", cfg.Enrichment.DefaultCurrency)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Storage.Enabled)
			fmt.Printf("  Type:              %s\n", cfg.Storage.Type)
			fmt.Printf("  Output Path:       %s\n", cfg.Storage.OutputPath)
			fmt.Printf("\nMetrics:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Metrics.Enabled)
			fmt.Printf("  Port:              %d\n", cfg.Metrics.Port)
			return nil
		},
	}
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if mode != "" {
		cfg.Automation.Mode = mode
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, setupLogger(&cfg.Logging), nil
}

// buildScraper assembles the page loader, extractors, enrichment and guard
// into a ready pipeline. The returned cleanup releases the page loader.
func buildScraper(cfg *config.Config, logger *slog.Logger) (*pipeline.Scraper, *observability.Metrics, func(), error) {
	var (
		loader  pipeline.PageLoader
		cleanup func()
	)

	switch cfg.Automation.Mode {
	case "static":
		static, err := fetcher.NewStaticFetcher(cfg, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("create static fetcher: %w", err)
		}
		loader = pipeline.LoaderFunc(func(ctx context.Context, url string) (pipeline.LoadedPage, error) {
			return static.Load(ctx, url)
		})
		cleanup = func() { static.Close() }
	default:
		client, err := browser.NewClient(&cfg.Automation, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("create browser: %w", err)
		}
		loader = pipeline.LoaderFunc(func(ctx context.Context, url string) (pipeline.LoadedPage, error) {
			return client.Load(ctx, url)
		})
		cleanup = func() { client.Close() }
	}

	agg := extract.NewAggregator(
		extract.NewImageRanker(vocab.ImageBlocklist(), vocab.ProductKeywords(), vocab.ImageExtensions()),
		extract.NewSizeValidator(vocab.SizeWords()),
		logger,
	)

	llm := enrich.NewClient(&cfg.Enrichment, logger)
	cleaner := enrich.NewCleaner(llm, cfg.Enrichment.DefaultCurrency, logger)

	metrics := observability.NewMetrics(logger)
	scraper := pipeline.NewScraper(loader, agg, cleaner, schema.NewGuard(), metrics, logger)

	return scraper, metrics, cleanup, nil
}

// setupLogger creates a structured logger from the logging config.
func setupLogger(cfg *config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
