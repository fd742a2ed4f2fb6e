// Package pipeline wires the scrape stages together: load a page, extract
// the raw signals, enrich the gaps, and finalize the outbound record.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wearstack/scout/internal/config"
	"github.com/wearstack/scout/internal/enrich"
	"github.com/wearstack/scout/internal/extract"
	"github.com/wearstack/scout/internal/observability"
	"github.com/wearstack/scout/internal/schema"
	"github.com/wearstack/scout/internal/types"
)

// LoadedPage is a page the loader has fully prepared for extraction. The
// caller owns it and must close it.
type LoadedPage interface {
	extract.Page
	Close() error
}

// PageLoader turns a product URL into a loaded page.
type PageLoader interface {
	Load(ctx context.Context, url string) (LoadedPage, error)
}

// LoaderFunc adapts a function to the PageLoader interface.
type LoaderFunc func(ctx context.Context, url string) (LoadedPage, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, url string) (LoadedPage, error) {
	return f(ctx, url)
}

// Scraper runs the full scrape for one product URL at a time.
type Scraper struct {
	loader  PageLoader
	agg     *extract.Aggregator
	cleaner *enrich.Cleaner
	guard   *schema.Guard
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewScraper assembles the pipeline. metrics may be nil.
func NewScraper(loader PageLoader, agg *extract.Aggregator, cleaner *enrich.Cleaner, guard *schema.Guard, metrics *observability.Metrics, logger *slog.Logger) *Scraper {
	return &Scraper{
		loader:  loader,
		agg:     agg,
		cleaner: cleaner,
		guard:   guard,
		metrics: metrics,
		logger:  logger.With("component", "scraper"),
	}
}

// Scrape loads the product page, extracts the raw record, fills its gaps via
// the enrichment pass, and returns the finalized result.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*types.ScrapeResult, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	start := time.Now()
	s.count(func(m *observability.Metrics) { m.ScrapesTotal.Add(1) })

	page, err := s.loader.Load(ctx, rawURL)
	if err != nil {
		s.count(func(m *observability.Metrics) {
			m.ScrapesFailed.Add(1)
			m.FetchFailures.Add(1)
		})
		return nil, fmt.Errorf("load page: %w", err)
	}

	raw := s.agg.Extract(page, rawURL)
	if err := page.Close(); err != nil {
		s.logger.Warn("page close failed", "url", rawURL, "error", err)
	}
	s.observeExtraction(raw)

	cleaned, err := s.cleaner.Clean(ctx, raw)
	if err != nil {
		s.count(func(m *observability.Metrics) {
			m.ScrapesFailed.Add(1)
			m.EnrichFailures.Add(1)
			var enrichErr *types.EnrichError
			if errors.As(err, &enrichErr) && enrichErr.Stage == "parse" {
				m.ParseFailures.Add(1)
			}
		})
		return nil, fmt.Errorf("enrich product: %w", err)
	}

	result := s.guard.Finalize(cleaned, time.Now())

	s.logger.Info("scrape complete",
		"url", rawURL,
		"title", result.ProductName,
		"images", len(raw.Images),
		"sizes", len(result.SizesAvailable),
		"duration", time.Since(start),
	)

	return result, nil
}

func (s *Scraper) observeExtraction(raw *types.RawProduct) {
	s.count(func(m *observability.Metrics) {
		if raw.Title != "" {
			m.PagesWithTitle.Add(1)
		}
		if raw.Price != "" {
			m.PagesWithPrice.Add(1)
		}
		if len(raw.Images) > 0 {
			m.PagesWithImages.Add(1)
		}
		if len(raw.Sizes) > 0 {
			m.PagesWithSizes.Add(1)
		}
	})
}

func (s *Scraper) count(fn func(*observability.Metrics)) {
	if s.metrics != nil {
		fn(s.metrics)
	}
}

func validateURL(rawURL string) error {
	if err := config.ValidateURL(rawURL); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidURL, err)
	}
	return nil
}
