package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/wearstack/scout/internal/enrich"
	"github.com/wearstack/scout/internal/extract"
	"github.com/wearstack/scout/internal/observability"
	"github.com/wearstack/scout/internal/schema"
	"github.com/wearstack/scout/internal/types"
	"github.com/wearstack/scout/internal/vocab"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeLoadedPage is a canned product page.
type fakeLoadedPage struct {
	closed bool
}

func (p *fakeLoadedPage) HTML() (string, error) {
	return `<html><head><script type="application/ld+json">
	{"@type":"Product","brand":{"name":"New Balance"}}
	</script></head></html>`, nil
}

func (p *fakeLoadedPage) QueryText(selectors ...string) (string, bool) {
	for _, sel := range selectors {
		switch sel {
		case "h1":
			return "Beige New Balance 204L", true
		case ".price":
			return "£110.00", true
		}
	}
	return "", false
}

func (p *fakeLoadedPage) ImageSignals() ([]extract.ImageSignal, error) {
	return []extract.ImageSignal{
		{URL: "https://cdn.example.com/204l-product.jpg", Width: 900, Height: 900, Alt: "product"},
	}, nil
}

func (p *fakeLoadedPage) SizeTokens() ([]string, error) {
	return []string{"7", "8", "M"}, nil
}

func (p *fakeLoadedPage) Close() error {
	p.closed = true
	return nil
}

// emptyLoadedPage simulates a navigation that yielded no usable content.
type emptyLoadedPage struct{}

func (emptyLoadedPage) HTML() (string, error)                        { return "", nil }
func (emptyLoadedPage) QueryText(...string) (string, bool)           { return "", false }
func (emptyLoadedPage) ImageSignals() ([]extract.ImageSignal, error) { return nil, nil }
func (emptyLoadedPage) SizeTokens() ([]string, error)                { return nil, nil }
func (emptyLoadedPage) Close() error                                 { return nil }

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, _ string) (string, error) {
	return `{"description":"A suede trainer.","category":"footwear","gender_target":"unisex","style_tags":["#streetwear"]}`, nil
}

func newTestScraper(loader PageLoader, gen enrich.Generator, metrics *observability.Metrics) *Scraper {
	agg := extract.NewAggregator(
		extract.NewImageRanker(vocab.ImageBlocklist(), vocab.ProductKeywords(), vocab.ImageExtensions()),
		extract.NewSizeValidator(vocab.SizeWords()),
		testLogger,
	)
	cleaner := enrich.NewCleaner(gen, "GBP", testLogger)
	return NewScraper(loader, agg, cleaner, schema.NewGuard(), metrics, testLogger)
}

func TestScrapeEndToEnd(t *testing.T) {
	page := &fakeLoadedPage{}
	loader := LoaderFunc(func(_ context.Context, _ string) (LoadedPage, error) {
		return page, nil
	})
	metrics := observability.NewMetrics(testLogger)
	s := newTestScraper(loader, echoGenerator{}, metrics)

	result, err := s.Scrape(context.Background(), "https://www.size.co.uk/product/beige-new-balance-204l/19708453/")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}

	if result.ProductName != "Beige New Balance 204L" {
		t.Errorf("product_name: got %q", result.ProductName)
	}
	if result.Brand != "New Balance" {
		t.Errorf("brand: got %q", result.Brand)
	}
	if result.Price != "£110.00" {
		t.Errorf("price: got %q", result.Price)
	}
	if result.Currency != "GBP" {
		t.Errorf("currency: got %q", result.Currency)
	}
	if result.Category == nil || *result.Category != "footwear" {
		t.Errorf("category: got %v", result.Category)
	}
	if result.ImageURL != "https://cdn.example.com/204l-product.jpg" {
		t.Errorf("image_url: got %q", result.ImageURL)
	}
	if result.SourceDomain != "www.size.co.uk" {
		t.Errorf("source_domain: got %q", result.SourceDomain)
	}
	if result.ScrapedAt == "" {
		t.Error("scraped_at must be set")
	}
	if !page.closed {
		t.Error("page must be closed after extraction")
	}
	if metrics.ScrapesTotal.Load() != 1 || metrics.ScrapesFailed.Load() != 0 {
		t.Errorf("unexpected counters: %v", metrics.Snapshot())
	}
	if metrics.PagesWithTitle.Load() != 1 || metrics.PagesWithImages.Load() != 1 {
		t.Errorf("extraction counters not recorded: %v", metrics.Snapshot())
	}
}

func TestScrapeInvalidURL(t *testing.T) {
	s := newTestScraper(LoaderFunc(func(_ context.Context, _ string) (LoadedPage, error) {
		t.Fatal("loader must not be called for invalid URLs")
		return nil, nil
	}), echoGenerator{}, nil)

	for _, bad := range []string{"", "ftp://example.com/x", "not a url", "https://"} {
		if _, err := s.Scrape(context.Background(), bad); !errors.Is(err, types.ErrInvalidURL) {
			t.Errorf("Scrape(%q): expected ErrInvalidURL, got %v", bad, err)
		}
	}
}

func TestScrapeLoadFailure(t *testing.T) {
	loadErr := &types.FetchError{URL: "https://example.com/p", Err: errors.New("timeout"), Retryable: true}
	loader := LoaderFunc(func(_ context.Context, _ string) (LoadedPage, error) {
		return nil, loadErr
	})
	metrics := observability.NewMetrics(testLogger)
	s := newTestScraper(loader, echoGenerator{}, metrics)

	_, err := s.Scrape(context.Background(), "https://example.com/p")
	var fetchErr *types.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if metrics.FetchFailures.Load() != 1 || metrics.ScrapesFailed.Load() != 1 {
		t.Errorf("failure counters not recorded: %v", metrics.Snapshot())
	}
}

func TestScrapeEmptyPageStillEnriches(t *testing.T) {
	// A page that loaded nothing usable still flows through enrichment and
	// produces a sparse record rather than an error.
	loader := LoaderFunc(func(_ context.Context, _ string) (LoadedPage, error) {
		return &emptyLoadedPage{}, nil
	})
	enriched := false
	gen := enrich.GeneratorFunc(func(_ context.Context, _ string) (string, error) {
		enriched = true
		return "{}", nil
	})
	metrics := observability.NewMetrics(testLogger)
	s := newTestScraper(loader, gen, metrics)

	result, err := s.Scrape(context.Background(), "https://www.example.com/product/123")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if !enriched {
		t.Error("enrichment must run on sparse pages")
	}
	if result.ProductName != "" {
		t.Errorf("expected empty product_name, got %q", result.ProductName)
	}
	if result.Brand != "Example" {
		t.Errorf("expected domain-derived brand, got %q", result.Brand)
	}
	if result.SizesAvailable == nil || len(result.SizesAvailable) != 0 {
		t.Errorf("expected empty sizes, got %v", result.SizesAvailable)
	}
	if result.ScrapedAt == "" || result.SourceDomain != "www.example.com" {
		t.Errorf("record not finalized: %+v", result)
	}
	if metrics.ScrapesFailed.Load() != 0 {
		t.Errorf("sparse page must not count as a failure: %v", metrics.Snapshot())
	}
}

func TestScrapeEnrichParseFailure(t *testing.T) {
	loader := LoaderFunc(func(_ context.Context, _ string) (LoadedPage, error) {
		return &fakeLoadedPage{}, nil
	})
	gen := enrich.GeneratorFunc(func(_ context.Context, _ string) (string, error) {
		return "not json at all", nil
	})
	metrics := observability.NewMetrics(testLogger)
	s := newTestScraper(loader, gen, metrics)

	_, err := s.Scrape(context.Background(), "https://example.com/p")
	var enrichErr *types.EnrichError
	if !errors.As(err, &enrichErr) {
		t.Fatalf("expected EnrichError, got %v", err)
	}
	if metrics.ParseFailures.Load() != 1 {
		t.Errorf("parse failure counter not recorded: %v", metrics.Snapshot())
	}
}
