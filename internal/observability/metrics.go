package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks operational counters for the scraper.
type Metrics struct {
	// Scrape lifecycle
	ScrapesTotal   atomic.Int64
	ScrapesFailed  atomic.Int64
	FetchFailures  atomic.Int64
	EnrichFailures atomic.Int64
	ParseFailures  atomic.Int64

	// Extraction quality
	PagesWithTitle  atomic.Int64
	PagesWithPrice  atomic.Int64
	PagesWithImages atomic.Int64
	PagesWithSizes  atomic.Int64

	// Archive
	ResultsStored atomic.Int64

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	metrics := []struct {
		name  string
		help  string
		value int64
	}{
		{"scout_scrapes_total", "Total scrape requests processed", m.ScrapesTotal.Load()},
		{"scout_scrapes_failed_total", "Total scrapes that returned an error", m.ScrapesFailed.Load()},
		{"scout_fetch_failures_total", "Total page loads that failed", m.FetchFailures.Load()},
		{"scout_enrich_failures_total", "Total enrichment calls that failed", m.EnrichFailures.Load()},
		{"scout_parse_failures_total", "Total model replies that could not be parsed", m.ParseFailures.Load()},
		{"scout_pages_with_title_total", "Pages where a title was extracted", m.PagesWithTitle.Load()},
		{"scout_pages_with_price_total", "Pages where a price was extracted", m.PagesWithPrice.Load()},
		{"scout_pages_with_images_total", "Pages where at least one image was extracted", m.PagesWithImages.Load()},
		{"scout_pages_with_sizes_total", "Pages where at least one size was extracted", m.PagesWithSizes.Load()},
		{"scout_results_stored_total", "Results written to the archive", m.ResultsStored.Load()},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", metric.name)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// StartServer starts the metrics HTTP server.
func (m *Metrics) StartServer(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, m)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	addr := fmt.Sprintf(":%d", port)
	m.logger.Info("metrics server starting", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			m.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}

// Snapshot returns all counters as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"scrapes_total":     m.ScrapesTotal.Load(),
		"scrapes_failed":    m.ScrapesFailed.Load(),
		"fetch_failures":    m.FetchFailures.Load(),
		"enrich_failures":   m.EnrichFailures.Load(),
		"parse_failures":    m.ParseFailures.Load(),
		"pages_with_title":  m.PagesWithTitle.Load(),
		"pages_with_price":  m.PagesWithPrice.Load(),
		"pages_with_images": m.PagesWithImages.Load(),
		"pages_with_sizes":  m.PagesWithSizes.Load(),
		"results_stored":    m.ResultsStored.Load(),
	}
}
