package extract

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/wearstack/scout/internal/vocab"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// fakePage is a canned Page implementation for aggregator tests.
type fakePage struct {
	html      string
	htmlErr   error
	texts     map[string]string
	signals   []ImageSignal
	signalErr error
	tokens    []string
	tokenErr  error
}

func (p *fakePage) HTML() (string, error) { return p.html, p.htmlErr }

func (p *fakePage) QueryText(selectors ...string) (string, bool) {
	for _, sel := range selectors {
		if t, ok := p.texts[sel]; ok && strings.TrimSpace(t) != "" {
			return strings.TrimSpace(t), true
		}
	}
	return "", false
}

func (p *fakePage) ImageSignals() ([]ImageSignal, error) { return p.signals, p.signalErr }

func (p *fakePage) SizeTokens() ([]string, error) { return p.tokens, p.tokenErr }

func newTestAggregator() *Aggregator {
	return NewAggregator(
		NewImageRanker(vocab.ImageBlocklist(), vocab.ProductKeywords(), vocab.ImageExtensions()),
		NewSizeValidator(vocab.SizeWords()),
		testLogger,
	)
}

func TestAggregatorExtract(t *testing.T) {
	agg := newTestAggregator()
	page := &fakePage{
		html: `<html><head><script type="application/ld+json">
		{"@type":"Product","brand":{"name":"New Balance"},"offers":{"price":"110.00"}}
		</script></head></html>`,
		texts: map[string]string{
			"h1":           "Beige New Balance 204L",
			".description": "A low profile suede trainer.",
			".price":       "£110.00",
		},
		signals: []ImageSignal{
			{URL: "https://cdn.example.com/204l-product.jpg", Width: 900, Height: 900, Alt: "product"},
		},
		tokens: []string{"7", "8", "M", "Select size"},
	}

	raw := agg.Extract(page, "https://www.example.com/product/beige-new-balance-204l/19708453/")

	if raw.Title != "Beige New Balance 204L" {
		t.Errorf("title: got %q", raw.Title)
	}
	if raw.Brand != "New Balance" {
		t.Errorf("brand: got %q", raw.Brand)
	}
	if raw.Price != "£110.00" {
		t.Errorf("price: got %q", raw.Price)
	}
	if raw.Description != "A low profile suede trainer." {
		t.Errorf("description: got %q", raw.Description)
	}
	if len(raw.Images) != 1 {
		t.Errorf("images: got %v", raw.Images)
	}
	if len(raw.Sizes) != 1 || raw.Sizes[0] != "M" {
		t.Errorf("sizes: got %v", raw.Sizes)
	}
	if raw.SourceURL != "https://www.example.com/product/beige-new-balance-204l/19708453/" {
		t.Errorf("source url: got %q", raw.SourceURL)
	}
}

func TestAggregatorExtractSparsePage(t *testing.T) {
	agg := newTestAggregator()
	page := &fakePage{html: "<html><body></body></html>"}

	raw := agg.Extract(page, "https://www.example.com/item")

	if raw.Title != "" || raw.Price != "" || raw.Description != "" {
		t.Error("expected empty text fields on sparse page")
	}
	// Brand always falls back to the domain.
	if raw.Brand != "Example" {
		t.Errorf("brand fallback: got %q", raw.Brand)
	}
	if raw.Images == nil || raw.Sizes == nil {
		t.Error("images and sizes must be empty slices, not nil")
	}
}

func TestAggregatorExtractSurvivesCollectorFailures(t *testing.T) {
	agg := newTestAggregator()
	page := &fakePage{
		htmlErr:   errors.New("target crashed"),
		signalErr: errors.New("eval failed"),
		tokenErr:  errors.New("eval failed"),
		texts:     map[string]string{"h1": "Fleece Hoodie"},
	}

	raw := agg.Extract(page, "https://www.example.com/hoodie")

	if raw.Title != "Fleece Hoodie" {
		t.Errorf("title: got %q", raw.Title)
	}
	if len(raw.Images) != 0 || len(raw.Sizes) != 0 {
		t.Errorf("expected empty collections, got %v / %v", raw.Images, raw.Sizes)
	}
}
