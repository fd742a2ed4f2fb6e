package extract

import (
	"fmt"
	"testing"

	"github.com/wearstack/scout/internal/vocab"
)

func testRanker() *ImageRanker {
	return NewImageRanker(vocab.ImageBlocklist(), vocab.ProductKeywords(), vocab.ImageExtensions())
}

const rankSourceURL = "https://www.example.com/product/beige-new-balance-204l/19708453/"

func TestRankFiltersBlocklistAndNonHTTP(t *testing.T) {
	r := testRanker()
	signals := []ImageSignal{
		{URL: "https://cdn.example.com/images/paypal-badge.png", Width: 900, Height: 900},
		{URL: "https://cdn.example.com/sprite-icons.png", Width: 900, Height: 900},
		{URL: "data:image/gif;base64,R0lGOD", Width: 900, Height: 900},
		{URL: "https://cdn.example.com/styles/theme.css", Width: 900, Height: 900},
		{URL: "https://cdn.example.com/product-main.jpg", Width: 900, Height: 900, Alt: "product"},
	}

	got := r.Rank(signals, rankSourceURL, "Beige New Balance 204L")
	if len(got) != 1 {
		t.Fatalf("expected 1 survivor, got %d: %v", len(got), got)
	}
	if got[0] != "https://cdn.example.com/product-main.jpg" {
		t.Errorf("unexpected survivor: %q", got[0])
	}
}

func TestRankProtocolRelativeNormalized(t *testing.T) {
	r := testRanker()
	signals := []ImageSignal{
		{URL: "//cdn.example.com/product-hero.jpg", Width: 900, Height: 900, Alt: "product"},
	}

	got := r.Rank(signals, rankSourceURL, "")
	if len(got) != 1 || got[0] != "https://cdn.example.com/product-hero.jpg" {
		t.Fatalf("expected normalized https URL, got %v", got)
	}
}

func TestRankDeduplicates(t *testing.T) {
	r := testRanker()
	signals := []ImageSignal{
		{URL: "https://cdn.example.com/product-1.jpg", Width: 900, Height: 900, Alt: "product"},
		{URL: "https://cdn.example.com/product-1.jpg", Width: 900, Height: 900, Alt: "product"},
	}

	got := r.Rank(signals, rankSourceURL, "")
	if len(got) != 1 {
		t.Fatalf("expected 1 after dedup, got %d", len(got))
	}
}

func TestRankOrdersByScoreThenArea(t *testing.T) {
	r := testRanker()
	signals := []ImageSignal{
		// Small, no hints: low score.
		{URL: "https://cdn.example.com/thumb-product.jpg", Width: 250, Height: 250, Alt: "product"},
		// Large, in picture, keyword alt: highest score.
		{URL: "https://cdn.example.com/hero.jpg", Width: 900, Height: 900, Alt: "product shot", InPicture: true},
		// Same score tier as first but larger area wins the tie.
		{URL: "https://cdn.example.com/midsize-product.jpg", Width: 350, Height: 350, Alt: "product"},
	}

	got := r.Rank(signals, rankSourceURL, "")
	if len(got) != 3 {
		t.Fatalf("expected 3 ranked, got %d", len(got))
	}
	if got[0] != "https://cdn.example.com/hero.jpg" {
		t.Errorf("expected hero first, got %q", got[0])
	}
	if got[1] != "https://cdn.example.com/midsize-product.jpg" {
		t.Errorf("expected larger same-score candidate second, got %q", got[1])
	}
}

func TestRankCapsAtTen(t *testing.T) {
	r := testRanker()
	var signals []ImageSignal
	for i := 0; i < 15; i++ {
		signals = append(signals, ImageSignal{
			URL:   fmt.Sprintf("https://cdn.example.com/product-%d.jpg", i),
			Width: 900, Height: 900, Alt: "product",
		})
	}

	got := r.Rank(signals, rankSourceURL, "")
	if len(got) != 10 {
		t.Errorf("expected cap of 10, got %d", len(got))
	}
}

func TestRankFallbackTopFiveByArea(t *testing.T) {
	r := testRanker()
	// Zero-score candidates: tiny, no keywords, positioned far below the fold.
	var signals []ImageSignal
	for i := 0; i < 8; i++ {
		signals = append(signals, ImageSignal{
			URL:   fmt.Sprintf("https://cdn.example.com/img-%d.jpg", i),
			Width: float64(10 + i), Height: float64(10 + i),
			Top: 5000,
		})
	}

	got := r.Rank(signals, rankSourceURL, "")
	if len(got) != 5 {
		t.Fatalf("expected fallback of 5, got %d", len(got))
	}
	// Largest area first.
	if got[0] != "https://cdn.example.com/img-7.jpg" {
		t.Errorf("expected largest candidate first, got %q", got[0])
	}
}

func TestRankSlugOverlapBoost(t *testing.T) {
	r := testRanker()
	// Identical geometry; only the slug-token overlap separates them.
	signals := []ImageSignal{
		{URL: "https://cdn.example.com/assets/randompic.jpg", Width: 300, Height: 300, Top: 5000},
		{URL: "https://cdn.example.com/beige-new-balance-204l.jpg", Width: 300, Height: 300, Top: 5000},
	}

	got := r.Rank(signals, "https://www.example.com/product/beige-new-balance-204l", "")
	if len(got) == 0 {
		t.Fatal("expected ranked images")
	}
	if got[0] != "https://cdn.example.com/beige-new-balance-204l.jpg" {
		t.Errorf("expected slug-matching image first, got %q", got[0])
	}
}

func TestRankTrailingSlashURLHasNoSlug(t *testing.T) {
	r := testRanker()
	signals := []ImageSignal{
		{URL: "https://cdn.example.com/assets/randompic.jpg", Width: 400, Height: 300, Top: 5000},
		{URL: "https://cdn.example.com/beige-new-balance-204l.jpg", Width: 300, Height: 300, Top: 5000},
	}

	// The slug is the text after the last slash, so a trailing slash leaves
	// nothing to overlap with and area decides the order.
	got := r.Rank(signals, "https://www.example.com/product/beige-new-balance-204l/", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 ranked images, got %v", got)
	}
	if got[0] != "https://cdn.example.com/assets/randompic.jpg" {
		t.Errorf("expected larger image first without a slug bonus, got %q", got[0])
	}
}

func TestRankEmptyInput(t *testing.T) {
	r := testRanker()
	if got := r.Rank(nil, rankSourceURL, ""); len(got) != 0 {
		t.Errorf("expected no results, got %v", got)
	}
}
