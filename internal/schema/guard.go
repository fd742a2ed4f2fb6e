// Package schema enforces the outbound record contract: vocabulary fields are
// either canonical values or null, and every record carries its provenance.
package schema

import (
	"net/url"
	"time"

	"github.com/wearstack/scout/internal/types"
	"github.com/wearstack/scout/internal/vocab"
)

// Guard validates enriched records before they leave the service.
type Guard struct {
	categories map[string]struct{}
	genders    map[string]struct{}
}

// NewGuard builds a Guard over the canonical vocabularies.
func NewGuard() *Guard {
	return &Guard{
		categories: toSet(vocab.Categories()),
		genders:    toSet(vocab.Genders()),
	}
}

// Finalize converts a cleaned product into the outbound result. Category and
// gender values outside the vocabulary become null rather than leaking
// free-form model output; scraped_at and source_domain are stamped here.
func (g *Guard) Finalize(p *types.CleanedProduct, now time.Time) *types.ScrapeResult {
	result := &types.ScrapeResult{
		ProductName:    p.ProductName,
		Brand:          p.Brand,
		Description:    p.Description,
		Price:          p.Price,
		Currency:       p.Currency,
		StyleTags:      p.StyleTags,
		ImageURL:       p.ImageURL,
		SizesAvailable: p.SizesAvailable,
		ProductURL:     p.ProductURL,
		ScrapedAt:      now.UTC().Format(time.RFC3339),
		SourceDomain:   hostname(p.ProductURL),
	}

	if _, ok := g.categories[p.Category]; ok {
		category := p.Category
		result.Category = &category
	}
	if _, ok := g.genders[p.GenderTarget]; ok {
		gender := p.GenderTarget
		result.GenderTarget = &gender
	}

	if result.StyleTags == nil {
		result.StyleTags = []string{}
	}
	if result.SizesAvailable == nil {
		result.SizesAvailable = []string{}
	}

	return result
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
