package extract

import (
	"log/slog"

	"github.com/wearstack/scout/internal/types"
)

// Aggregator runs every signal extractor against an already-loaded page and
// assembles the ground-truth record. Individual extractor misses yield empty
// fields, never errors: a sparse record is a valid outcome.
type Aggregator struct {
	images *ImageRanker
	sizes  *SizeValidator
	logger *slog.Logger
}

// NewAggregator creates an aggregator with the given ranker and validator.
func NewAggregator(images *ImageRanker, sizes *SizeValidator, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		images: images,
		sizes:  sizes,
		logger: logger.With("component", "aggregator"),
	}
}

// Extract pulls title, brand, price, description, images and sizes from the
// page state and returns the assembled RawProduct.
func (a *Aggregator) Extract(page Page, pageURL string) *types.RawProduct {
	markup, err := page.HTML()
	if err != nil {
		a.logger.Warn("page markup unavailable, extracting from DOM signals only", "url", pageURL, "error", err)
		markup = ""
	}

	title, _ := page.QueryText(TitleSelectors...)
	desc, _ := page.QueryText(DescriptionSelectors...)

	priceText, _ := page.QueryText(PriceSelectors...)
	price := DetectPrice(priceText, markup)

	images := a.extractImages(page, pageURL, title)
	sizes := a.extractSizes(page)

	raw := &types.RawProduct{
		Title:       title,
		Brand:       DetectBrand(pageURL, markup),
		Price:       price,
		Description: desc,
		Images:      images,
		Sizes:       sizes,
		SourceURL:   pageURL,
	}

	a.logger.Debug("raw extraction complete",
		"url", pageURL,
		"title", raw.Title != "",
		"brand", raw.Brand,
		"price", raw.Price,
		"images", len(raw.Images),
		"sizes", len(raw.Sizes),
	)

	return raw
}

func (a *Aggregator) extractImages(page Page, pageURL, title string) []string {
	signals, err := page.ImageSignals()
	if err != nil {
		a.logger.Warn("image signal collection failed", "url", pageURL, "error", err)
		return []string{}
	}
	ranked := a.images.Rank(signals, pageURL, title)
	if ranked == nil {
		ranked = []string{}
	}
	return ranked
}

func (a *Aggregator) extractSizes(page Page) []string {
	tokens, err := page.SizeTokens()
	if err != nil {
		a.logger.Warn("size token collection failed", "error", err)
		return []string{}
	}
	sizes := a.sizes.Collect(tokens)
	if sizes == nil {
		sizes = []string{}
	}
	return sizes
}
