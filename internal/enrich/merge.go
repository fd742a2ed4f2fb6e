package enrich

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/wearstack/scout/internal/types"
	"github.com/wearstack/scout/internal/vocab"
)

// maxStyleTags bounds how many vocabulary tags a cleaned record may carry.
const maxStyleTags = 4

// Cleaner fills the gaps in a scraped record with LLM output while keeping
// every scraped value authoritative.
type Cleaner struct {
	gen             Generator
	styleTags       []string
	categories      []string
	genders         []string
	defaultCurrency string
	logger          *slog.Logger
}

// NewCleaner creates a Cleaner backed by the given generator.
func NewCleaner(gen Generator, defaultCurrency string, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		gen:             gen,
		styleTags:       vocab.StyleTags(),
		categories:      vocab.Categories(),
		genders:         vocab.Genders(),
		defaultCurrency: defaultCurrency,
		logger:          logger.With("component", "cleaner"),
	}
}

// Clean builds the skeleton product from the raw record, asks the model to
// fill the empty fields, parses the reply, and re-asserts the scraped values
// over whatever came back.
func (c *Cleaner) Clean(ctx context.Context, raw *types.RawProduct) (*types.CleanedProduct, error) {
	product := skeleton(raw)

	prompt := buildPrompt(mustJSON(raw), mustJSON(product), c.styleTags, c.categories, c.genders)

	reply, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, &types.EnrichError{URL: raw.SourceURL, Stage: "generate", Err: err}
	}

	cleaned, err := parseReply(reply)
	if err != nil {
		c.logger.Warn("model reply could not be parsed", "url", raw.SourceURL, "error", err)
		return nil, &types.EnrichError{URL: raw.SourceURL, Stage: "parse", Err: err}
	}

	c.assertScraped(cleaned, raw)
	c.inferCurrency(cleaned, raw)
	cleaned.StyleTags = c.filterTags(cleaned.StyleTags)

	return cleaned, nil
}

// skeleton maps raw fields onto the product shape the model must echo back.
func skeleton(raw *types.RawProduct) *types.CleanedProduct {
	p := &types.CleanedProduct{
		ProductName:    raw.Title,
		Brand:          raw.Brand,
		Description:    raw.Description,
		Price:          raw.Price,
		StyleTags:      []string{},
		SizesAvailable: raw.Sizes,
		ProductURL:     raw.SourceURL,
	}
	if len(raw.Images) > 0 {
		p.ImageURL = raw.Images[0]
	}
	if p.SizesAvailable == nil {
		p.SizesAvailable = []string{}
	}
	return p
}

// parseReply decodes the model output leniently. Only broken JSON is an
// error; mistyped fields are coerced or dropped, since ground-truth
// re-assertion overwrites most of them anyway.
func parseReply(reply string) (*types.CleanedProduct, error) {
	text := stripFences(reply)

	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(repaired), &fields); err != nil {
			return nil, err
		}
	}

	return &types.CleanedProduct{
		ProductName:    asString(fields["product_name"]),
		Brand:          asString(fields["brand"]),
		Description:    asString(fields["description"]),
		Price:          asString(fields["price"]),
		Currency:       asString(fields["currency"]),
		Category:       asString(fields["category"]),
		GenderTarget:   asString(fields["gender_target"]),
		StyleTags:      asStrings(fields["style_tags"]),
		ImageURL:       asString(fields["image_url"]),
		SizesAvailable: asStrings(fields["sizes_available"]),
		ProductURL:     asString(fields["product_url"]),
	}, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func asStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// assertScraped restores ground-truth values the model may have rewritten.
func (c *Cleaner) assertScraped(cleaned *types.CleanedProduct, raw *types.RawProduct) {
	if raw.Title != "" {
		cleaned.ProductName = raw.Title
	}
	if raw.Brand != "" {
		cleaned.Brand = raw.Brand
	}
	if raw.Price != "" {
		cleaned.Price = raw.Price
	}
	if raw.SourceURL != "" {
		cleaned.ProductURL = raw.SourceURL
	}
	if len(raw.Images) > 0 {
		cleaned.ImageURL = raw.Images[0]
	}
	if len(raw.Sizes) > 0 {
		cleaned.SizesAvailable = raw.Sizes
	}
	if cleaned.SizesAvailable == nil {
		cleaned.SizesAvailable = []string{}
	}
}

// inferCurrency fills an empty currency from the price symbol, then the
// source domain, then the configured default.
func (c *Cleaner) inferCurrency(cleaned *types.CleanedProduct, raw *types.RawProduct) {
	if cleaned.Currency != "" {
		return
	}

	switch {
	case strings.Contains(raw.Price, "€"):
		cleaned.Currency = "EUR"
		return
	case strings.Contains(raw.Price, "$"):
		cleaned.Currency = "USD"
		return
	case strings.Contains(raw.Price, "£"):
		cleaned.Currency = "GBP"
		return
	}

	host := ""
	if u, err := url.Parse(raw.SourceURL); err == nil {
		host = u.Hostname()
	}

	switch {
	case strings.Contains(host, ".co.uk") || strings.HasSuffix(host, ".uk"):
		cleaned.Currency = "GBP"
	case containsAnyTLD(host, ".de", ".fr", ".es", ".it"):
		cleaned.Currency = "EUR"
	default:
		cleaned.Currency = c.defaultCurrency
	}
}

func containsAnyTLD(host string, tlds ...string) bool {
	for _, tld := range tlds {
		if strings.Contains(host, tld) {
			return true
		}
	}
	return false
}

// filterTags keeps only canonical vocabulary tags, matching case-insensitively
// and preserving first-seen order. At most four tags survive.
func (c *Cleaner) filterTags(tags []string) []string {
	filtered := []string{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		for _, allowed := range c.styleTags {
			if strings.EqualFold(t, allowed) {
				if !contains(filtered, allowed) {
					filtered = append(filtered, allowed)
				}
				break
			}
		}
		if len(filtered) == maxStyleTags {
			break
		}
	}
	return filtered
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
