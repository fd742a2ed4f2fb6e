package types

// RawProduct holds the ground-truth values observed directly on a product
// page. Every field is either empty or exactly what the page contained;
// later stages may fill gaps but never rewrite these values.
type RawProduct struct {
	// Title is the first matching heading/selector text, if any.
	Title string `json:"raw_title,omitempty"`

	// Brand is resolved from JSON-LD or the domain name. Never empty.
	Brand string `json:"raw_brand"`

	// Price is the raw price token with its currency symbol preserved.
	Price string `json:"raw_price,omitempty"`

	// Description is the first matching description block, if any.
	Description string `json:"raw_description,omitempty"`

	// Images are candidate image URLs ranked by relevance, at most 10.
	Images []string `json:"raw_images"`

	// Sizes are deduplicated, uppercased, alphabetically sorted size tokens.
	Sizes []string `json:"raw_sizes"`

	// SourceURL is the page this record was scraped from.
	SourceURL string `json:"url"`
}

// CleanedProduct is the merged record: raw fields copied as-is, gaps filled
// by the enrichment pass under the vocabulary constraints.
type CleanedProduct struct {
	ProductName    string   `json:"product_name"`
	Brand          string   `json:"brand"`
	Description    string   `json:"description"`
	Price          string   `json:"price"`
	Currency       string   `json:"currency"`
	Category       string   `json:"category"`
	GenderTarget   string   `json:"gender_target"`
	StyleTags      []string `json:"style_tags"`
	ImageURL       string   `json:"image_url"`
	SizesAvailable []string `json:"sizes_available"`
	ProductURL     string   `json:"product_url"`
}

// ScrapeResult is the outbound record. Category and gender are pointers so
// out-of-vocabulary values serialize as JSON null after the schema guard.
type ScrapeResult struct {
	ProductName    string   `json:"product_name"`
	Brand          string   `json:"brand"`
	Description    string   `json:"description"`
	Price          string   `json:"price"`
	Currency       string   `json:"currency"`
	Category       *string  `json:"category"`
	GenderTarget   *string  `json:"gender_target"`
	StyleTags      []string `json:"style_tags"`
	ImageURL       string   `json:"image_url"`
	SizesAvailable []string `json:"sizes_available"`
	ProductURL     string   `json:"product_url"`
	ScrapedAt      string   `json:"scraped_at"`
	SourceDomain   string   `json:"source_domain"`
}
