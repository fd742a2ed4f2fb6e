package extract

// ImageSignal is the per-element record collected from a rendered (or
// statically parsed) page for one candidate image. JSON tags match the
// in-page collector script's output.
type ImageSignal struct {
	URL       string  `json:"src"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Alt       string  `json:"alt"`
	Class     string  `json:"className"`
	InPicture bool    `json:"inPicture"`
	Top       float64 `json:"top"`
}

// Area returns the pixel area of the element.
func (s ImageSignal) Area() float64 {
	return s.Width * s.Height
}

// Page is the capability surface the extractors need from a loaded product
// page. The browser session implements it with in-page evaluation; the
// static fetcher implements it over parsed markup with geometry signals
// degraded to zero.
type Page interface {
	// HTML returns the full page markup.
	HTML() (string, error)

	// QueryText returns the trimmed text of the first element matching any
	// of the selectors, tried in order.
	QueryText(selectors ...string) (string, bool)

	// ImageSignals collects one signal record per candidate image element.
	ImageSignals() ([]ImageSignal, error)

	// SizeTokens collects raw size-token candidates from buttons,
	// aria-labels, input attributes and select options. Unvalidated.
	SizeTokens() ([]string, error)
}

// Selector cascades for the text fields. Ordered most to least specific in
// practice; the first hit wins. Entries starting with "//" are XPath, which
// both page implementations resolve; the document title is the last-resort
// title source.
var (
	TitleSelectors       = []string{"h1", ".product-name", ".pdp-title", "[itemprop='name']", "//title"}
	PriceSelectors       = []string{"[itemprop='price']", ".price", ".product-price"}
	DescriptionSelectors = []string{".description", ".product-description", ".pdp-description"}
)
