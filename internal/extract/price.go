package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// pricePatterns is the ordered regex cascade over raw markup for inline
// script price fields. List order is the tie-break priority: the first
// pattern that matches wins, and the matched token is returned verbatim so
// any currency symbol survives for downstream inference.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"price"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"price":\s*([0-9]+\.[0-9]+)`),
	regexp.MustCompile(`"nowPrice"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"salePrice"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"unitPrice"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"currentPrice"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"regularPrice"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"value"\s*:\s*"([£$€][0-9\.,]+)"`),
}

// DetectPrice returns the raw price string for a product page, or "" when no
// signal matches. elementText is the trimmed text of an already-located DOM
// price element and takes precedence when non-empty. A miss is an absence,
// never an error.
func DetectPrice(elementText, markup string) string {
	if t := strings.TrimSpace(elementText); t != "" {
		return t
	}

	for _, re := range pricePatterns {
		if m := re.FindStringSubmatch(markup); m != nil {
			return m[1]
		}
	}

	return priceFromOffers(markup)
}

// priceFromOffers scans structured-data blocks for an offers.price field,
// handling both a single offer object and an array of offers.
func priceFromOffers(markup string) string {
	for _, block := range jsonLDBlocks(markup) {
		for _, obj := range asObjects(block) {
			if price := offerPrice(obj); price != "" {
				return price
			}
		}
	}
	return ""
}

func offerPrice(obj map[string]any) string {
	offers, ok := obj["offers"]
	if !ok {
		return ""
	}
	switch v := offers.(type) {
	case map[string]any:
		return priceString(v["price"])
	case []any:
		for _, item := range v {
			if offer, ok := item.(map[string]any); ok {
				if price := priceString(offer["price"]); price != "" {
					return price
				}
			}
		}
	}
	return ""
}

// priceString renders a JSON-LD price value as a string without reformatting
// string-typed values.
func priceString(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	}
	return ""
}
