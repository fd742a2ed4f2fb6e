package extract

import (
	"net/url"
	"strings"
	"unicode"
)

// geoFragments are stripped from the first host segment when deriving a
// brand from the domain: literal substrings, not suffixes.
var geoFragments = []string{"uk", "us", "eu", "co", "shop"}

// DetectBrand resolves the brand for a product page: JSON-LD first, then a
// domain-name fallback. Never returns empty for a syntactically valid host.
func DetectBrand(pageURL, markup string) string {
	if brand := brandFromJSONLD(markup); brand != "" {
		return strings.TrimSpace(brand)
	}
	return brandFromHost(pageURL)
}

// brandFromJSONLD scans structured-data blocks for a brand field, handling
// both the nested-object form ({"brand": {"name": "..."}}) and the plain
// string form ({"brand": "..."}).
func brandFromJSONLD(markup string) string {
	for _, block := range jsonLDBlocks(markup) {
		for _, obj := range asObjects(block) {
			brand, ok := obj["brand"]
			if !ok || brand == nil {
				continue
			}
			switch v := brand.(type) {
			case map[string]any:
				if name, ok := v["name"].(string); ok && name != "" {
					return name
				}
			case string:
				if v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// brandFromHost derives a brand from the page host: strip a leading "www.",
// take the first dot-delimited segment, strip common geography/platform
// fragments, title-case the rest.
func brandFromHost(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	first, _, _ := strings.Cut(host, ".")

	stripped := first
	for _, frag := range geoFragments {
		stripped = strings.ReplaceAll(stripped, frag, "")
	}
	stripped = strings.TrimSpace(stripped)

	// Stripping can consume the whole segment (e.g. host "shop.example");
	// the fallback must never come back empty.
	if stripped == "" {
		stripped = first
	}
	return strings.TrimSpace(titleCase(stripped))
}

// titleCase uppercases the first letter of every alphanumeric run and
// lowercases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
