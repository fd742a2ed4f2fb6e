package extract

import "testing"

func TestDetectPriceElementTextWins(t *testing.T) {
	markup := `<script>{"price": "10.00"}</script>`
	if got := DetectPrice("  £45.00 ", markup); got != "£45.00" {
		t.Errorf("expected element text to win, got %q", got)
	}
}

func TestDetectPricePatternOrder(t *testing.T) {
	// Both a quoted "price" and a "nowPrice" are present; the quoted price
	// pattern is earlier in the cascade and must win.
	markup := `{"nowPrice": "£30.00", "price": "£45.00"}`
	if got := DetectPrice("", markup); got != "£45.00" {
		t.Errorf("expected '£45.00', got %q", got)
	}
}

func TestDetectPriceVariants(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		want   string
	}{
		{"quoted", `{"price": "£89.99"}`, "£89.99"},
		{"bare float", `{"price": 120.50}`, "120.50"},
		{"nowPrice", `{"nowPrice": "£30.00"}`, "£30.00"},
		{"salePrice", `{"salePrice": "€25.00"}`, "€25.00"},
		{"currentPrice", `{"currentPrice": "$40"}`, "$40"},
		{"value with symbol", `{"value": "£12.50"}`, "£12.50"},
		{"no price", `<html><body>nothing here</body></html>`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectPrice("", tc.markup); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDetectPriceFromOffers(t *testing.T) {
	// Integer JSON-LD price: invisible to the regex cascade, resolved from
	// the offers object.
	markup := `<html><head><script type="application/ld+json">
	{"@type":"Product","offerCount":1,"offers":{"@type":"Offer","price":65,"priceCurrency":"GBP"}}
	</script></head></html>`

	if got := DetectPrice("", markup); got != "65" {
		t.Errorf("expected '65', got %q", got)
	}
}

func TestDetectPriceFromOffersArray(t *testing.T) {
	markup := `<html><head><script type="application/ld+json">
	{"@type":"Product","offers":[{"price":110},{"price":115}]}
	</script></head></html>`

	if got := DetectPrice("", markup); got != "110" {
		t.Errorf("expected '110', got %q", got)
	}
}
