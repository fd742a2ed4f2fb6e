package extract

import "testing"

const brandHTML = `<!DOCTYPE html>
<html>
<head>
    <script type="application/ld+json">
    {"@context":"https://schema.org","@type":"Product","name":"Club Jacket","brand":{"@type":"Brand","name":"Nike"}}
    </script>
</head>
<body><h1>Club Jacket</h1></body>
</html>`

const brandStringHTML = `<html><head>
<script type="application/ld+json">
[{"@type":"Product","brand":"Carhartt WIP"}]
</script>
</head></html>`

func TestDetectBrandFromJSONLD(t *testing.T) {
	brand := DetectBrand("https://www.example.com/p/club-jacket", brandHTML)
	if brand != "Nike" {
		t.Errorf("expected 'Nike', got %q", brand)
	}
}

func TestDetectBrandFromJSONLDString(t *testing.T) {
	brand := DetectBrand("https://www.example.com/p/jacket", brandStringHTML)
	if brand != "Carhartt WIP" {
		t.Errorf("expected 'Carhartt WIP', got %q", brand)
	}
}

func TestDetectBrandDomainFallback(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.size.co.uk/product/beige-new-balance/19708453/", "Size"},
		{"https://www.endclothing.com/gb/jacket.html", "Endclothing"},
		{"https://footasylum.com/page", "Footasylum"},
	}

	for _, tc := range cases {
		got := DetectBrand(tc.url, "<html></html>")
		if got != tc.want {
			t.Errorf("DetectBrand(%q): expected %q, got %q", tc.url, tc.want, got)
		}
	}
}

func TestDetectBrandNeverEmptyForValidHost(t *testing.T) {
	// Geo/platform stripping can consume every character of the first host
	// segment; the raw segment must then be used instead.
	brand := DetectBrand("https://shop.example.com/item", "")
	if brand == "" {
		t.Fatal("expected non-empty brand for valid host")
	}
	if brand != "Shop" {
		t.Errorf("expected 'Shop', got %q", brand)
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"size", "Size"},
		{"new-balance", "New-Balance"},
		{"ASOS", "Asos"},
	}
	for _, tc := range cases {
		if got := titleCase(tc.in); got != tc.want {
			t.Errorf("titleCase(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
