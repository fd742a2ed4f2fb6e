// Package vocab holds the fixed vocabularies the extractors and the
// enrichment merge operate against. Callers receive copies at construction
// time so the sets stay immutable and can be versioned and tested on their
// own.
package vocab

// StyleTags returns the allowed style-tag vocabulary. Enrichment output is
// filtered against this list case-insensitively.
func StyleTags() []string {
	return []string{
		"#streetwear",
		"#athleisure",
		"#vintageStreet",
		"#techwear",
		"#minimalist",
		"#loudGraphic",
		"#hypebeast",
		"#y2k",
		"#skater",
	}
}

// Categories returns the allowed product categories.
func Categories() []string {
	return []string{"top", "bottom", "outerwear", "footwear", "full_body", "accessory"}
}

// Genders returns the allowed gender targets.
func Genders() []string {
	return []string{"masculine", "feminine", "unisex"}
}

// SizeWords returns the standard size labels accepted by the size validator.
// Two-digit waist/inseam sizes (20-60) are handled numerically, not here.
func SizeWords() map[string]struct{} {
	words := []string{
		"XXXS", "XXS", "XS", "S", "M", "L", "XL", "XXL", "XXXL", "XXXXL", "XXXXXL",
		"3XL", "4XL", "5XL",
		"ONE SIZE", "ONESIZE", "OS",
		"S/M", "M/L", "L/XL",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// ImageBlocklist returns URL substrings that mark an image as UI chrome,
// payment badges, social icons or layout/ad assets rather than product
// imagery.
func ImageBlocklist() []string {
	return []string{
		// payments / trust
		"visa", "mastercard", "maestro", "amex", "americanexpress",
		"paypal", "klarna", "afterpay", "clearpay", "trustpilot",
		"applepay", "googlepay", "payment", "secure",
		// social
		"facebook", "instagram", "youtube", "tiktok", "twitter", "x-logo",
		// ui / branding
		"logo", "sprite", "icon", "favicon", "placeholder", "noimage",
		"search", "menu", "hamburger", "cart", "basket", "bag", "close",
		"arrow", "chevron", "caret", "scroll", "slider",
		// layout
		"banner", "promo", "offer", "ads", "advert",
		"footer", "header",
		// flags
		"flag", "country-",
	}
}

// ProductKeywords returns alt/class hints that suggest an element is product
// imagery.
func ProductKeywords() []string {
	return []string{
		"product", "pdp", "gallery", "image", "main", "hero",
		"shoe", "trainer", "sneaker", "boot",
		"jacket", "coat", "hoodie", "tee", "t-shirt", "shirt",
		"dress", "skirt", "trouser", "shorts", "jeans", "pant",
		"bag", "cap", "hat", "backpack",
	}
}

// ImageExtensions returns the recognized raster image file extensions.
func ImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".webp", ".avif", ".gif"}
}
