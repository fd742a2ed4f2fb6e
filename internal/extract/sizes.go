package extract

import (
	"sort"
	"strings"
)

// SizeValidator normalizes and validates garment size tokens against a fixed
// vocabulary of standard labels plus two-digit waist/inseam sizes.
type SizeValidator struct {
	words map[string]struct{}
}

// NewSizeValidator creates a validator over the given size-word set.
func NewSizeValidator(words map[string]struct{}) *SizeValidator {
	return &SizeValidator{words: words}
}

// Normalize returns the canonical uppercase form of a size token and whether
// it is a valid size. The canonical form is the trimmed, uppercased token;
// matching additionally tolerates internal spaces ("ONE SIZE" vs "ONESIZE").
func (v *SizeValidator) Normalize(token string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(token))
	if t == "" {
		return "", false
	}

	if _, ok := v.words[t]; ok {
		return t, true
	}
	if _, ok := v.words[strings.ReplaceAll(t, " ", "")]; ok {
		return t, true
	}

	// Two-digit numeric sizes: waist/inseam 20-60.
	if len(t) == 2 && t[0] >= '0' && t[0] <= '9' && t[1] >= '0' && t[1] <= '9' {
		val := int(t[0]-'0')*10 + int(t[1]-'0')
		if val >= 20 && val <= 60 {
			return t, true
		}
	}

	return "", false
}

// Collect validates every candidate token, deduplicates the canonical forms
// and returns them sorted ascending.
func (v *SizeValidator) Collect(tokens []string) []string {
	seen := make(map[string]struct{})
	var sizes []string
	for _, token := range tokens {
		canonical, ok := v.Normalize(token)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		sizes = append(sizes, canonical)
	}
	sort.Strings(sizes)
	return sizes
}
