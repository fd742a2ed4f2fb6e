package extract

import (
	"regexp"
	"sort"
	"strings"
)

const (
	maxRankedImages    = 10
	maxFallbackImages  = 5
	foldWindowTop      = -200
	foldWindowBottom   = 1600
)

// nonImageAssets mark URLs that are clearly not raster imagery.
var nonImageAssets = []string{".css", ".js", ".json", ".svg"}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// ImageRanker filters and scores candidate image signals. The blocklist and
// keyword vocabularies are injected at construction and treated as
// immutable.
type ImageRanker struct {
	blocklist  []string
	keywords   []string
	extensions []string
}

// NewImageRanker creates a ranker with the given vocabularies.
func NewImageRanker(blocklist, keywords, extensions []string) *ImageRanker {
	return &ImageRanker{
		blocklist:  blocklist,
		keywords:   keywords,
		extensions: extensions,
	}
}

type scoredImage struct {
	url   string
	score int
	area  float64
}

// Rank filters the collected signals and returns candidate URLs ordered by
// (score desc, area desc), at most 10 with a positive score. When nothing
// scores positive it degrades to the top 5 by area so a result is still
// produced whenever any candidate survived filtering.
func (r *ImageRanker) Rank(signals []ImageSignal, sourceURL, title string) []string {
	slugTokens := tokenSet(urlSlug(sourceURL))
	titleTokens := tokenSet(title)

	var candidates []scoredImage
	seen := make(map[string]struct{})

	for _, sig := range signals {
		src := sig.URL
		if src == "" {
			continue
		}

		// Normalize protocol-relative URLs to absolute.
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		if !strings.HasPrefix(src, "http") {
			continue
		}

		srcLower := strings.ToLower(src)
		if containsAny(srcLower, r.blocklist) {
			continue
		}

		// Extension-less CDN URLs are allowed, but anything that looks like
		// a stylesheet/script/vector asset is not.
		if !hasImageExtension(srcLower, r.extensions) && containsAny(srcLower, nonImageAssets) {
			continue
		}

		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}

		candidates = append(candidates, scoredImage{
			url:   src,
			score: r.score(sig, srcLower, slugTokens, titleTokens),
			area:  sig.Area(),
		})
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].area > candidates[j].area
	})

	var positive []string
	for _, c := range candidates {
		if c.score > 0 {
			positive = append(positive, c.url)
		}
	}
	if len(positive) > 0 {
		if len(positive) > maxRankedImages {
			positive = positive[:maxRankedImages]
		}
		return positive
	}

	// Best-effort fallback: nothing scored, return the largest few anyway.
	n := len(candidates)
	if n > maxFallbackImages {
		n = maxFallbackImages
	}
	fallback := make([]string, 0, n)
	for _, c := range candidates[:n] {
		fallback = append(fallback, c.url)
	}
	return fallback
}

// score computes the additive integer relevance score for one candidate.
func (r *ImageRanker) score(sig ImageSignal, srcLower string, slugTokens, titleTokens map[string]struct{}) int {
	alt := strings.ToLower(sig.Alt)
	class := strings.ToLower(sig.Class)
	area := sig.Area()

	score := 0

	// Big images are more likely the product.
	switch {
	case area >= 800*800:
		score += 8
	case area >= 600*600:
		score += 6
	case area >= 400*400:
		score += 4
	case area >= 200*200:
		score += 2
	default:
		// Very small images still count with a semantic hint.
		if containsAny(alt, r.keywords) || containsAny(class, r.keywords) {
			score++
		}
	}

	// Hero/gallery images usually sit inside <picture>.
	if sig.InPicture {
		score += 3
	}

	if containsAny(alt, r.keywords) {
		score += 2
	}
	if containsAny(class, r.keywords) {
		score += 2
	}

	// Near the fold beats footer ads.
	if sig.Top >= foldWindowTop && sig.Top <= foldWindowBottom {
		score++
	}

	nameTokens := tokenSet(srcLower)
	if overlap(nameTokens, slugTokens) >= 2 {
		score += 2
	}
	if overlap(nameTokens, titleTokens) >= 1 {
		score++
	}

	return score
}

// urlSlug returns the last path segment of a URL with any query stripped.
// A trailing slash yields an empty slug.
func urlSlug(rawURL string) string {
	trimmed, _, _ := strings.Cut(rawURL, "?")
	idx := strings.LastIndexByte(trimmed, '/')
	if idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return trimmed
}

// tokenSet extracts lowercase alphanumeric runs from s.
func tokenSet(s string) map[string]struct{} {
	tokens := tokenPattern.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hasImageExtension(srcLower string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(srcLower, ext) || strings.Contains(srcLower, ext) {
			return true
		}
	}
	return false
}
