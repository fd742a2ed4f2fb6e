package fetcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/wearstack/scout/internal/extract"
)

// StaticPage adapts served markup to the extractor page surface. Geometry
// signals (dimensions, viewport position) come from attributes when present
// and are zero otherwise, so image ranking degrades to keyword and URL
// heuristics.
type StaticPage struct {
	doc  *goquery.Document
	node *html.Node
}

// NewStaticPage parses markup into a page.
func NewStaticPage(markup string) (*StaticPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	node, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return &StaticPage{doc: doc, node: node}, nil
}

// HTML returns the document markup.
func (p *StaticPage) HTML() (string, error) {
	return p.doc.Html()
}

// QueryText returns the trimmed text of the first element matching any of
// the selectors. Selectors starting with "//" are resolved as XPath.
func (p *StaticPage) QueryText(selectors ...string) (string, bool) {
	for _, sel := range selectors {
		var text string
		if strings.HasPrefix(sel, "//") {
			if n := htmlquery.FindOne(p.node, sel); n != nil {
				text = htmlquery.InnerText(n)
			}
		} else {
			text = p.doc.Find(sel).First().Text()
		}
		if t := strings.TrimSpace(text); t != "" {
			return t, true
		}
	}
	return "", false
}

// ImageSignals collects image candidates from <img> elements and <source>
// elements inside <picture>, reading lazy-load attribute variants the same
// way the in-page collector does.
func (p *StaticPage) ImageSignals() ([]extract.ImageSignal, error) {
	var signals []extract.ImageSignal

	p.doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src := firstAttr(sel, "src", "data-src", "data-original", "data-zoom-image", "data-lazy")
		signals = append(signals, extract.ImageSignal{
			URL:       src,
			Width:     attrFloat(sel, "width"),
			Height:    attrFloat(sel, "height"),
			Alt:       sel.AttrOr("alt", ""),
			Class:     sel.AttrOr("class", ""),
			InPicture: sel.ParentsFiltered("picture").Length() > 0,
		})
	})

	p.doc.Find("picture source").Each(func(_ int, sel *goquery.Selection) {
		srcset := sel.AttrOr("srcset", "")
		if srcset == "" {
			return
		}
		signals = append(signals, extract.ImageSignal{
			URL:       lastSrcsetCandidate(srcset),
			Class:     sel.AttrOr("class", ""),
			InPicture: true,
		})
	})

	return signals, nil
}

// SizeTokens collects raw size-token candidates from the same sources the
// in-page collector reads.
func (p *StaticPage) SizeTokens() ([]string, error) {
	var tokens []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			tokens = append(tokens, s)
		}
	}

	p.doc.Find("button, .size, .size-button, .swatch__option").Each(func(_ int, sel *goquery.Selection) {
		add(sel.Text())
	})
	p.doc.Find("button[aria-label]").Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("aria-label", ""))
	})
	p.doc.Find("input[type='radio'], input[type='button']").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range []string{"value", "data-value", "data-option", "aria-label"} {
			add(sel.AttrOr(attr, ""))
		}
	})
	p.doc.Find("select option").Each(func(_ int, sel *goquery.Selection) {
		add(sel.Text())
	})

	return tokens, nil
}

// Close is a no-op; a static page holds no external resources.
func (p *StaticPage) Close() error { return nil }

func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}

func attrFloat(sel *goquery.Selection, name string) float64 {
	v, ok := sel.Attr(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// lastSrcsetCandidate returns the URL of the final srcset entry, which sites
// conventionally order smallest to largest.
func lastSrcsetCandidate(srcset string) string {
	parts := strings.Split(srcset, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		candidate := strings.TrimSpace(parts[i])
		if candidate == "" {
			continue
		}
		return strings.Fields(candidate)[0]
	}
	return ""
}
