package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jsonLDBlocks parses every <script type="application/ld+json"> block in the
// markup and returns the decoded top-level values. Blocks that fail to parse
// both raw and trimmed are skipped; third-party structured data is never
// trusted to be well-formed.
func jsonLDBlocks(markup string) []any {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var blocks []any
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, sel *goquery.Selection) {
		raw := sel.Text()
		if raw == "" {
			return
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &data); err != nil {
				return
			}
		}
		blocks = append(blocks, data)
	})

	return blocks
}

// asObjects flattens a decoded JSON-LD value into its object forms: a single
// object yields itself, an array yields its object elements, anything else
// yields nothing.
func asObjects(block any) []map[string]any {
	switch v := block.(type) {
	case map[string]any:
		return []map[string]any{v}
	case []any:
		var objs []map[string]any
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				objs = append(objs, obj)
			}
		}
		return objs
	}
	return nil
}
