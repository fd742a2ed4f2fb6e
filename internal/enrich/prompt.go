package enrich

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildPrompt renders the cleaning contract: raw scraped data as context, the
// partially-filled product JSON as the base, and strict echo rules so the
// model only fills gaps and never rewrites scraped values.
func buildPrompt(rawJSON, productJSON []byte, styleTags, categories, genders []string) string {
	return fmt.Sprintf(`You are cleaning and enriching fashion e-commerce product data.

You are given:
1) SCRAPED_RAW_DATA which may be incomplete or messy.
2) CURRENT_PRODUCT_JSON which already has some fields filled in.

RULES:
- You MUST return ONLY a single valid JSON object. No markdown, no backticks.
- For any field in CURRENT_PRODUCT_JSON that is NON-EMPTY (non-empty string, non-empty list),
  you MUST keep the value exactly as it is.
- For any field that is empty (""), null, or an empty list:
    - description: write a natural 1-3 sentence product description
      based on title, brand, any text, and URL.
    - currency: detect from price or URL. If unclear and the site looks UK/European,
      use "GBP" as a default.
    - category: one of exactly %s.
    - gender_target: one of exactly %s.
    - style_tags: a list of 1-4 tags chosen ONLY from:
      %s.

IMPORTANT:
- Do NOT change product_name, brand, price, image_url, sizes_available, or product_url
  if they are already filled in.
- Do NOT invent an image_url if it is empty; leave it as an empty string.
- Use SCRAPED_RAW_DATA as context, but the final keys MUST match CURRENT_PRODUCT_JSON.

SCRAPED_RAW_DATA:
%s

CURRENT_PRODUCT_JSON:
%s
`, quotedList(categories), quotedList(genders), quotedList(styleTags), rawJSON, productJSON)
}

func quotedList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// stripFences removes markdown code-fence markers the model sometimes wraps
// its JSON in despite the prompt contract.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// mustJSON marshals v for embedding in a prompt. The inputs are plain structs
// and string slices, so a marshal failure is a programming error.
func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
