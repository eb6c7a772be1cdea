// Package query models a property search query and the deterministic
// extraction of structured category filters from its free text.
package query

import "strings"

// DefaultLimit is the result count used when the caller does not ask
// for a specific number of listings.
const DefaultLimit = 10

// FallbackText is embedded instead of a query whose text is empty after
// keyword stripping ("all properties"). Embedding an empty string is
// provider-defined behavior we never rely on.
const FallbackText = "ทรัพย์สินทั้งหมด"

// categoryKeywords maps property-type terms, as typed by users, to the
// category IDs they select in the listing index. Matching is substring
// containment; entries are independent, so one query may select several.
// Kept as an ordered table so extraction output is deterministic.
var categoryKeywords = []struct {
	term string
	ids  []int
}{
	{"บ้านเดี่ยว", []int{4, 15}},
	{"คอนโด", []int{3}},
	{"อาคารชุด", []int{3}},
	{"ทาวน์เฮ้าส์", []int{5, 16}},
	{"ตึก", []int{6, 17}},
	{"ที่ดิน", []int{1, 2}},
}

// Query is a single search request: free text plus optional numeric
// range filters over price and area.
type Query struct {
	Text     string
	Limit    int
	MinPrice *float64
	MaxPrice *float64
	MinArea  *float64
	MaxArea  *float64
}

// New creates a Query, substituting DefaultLimit for a non-positive limit.
func New(text string, limit int) Query {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Query{Text: text, Limit: limit}
}

// HasPriceFilter reports whether either price bound is set.
func (q Query) HasPriceFilter() bool { return q.MinPrice != nil || q.MaxPrice != nil }

// HasAreaFilter reports whether either area bound is set.
func (q Query) HasAreaFilter() bool { return q.MinArea != nil || q.MaxArea != nil }

// HasNumericFilter reports whether any post-filterable range is set.
func (q Query) HasNumericFilter() bool { return q.HasPriceFilter() || q.HasAreaFilter() }

// ExtractCategories splits free text into a residual text query and the
// category IDs selected by recognized keywords. Every occurrence of a
// matched keyword is stripped from the text, remaining whitespace is
// collapsed, and the ID list is deduplicated (overlapping keywords may
// map to the same category).
func ExtractCategories(text string) (string, []int) {
	seen := make(map[int]bool)
	var ids []int

	for _, kw := range categoryKeywords {
		if !strings.Contains(text, kw.term) {
			continue
		}
		text = strings.ReplaceAll(text, kw.term, "")
		for _, id := range kw.ids {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	return strings.Join(strings.Fields(text), " "), ids
}

// EmbeddingText returns the residual text to embed, falling back to
// FallbackText when stripping left nothing useful.
func EmbeddingText(residual string) string {
	if strings.TrimSpace(residual) == "" {
		return FallbackText
	}
	return residual
}
