package search

import (
	"github.com/bom70489/YDP/internal/domain/listing"
	"github.com/bom70489/YDP/internal/domain/query"
)

// PostFilter drops candidates outside the query's numeric ranges.
// Numeric fields are coerced leniently (dirty strings default to 0) and
// the parsed values stay on the candidate for the assembler. Price and
// area bounds are independent; a candidate must satisfy every bound
// that is present.
func PostFilter(candidates []listing.Candidate, q query.Query) []listing.Candidate {
	if !q.HasNumericFilter() {
		return candidates
	}

	kept := candidates[:0]
	for i := range candidates {
		c := &candidates[i]
		c.Coerce()

		if q.MinPrice != nil && c.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && c.Price > *q.MaxPrice {
			continue
		}
		if q.MinArea != nil && c.Area < *q.MinArea {
			continue
		}
		if q.MaxArea != nil && c.Area > *q.MaxArea {
			continue
		}

		kept = append(kept, *c)
	}
	return kept
}
