// Package listing holds the listing document projections flowing through
// the search pipeline: raw candidates from the vector index and the
// assembled results returned to callers.
package listing

import "github.com/bom70489/YDP/internal/domain"

// Stored hash field names for a listing document.
const (
	FieldTitle       = "title"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldBedrooms    = "bedrooms"
	FieldBathrooms   = "bathrooms"
	FieldArea        = "area"
	FieldLocation    = "location"
	FieldGeo         = "geo"
	FieldImage       = "image"
	FieldCategoryID  = "category_id"
	FieldVector      = "__vector"
)

// Candidate is a listing surfaced by the vector index for one request.
// It is request-scoped: constructed from the raw field projection,
// mutated by the post-filter and assembler, and discarded with the
// response.
type Candidate struct {
	ID    string
	Score float64 // similarity reported by the index

	// RerankScore is filled during assembly: the judge's score for
	// windowed candidates, the original similarity for the rest.
	RerankScore float64

	// Fields is the raw string projection from the document store.
	Fields map[string]string

	// Numeric fields coerced from Fields; valid after Coerce.
	Price     float64
	Area      float64
	Bedrooms  int
	Bathrooms int

	coerced bool
}

// FromFields builds a Candidate from a raw store projection.
func FromFields(id string, score float64, fields map[string]string) Candidate {
	if fields == nil {
		fields = map[string]string{}
	}
	return Candidate{ID: id, Score: score, Fields: fields}
}

// Coerce parses the candidate's numeric fields once, with the lenient
// policy shared by the post-filter and the assembler. The parsed values
// are kept on the candidate so later stages reuse the cleaned numbers
// instead of re-reading dirty strings.
func (c *Candidate) Coerce() {
	if c.coerced {
		return
	}
	c.Price = domain.LenientFloat(c.Fields[FieldPrice])
	c.Area = domain.LenientFloat(c.Fields[FieldArea])
	c.Bedrooms = domain.LenientInt(c.Fields[FieldBedrooms])
	c.Bathrooms = domain.LenientInt(c.Fields[FieldBathrooms])
	c.coerced = true
}

// Title returns the display title, falling back to a placeholder.
func (c *Candidate) Title() string {
	if t := c.Fields[FieldTitle]; t != "" {
		return t
	}
	return "ไม่มีชื่อ"
}

// Description returns the AI description, possibly empty.
func (c *Candidate) Description() string {
	return c.Fields[FieldDescription]
}
