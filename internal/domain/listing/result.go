package listing

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/bom70489/YDP/internal/domain"
)

// FallbackImageURL replaces image fields that are absent or unusable
// (bare numeric asset IDs from the upstream feed).
const FallbackImageURL = "https://images.unsplash.com/photo-1570129477492-45c003edd2be?q=80&w=1170&auto=format&fit=crop&ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D"

// Coordinates is a geographic point in the public result shape.
type Coordinates struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Result is the stable public projection of a listing.
type Result struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Price       float64      `json:"price"`
	Bedrooms    int          `json:"bedrooms"`
	Bathrooms   int          `json:"bathrooms"`
	Area        float64      `json:"area"`
	Location    string       `json:"location"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	CategoryID  int          `json:"category_id,omitempty"`
	Score       float64      `json:"score"`
	RerankScore float64      `json:"_rerank_score"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Assemble merges rerank scores into the candidates, orders them by
// descending rerank score, truncates to limit, and normalizes each
// surviving candidate into the public shape.
//
// scores maps 1-based candidate position to the judge's score;
// candidates outside the map keep their original similarity score, so
// the whole set stays totally ordered. Ties keep insertion order
// (stable sort) — that is the documented tie-break.
func Assemble(candidates []Candidate, scores map[int]float64, limit int) []Result {
	for i := range candidates {
		if s, ok := scores[i+1]; ok {
			candidates[i].RerankScore = s
		} else {
			candidates[i].RerankScore = candidates[i].Score
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RerankScore > candidates[j].RerankScore
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]Result, len(candidates))
	for i := range candidates {
		results[i] = ToResult(&candidates[i])
	}
	return results
}

// ToResult normalizes one candidate into the public shape.
func ToResult(c *Candidate) Result {
	c.Coerce()
	return Result{
		ID:          c.ID,
		Title:       c.Title(),
		Price:       c.Price,
		Bedrooms:    c.Bedrooms,
		Bathrooms:   c.Bathrooms,
		Area:        c.Area,
		Location:    locationOf(c),
		Description: c.Description(),
		Image:       imageOf(c),
		CategoryID:  domain.LenientInt(c.Fields[FieldCategoryID]),
		Score:       c.Score,
		RerankScore: c.RerankScore,
		Coordinates: parseCoordinates(c.Fields[FieldGeo]),
	}
}

func locationOf(c *Candidate) string {
	if l := c.Fields[FieldLocation]; l != "" {
		return l
	}
	return "ไม่มีที่อยู่"
}

// imageOf returns the stored image URL, or the placeholder when the
// field is missing or holds a bare numeric asset ID instead of a URL.
func imageOf(c *Candidate) string {
	img := strings.TrimSpace(c.Fields[FieldImage])
	if img == "" {
		return FallbackImageURL
	}
	if _, err := strconv.ParseFloat(img, 64); err == nil {
		return FallbackImageURL
	}
	return img
}

// parseCoordinates extracts {lng, lat} from the stored geo field, which
// is JSON in one of two shapes: a GeoJSON-like object
// {"type":"Point","coordinates":[lng,lat]} or a bare [lng,lat] array.
// Anything without exactly two coordinate values yields nil — the
// coordinates are omitted rather than defaulted, so a missing point is
// never plotted at the origin.
func parseCoordinates(raw string) *Coordinates {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var coords []float64

	var obj struct {
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal([]byte(raw), &obj); err == nil && obj.Coordinates != nil {
		coords = obj.Coordinates
	} else if err := json.Unmarshal([]byte(raw), &coords); err != nil {
		return nil
	}

	if len(coords) != 2 {
		return nil
	}
	return &Coordinates{Lng: coords[0], Lat: coords[1]}
}
