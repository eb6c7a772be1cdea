// Package search adapts the vector index into the retrieval contract
// used by the search pipeline.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/bom70489/YDP/internal/db"
	"github.com/bom70489/YDP/internal/domain"
	"github.com/bom70489/YDP/internal/domain/listing"
)

// IndexName is the FT index over listing hashes.
const IndexName = domain.KeyPrefix + "listings:idx"

// KeyPrefix namespaces listing document keys.
const KeyPrefix = domain.KeyPrefix + "listing:"

// returnFields is the projection requested from the index; the vector
// itself is never returned to keep payloads small.
var returnFields = []string{
	listing.FieldTitle,
	listing.FieldPrice,
	listing.FieldDescription,
	listing.FieldBedrooms,
	listing.FieldBathrooms,
	listing.FieldArea,
	listing.FieldLocation,
	listing.FieldGeo,
	listing.FieldImage,
	listing.FieldCategoryID,
	"__vector_score",
}

// store is the consumer interface for KNN retrieval (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the retrieval side of the search pipeline.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// KNN returns up to k listing candidates nearest to vector, optionally
// pre-filtered by category IDs. Index failures are wrapped with
// domain.ErrIndexUnavailable so callers can degrade to empty results.
func (r *Repo) KNN(ctx context.Context, vector []float32, k int, categoryIDs []string) ([]listing.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:    IndexName,
		Vector:       vector,
		K:            k,
		ReturnFields: returnFields,
	}
	if len(categoryIDs) > 0 {
		q.Filters = []db.TagFilter{{Field: listing.FieldCategoryID, Values: categoryIDs}}
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("knn search: %w: %w", domain.ErrIndexUnavailable, err)
	}

	return toCandidates(sr), nil
}

func toCandidates(sr *db.SearchResult) []listing.Candidate {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	candidates := make([]listing.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, KeyPrefix)
		candidates = append(candidates, listing.FromFields(id, entry.Score, entry.Fields))
	}
	return candidates
}
