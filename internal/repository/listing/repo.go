// Package listing adapts the Redis hash store into the document lookup
// contract used by the listing and recommendation usecases.
package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/bom70489/YDP/internal/domain"
	domlisting "github.com/bom70489/YDP/internal/domain/listing"
)

// KeyPrefix namespaces listing document keys.
const KeyPrefix = domain.KeyPrefix + "listing:"

// store is the consumer interface for listing documents (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo implements listing lookup over the hash store.
type Repo struct {
	store store
}

// New creates a listing repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns a single listing by ID. A missing or empty hash maps to
// domain.ErrListingNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domlisting.Candidate, error) {
	if err := validateID(id); err != nil {
		return domlisting.Candidate{}, err
	}

	fields, err := r.store.HGetAll(ctx, Key(id))
	if err != nil {
		return domlisting.Candidate{}, fmt.Errorf("get listing %s: %w", id, err)
	}
	if len(fields) == 0 {
		return domlisting.Candidate{}, domain.ErrListingNotFound
	}

	delete(fields, domlisting.FieldVector)
	return domlisting.FromFields(id, 0, fields), nil
}

// GetMulti returns listings for the given IDs in one round-trip.
// Missing or malformed IDs are skipped, not errors: favorites may
// reference listings that have since been removed.
func (r *Repo) GetMulti(ctx context.Context, ids []string) ([]domlisting.Candidate, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validateID(id) == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}

	keys := make([]string, len(valid))
	for i, id := range valid {
		keys[i] = Key(id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get listings: %w", err)
	}

	out := make([]domlisting.Candidate, 0, len(valid))
	for i, fields := range maps {
		if len(fields) == 0 {
			continue
		}
		delete(fields, domlisting.FieldVector)
		out = append(out, domlisting.FromFields(valid[i], 0, fields))
	}
	return out, nil
}

// Key builds the storage key for a listing ID.
func Key(id string) string {
	return KeyPrefix + id
}

func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, " :\n\t") {
		return fmt.Errorf("listing id %q: %w", id, domain.ErrInvalidListingID)
	}
	return nil
}
