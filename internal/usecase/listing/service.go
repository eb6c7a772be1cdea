// Package listing serves single-listing lookups in the public shape.
package listing

import (
	"context"
	"fmt"

	domlisting "github.com/bom70489/YDP/internal/domain/listing"
)

// Service handles listing detail requests.
type Service struct {
	reader Reader
}

// New creates a listing service.
func New(reader Reader) *Service {
	return &Service{reader: reader}
}

// Get returns one assembled listing. Sentinel errors from the reader
// (not found, invalid ID) pass through for transport-layer mapping.
func (s *Service) Get(ctx context.Context, id string) (domlisting.Result, error) {
	c, err := s.reader.Get(ctx, id)
	if err != nil {
		return domlisting.Result{}, fmt.Errorf("get listing: %w", err)
	}
	return domlisting.ToResult(&c), nil
}
