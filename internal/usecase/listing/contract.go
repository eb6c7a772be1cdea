package listing

import (
	"context"

	domlisting "github.com/bom70489/YDP/internal/domain/listing"
)

// Reader looks up stored listings by ID.
type Reader interface {
	Get(ctx context.Context, id string) (domlisting.Candidate, error)
}
