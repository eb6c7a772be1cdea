package domain

import "context"

// Judge is the relevance judgment contract. Complete sends a scoring
// prompt to a language model and returns the raw completion text, which
// is expected (but not trusted) to be a JSON array of {id, score}.
type Judge interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
