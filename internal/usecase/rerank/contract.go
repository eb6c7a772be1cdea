package rerank

import "context"

// Judge is the language-model completion contract.
type Judge interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
