package search

import (
	"context"

	"github.com/bom70489/YDP/internal/domain"
	"github.com/bom70489/YDP/internal/domain/listing"
)

// Retriever fetches ranked candidates from the vector index.
type Retriever interface {
	KNN(ctx context.Context, vector []float32, k int, categoryIDs []string) ([]listing.Candidate, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Reranker scores the candidate window with the judge; a nil map means
// fall back to similarity order.
type Reranker interface {
	ScoreSearch(ctx context.Context, query string, candidates []listing.Candidate, limit int) map[int]float64
}
