package recommend

import (
	"context"

	"github.com/bom70489/YDP/internal/domain"
	"github.com/bom70489/YDP/internal/domain/listing"
)

// Embedder vectorizes persona inputs.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// ListingReader resolves favorited listings to their stored projections.
type ListingReader interface {
	GetMulti(ctx context.Context, ids []string) ([]listing.Candidate, error)
}

// Retriever fetches ranked candidates from the vector index.
type Retriever interface {
	KNN(ctx context.Context, vector []float32, k int, categoryIDs []string) ([]listing.Candidate, error)
}

// Reranker scores the candidate window against a user-interest summary.
type Reranker interface {
	ScoreRecommendations(ctx context.Context, interests string, candidates []listing.Candidate, limit int) map[int]float64
}
