package domain

import (
	"context"
	"math"
)

// KeyPrefix namespaces every Redis key owned by this service.
const KeyPrefix = "ydp:"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// BatchEmbedder vectorizes many texts in one provider round-trip.
// Used by bulk ingest; interactive paths go through Embedder.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// BatchEmbeddingResult carries vectors in input order plus aggregate usage.
type BatchEmbeddingResult struct {
	Embeddings   [][]float32
	PromptTokens int
	TotalTokens  int
}

// Normalize scales v to unit L2 norm in place and returns it.
// A zero-norm vector is returned unchanged: there is no meaningful
// direction to preserve and dividing by zero would poison the index.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// WeightedMean computes the component-wise weighted arithmetic mean of
// vectors. The result is a centroid, deliberately not re-normalized:
// downstream KNN treats it as an ordinary query vector.
// All vectors must share the same dimensionality; weights must be
// positive and len(weights) == len(vectors).
func WeightedMean(vectors [][]float32, weights []float64) []float32 {
	if len(vectors) == 0 || len(vectors) != len(weights) {
		return nil
	}

	dim := len(vectors[0])
	acc := make([]float64, dim)
	var total float64

	for i, vec := range vectors {
		if len(vec) != dim {
			return nil
		}
		w := weights[i]
		total += w
		for j, x := range vec {
			acc[j] += float64(x) * w
		}
	}
	if total == 0 {
		return nil
	}

	out := make([]float32, dim)
	for j := range acc {
		out[j] = float32(acc[j] / total)
	}
	return out
}
