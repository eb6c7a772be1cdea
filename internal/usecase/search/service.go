// Package search runs the hybrid retrieval pipeline: filter extraction,
// embedding, KNN retrieval, numeric post-filtering, judge reranking,
// and result assembly.
package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/bom70489/YDP/internal/domain/listing"
	"github.com/bom70489/YDP/internal/domain/query"
	"github.com/bom70489/YDP/internal/metrics"
)

// Candidate pool sizing. The index cannot express numeric ranges, so
// when a price or area filter is active we over-fetch to survive
// post-filter pruning without starving the result set.
const (
	NumCandidatesBase     = 100
	NumCandidatesFiltered = 500
)

// Service orchestrates one search request end to end.
type Service struct {
	embed    Embedder
	retrieve Retriever
	rerank   Reranker
	logger   *zap.Logger
}

// New creates a search service.
func New(embed Embedder, retrieve Retriever, rerank Reranker, logger *zap.Logger) *Service {
	return &Service{embed: embed, retrieve: retrieve, rerank: rerank, logger: logger}
}

// NumCandidates returns the retrieval pool size for a query.
func NumCandidates(q query.Query) int {
	if q.HasNumericFilter() {
		return NumCandidatesFiltered
	}
	return NumCandidatesBase
}

// Search executes the pipeline and returns assembled results. Index
// failures degrade to an empty result list; embedding failures are the
// one hard error, since there is no meaningful query without a vector.
func (s *Service) Search(ctx context.Context, q query.Query) ([]listing.Result, error) {
	residual, categoryIDs := query.ExtractCategories(q.Text)

	embStart := time.Now()
	embResult, err := s.embed.Embed(ctx, query.EmbeddingText(residual))
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	metrics.SearchStageDuration.WithLabelValues("embed").Observe(time.Since(embStart).Seconds())

	retrieveStart := time.Now()
	candidates, err := s.retrieve.KNN(ctx, embResult.Embedding, NumCandidates(q), categoryTags(categoryIDs))
	if err != nil {
		// Degrade to "no results": an empty page is more useful to the
		// caller than a hard failure.
		s.logger.Warn("vector index unavailable, returning empty results",
			zap.Error(err), zap.String("query", q.Text))
		metrics.SearchRequestsTotal.WithLabelValues("degraded").Inc()
		return []listing.Result{}, nil
	}
	metrics.SearchStageDuration.WithLabelValues("retrieve").Observe(time.Since(retrieveStart).Seconds())
	metrics.SearchCandidatesFetched.Observe(float64(len(candidates)))

	filterStart := time.Now()
	candidates = PostFilter(candidates, q)
	metrics.SearchStageDuration.WithLabelValues("filter").Observe(time.Since(filterStart).Seconds())

	if len(candidates) == 0 {
		metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
		return []listing.Result{}, nil
	}

	rerankStart := time.Now()
	// The judge sees the original query text: stripped keywords still
	// carry relevance signal for scoring.
	scores := s.rerank.ScoreSearch(ctx, q.Text, candidates, q.Limit)
	metrics.SearchStageDuration.WithLabelValues("rerank").Observe(time.Since(rerankStart).Seconds())

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	return listing.Assemble(candidates, scores, q.Limit), nil
}

// categoryTags renders category IDs as index tag values.
func categoryTags(ids []int) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	return out
}
