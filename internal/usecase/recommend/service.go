// Package recommend builds per-request persona vectors from user
// behavior and turns them into personalized listing recommendations.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bom70489/YDP/internal/domain"
	"github.com/bom70489/YDP/internal/domain/listing"
	"github.com/bom70489/YDP/internal/domain/query"
	"github.com/bom70489/YDP/internal/metrics"
)

// Candidate pool sizing relative to the requested limit. The persona
// vector is a blunt instrument, so the pool over-fetches and lets the
// judge sharpen the head of the list.
const (
	candidateFactor = 10
	poolFactor      = 5
	// interestsWindow bounds how many recent searches describe the user
	// to the judge.
	interestsWindow = 3
	// defaultInterests stands in when the user has favorites but no
	// search history to summarize.
	defaultInterests = "general preferences"
)

// Service handles recommendation requests.
type Service struct {
	embed    Embedder
	listings ListingReader
	retrieve Retriever
	rerank   Reranker
	logger   *zap.Logger
}

// New creates a recommendation service.
func New(embed Embedder, listings ListingReader, retrieve Retriever, rerank Reranker, logger *zap.Logger) *Service {
	return &Service{embed: embed, listings: listings, retrieve: retrieve, rerank: rerank, logger: logger}
}

// Recommend returns up to limit personalized listings. When no persona
// can be built it returns domain.ErrNoPersona without touching the
// vector index; index failures degrade to an empty list.
func (s *Service) Recommend(ctx context.Context, searchHistory, favoriteIDs []string, limit int) ([]listing.Result, error) {
	if limit <= 0 {
		limit = query.DefaultLimit
	}

	persona, err := s.BuildPersona(ctx, searchHistory, favoriteIDs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoPersona):
			metrics.RecommendRequestsTotal.WithLabelValues("no_persona").Inc()
			return nil, domain.ErrNoPersona
		case errors.Is(err, domain.ErrEmbeddingProviderError):
			// No vector, no recommendations: this is the one hard failure.
			metrics.RecommendRequestsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("build persona: %w", err)
		default:
			// Favorites lookup failed; an empty page beats a hard error.
			s.logger.Warn("persona build degraded, returning empty results", zap.Error(err))
			metrics.RecommendRequestsTotal.WithLabelValues("degraded").Inc()
			return []listing.Result{}, nil
		}
	}

	candidates, err := s.retrieve.KNN(ctx, persona, candidateFactor*limit, nil)
	if err != nil {
		s.logger.Warn("vector index unavailable for recommendations, returning empty results",
			zap.Error(err))
		metrics.RecommendRequestsTotal.WithLabelValues("degraded").Inc()
		return []listing.Result{}, nil
	}
	if len(candidates) > poolFactor*limit {
		candidates = candidates[:poolFactor*limit]
	}
	if len(candidates) == 0 {
		metrics.RecommendRequestsTotal.WithLabelValues("ok").Inc()
		return []listing.Result{}, nil
	}

	scores := s.rerank.ScoreRecommendations(ctx, interests(searchHistory), candidates, limit)

	metrics.RecommendRequestsTotal.WithLabelValues("ok").Inc()
	return listing.Assemble(candidates, scores, limit), nil
}

// interests summarizes the user's most recent searches for the judge.
func interests(searchHistory []string) string {
	if len(searchHistory) == 0 {
		return defaultInterests
	}
	recent := searchHistory
	if len(recent) > interestsWindow {
		recent = recent[len(recent)-interestsWindow:]
	}
	return strings.Join(recent, ", ")
}
