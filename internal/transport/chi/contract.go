package chi

import (
	"context"

	domlisting "github.com/bom70489/YDP/internal/domain/listing"
	"github.com/bom70489/YDP/internal/domain/query"
	healthuc "github.com/bom70489/YDP/internal/usecase/health"
)

// Searcher runs the hybrid search pipeline.
type Searcher interface {
	Search(ctx context.Context, q query.Query) ([]domlisting.Result, error)
}

// Recommender builds personalized recommendations.
type Recommender interface {
	Recommend(ctx context.Context, searchHistory, favoriteIDs []string, limit int) ([]domlisting.Result, error)
}

// ListingGetter serves single listing lookups.
type ListingGetter interface {
	Get(ctx context.Context, id string) (domlisting.Result, error)
}

// HistoryWriter persists search queries.
type HistoryWriter interface {
	SaveUser(ctx context.Context, userID, query string) error
	SaveGuest(ctx context.Context, query string) error
}

// HealthChecker probes the service dependencies.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
