package search

import (
	"context"
	"errors"
	"testing"

	"github.com/bom70489/YDP/internal/db"
	"github.com/bom70489/YDP/internal/domain"
)

func TestKNN_MapsEntriesToCandidates(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		if q.IndexName != IndexName {
			t.Errorf("index name = %s", q.IndexName)
		}
		if q.K != 100 {
			t.Errorf("k = %d, want 100", q.K)
		}
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: KeyPrefix + "42", Score: 0.9, Fields: map[string]string{"title": "บ้านเดี่ยว"}},
				{Key: KeyPrefix + "43", Score: 0.8, Fields: map[string]string{"title": "คอนโด"}},
			},
		}, nil
	}

	candidates, err := repo.KNN(context.Background(), testVector(), 100, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != "42" {
		t.Errorf("expected key prefix stripped, got ID %q", candidates[0].ID)
	}
	if candidates[0].Score != 0.9 {
		t.Errorf("score = %f", candidates[0].Score)
	}
	if candidates[1].Fields["title"] != "คอนโด" {
		t.Errorf("fields not carried: %v", candidates[1].Fields)
	}
}

func TestKNN_CategoryFilterPushdown(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotFilters []db.TagFilter
	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		gotFilters = q.Filters
		return &db.SearchResult{}, nil
	}

	_, err := repo.KNN(context.Background(), testVector(), 10, []string{"3", "4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotFilters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(gotFilters))
	}
	if gotFilters[0].Field != "category_id" {
		t.Errorf("filter field = %s", gotFilters[0].Field)
	}
	if len(gotFilters[0].Values) != 2 || gotFilters[0].Values[0] != "3" {
		t.Errorf("filter values = %v", gotFilters[0].Values)
	}
}

func TestKNN_NoCategoriesNoFilters(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		if q.Filters != nil {
			t.Errorf("expected no filters, got %v", q.Filters)
		}
		return &db.SearchResult{}, nil
	}

	if _, err := repo.KNN(context.Background(), testVector(), 10, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKNN_IndexErrorWrapped(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return nil, errors.New("connection refused")
	}

	_, err := repo.KNN(context.Background(), testVector(), 10, nil)
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestKNN_EmptyResult(t *testing.T) {
	repo, _ := newTestRepo(t)

	candidates, err := repo.KNN(context.Background(), testVector(), 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates != nil {
		t.Errorf("expected nil candidates, got %v", candidates)
	}
}
