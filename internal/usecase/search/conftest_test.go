package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/bom70489/YDP/internal/domain"
	"github.com/bom70489/YDP/internal/domain/listing"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	texts  []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.texts = append(m.texts, text)
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return m.result, nil
}

type mockRetriever struct {
	candidates []listing.Candidate
	err        error
	calls      int
	lastK      int
	lastTags   []string
}

func (m *mockRetriever) KNN(_ context.Context, _ []float32, k int, categoryIDs []string) ([]listing.Candidate, error) {
	m.calls++
	m.lastK = k
	m.lastTags = categoryIDs
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

type mockReranker struct {
	scores map[int]float64
	calls  int
}

func (m *mockReranker) ScoreSearch(_ context.Context, _ string, _ []listing.Candidate, _ int) map[int]float64 {
	m.calls++
	return m.scores
}

func newTestService(t *testing.T) (*Service, *mockEmbedder, *mockRetriever, *mockReranker) {
	t.Helper()
	me := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	mr := &mockRetriever{}
	mj := &mockReranker{}
	svc := New(me, mr, mj, zap.NewNop())
	return svc, me, mr, mj
}

func candidateWith(id string, score float64, fields map[string]string) listing.Candidate {
	return listing.FromFields(id, score, fields)
}

func floatPtr(f float64) *float64 { return &f }
