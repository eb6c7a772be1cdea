package recommend

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/bom70489/YDP/internal/domain"
	"github.com/bom70489/YDP/internal/domain/listing"
)

// mockEmbedder returns a fixed vector per text, recording inputs. Safe
// for concurrent use because the persona builder embeds in parallel.
type mockEmbedder struct {
	mu          sync.Mutex
	vectors     map[string][]float32
	fallbackVec []float32
	err         error
	texts       []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	if vec, ok := m.vectors[text]; ok {
		return domain.EmbeddingResult{Embedding: vec}, nil
	}
	vec := m.fallbackVec
	if vec == nil {
		vec = []float32{1, 0}
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}

type mockListings struct {
	favorites []listing.Candidate
	err       error
	lastIDs   []string
}

func (m *mockListings) GetMulti(_ context.Context, ids []string) ([]listing.Candidate, error) {
	m.lastIDs = ids
	return m.favorites, m.err
}

type mockRetriever struct {
	candidates []listing.Candidate
	err        error
	calls      int
	lastK      int
	lastVector []float32
}

func (m *mockRetriever) KNN(_ context.Context, vector []float32, k int, _ []string) ([]listing.Candidate, error) {
	m.calls++
	m.lastK = k
	m.lastVector = vector
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

type mockReranker struct {
	scores        map[int]float64
	calls         int
	lastInterests string
}

func (m *mockReranker) ScoreRecommendations(_ context.Context, interests string, _ []listing.Candidate, _ int) map[int]float64 {
	m.calls++
	m.lastInterests = interests
	return m.scores
}

func newTestService(t *testing.T) (*Service, *mockEmbedder, *mockListings, *mockRetriever, *mockReranker) {
	t.Helper()
	me := &mockEmbedder{vectors: map[string][]float32{}}
	ml := &mockListings{}
	mr := &mockRetriever{}
	mj := &mockReranker{}
	svc := New(me, ml, mr, mj, zap.NewNop())
	return svc, me, ml, mr, mj
}
