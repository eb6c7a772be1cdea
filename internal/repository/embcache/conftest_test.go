package embcache

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/bom70489/YDP/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

func newTestCachedEmbedder(t *testing.T, inner *mockEmbedder, capacity int) *CachedEmbedder {
	t.Helper()
	return New(inner, capacity, nil, zap.NewNop())
}
