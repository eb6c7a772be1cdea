package history

import (
	"context"
	"testing"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	lPushFn  func(ctx context.Context, key string, values ...string) error
	lTrimFn  func(ctx context.Context, key string, start, stop int64) error
	lRangeFn func(ctx context.Context, key string, start, stop int64) ([]string, error)
}

func (m *mockStore) LPush(ctx context.Context, key string, values ...string) error {
	if m.lPushFn != nil {
		return m.lPushFn(ctx, key, values...)
	}
	return nil
}

func (m *mockStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	if m.lTrimFn != nil {
		return m.lTrimFn(ctx, key, start, stop)
	}
	return nil
}

func (m *mockStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.lRangeFn != nil {
		return m.lRangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
