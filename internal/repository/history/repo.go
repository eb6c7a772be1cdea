// Package history persists search queries in Redis lists: a per-user
// list trimmed to the most recent entries, and a shared guest log.
package history

import (
	"context"
	"fmt"

	"github.com/bom70489/YDP/internal/domain"
)

const (
	userKeyPrefix = domain.KeyPrefix + "history:user:"
	guestKey      = domain.KeyPrefix + "history:guest"

	// UserLimit keeps only the most recent searches per user.
	UserLimit = 20
	// GuestLimit caps the shared anonymous search log.
	GuestLimit = 100
)

// store is the consumer interface for history lists (ISP).
type store interface {
	LPush(ctx context.Context, key string, values ...string) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo implements search history persistence.
type Repo struct {
	store store
}

// New creates a history repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// AppendUser records a search for a user, keeping the newest UserLimit entries.
func (r *Repo) AppendUser(ctx context.Context, userID, query string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if query == "" {
		return nil
	}

	key := userKeyPrefix + userID
	if err := r.store.LPush(ctx, key, query); err != nil {
		return fmt.Errorf("append history for %s: %w", userID, err)
	}
	if err := r.store.LTrim(ctx, key, 0, UserLimit-1); err != nil {
		return fmt.Errorf("trim history for %s: %w", userID, err)
	}
	return nil
}

// AppendGuest records an anonymous search in the shared guest log.
func (r *Repo) AppendGuest(ctx context.Context, query string) error {
	if query == "" {
		return nil
	}

	if err := r.store.LPush(ctx, guestKey, query); err != nil {
		return fmt.Errorf("append guest history: %w", err)
	}
	if err := r.store.LTrim(ctx, guestKey, 0, GuestLimit-1); err != nil {
		return fmt.Errorf("trim guest history: %w", err)
	}
	return nil
}

// LastUser returns up to n most recent searches for a user, newest first.
func (r *Repo) LastUser(ctx context.Context, userID string, n int) ([]string, error) {
	if userID == "" || n <= 0 {
		return nil, nil
	}

	vals, err := r.store.LRange(ctx, userKeyPrefix+userID, 0, int64(n-1))
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", userID, err)
	}
	return vals, nil
}
