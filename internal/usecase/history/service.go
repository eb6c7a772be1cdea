// Package history records search queries for later persona building.
package history

import (
	"context"
	"fmt"
	"strings"
)

// Service handles history writes.
type Service struct {
	repo Repository
}

// New creates a history service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// SaveUser records a user's search query.
func (s *Service) SaveUser(ctx context.Context, userID, query string) error {
	userID = strings.TrimSpace(userID)
	query = strings.TrimSpace(query)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if query == "" {
		return nil
	}
	return s.repo.AppendUser(ctx, userID, query)
}

// SaveGuest records an anonymous search query.
func (s *Service) SaveGuest(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return s.repo.AppendGuest(ctx, query)
}
