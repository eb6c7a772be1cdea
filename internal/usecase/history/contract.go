package history

import "context"

// Repository persists search history.
type Repository interface {
	AppendUser(ctx context.Context, userID, query string) error
	AppendGuest(ctx context.Context, query string) error
}
