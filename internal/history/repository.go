package history

import "context"

// Repository persists history entries.
type Repository interface {
	// Append stores a new entry.
	Append(ctx context.Context, e *Entry) error

	// ListByUser returns the newest entries of a kind for a user, newest first.
	ListByUser(ctx context.Context, userID string, kind Kind, limit int) ([]*Entry, error)

	// DeleteByUser removes every entry of a user.
	DeleteByUser(ctx context.Context, userID string) error
}
