package repositories

import (
	"context"

	"github.com/bizlens/backend/internal/domain/entities"
)

// SearchHistoryRepository defines durable storage for search history
type SearchHistoryRepository interface {
	// Append persists a new history entry
	Append(ctx context.Context, entry *entities.SearchHistoryEntry) error

	// ListByUser returns one page of a user's history, newest first,
	// along with the total entry count
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.SearchHistoryEntry, int, error)
}
