package entities

import "time"

// History entry statuses
const (
	HistoryStatusCompleted = "completed"
	HistoryStatusDegraded  = "degraded"
)

// SearchHistoryEntry is one durable record of a performed search. Entries
// are written once and never mutated.
type SearchHistoryEntry struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	SearchText string    `json:"search_text" db:"search_text"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// SearchHistoryPage is a paginated slice of a user's search history
type SearchHistoryPage struct {
	Entries    []*SearchHistoryEntry `json:"entries"`
	Pagination Pagination            `json:"pagination"`
}
