package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/bizlens/backend/internal/domain/entities"
	"github.com/bizlens/backend/internal/domain/repositories"
	"github.com/bizlens/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/bizlens/backend/pkg/errors"
)

// SearchHistoryAdapter implements SearchHistoryRepository
type SearchHistoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSearchHistoryAdapter creates a new search history adapter
func NewSearchHistoryAdapter(client *postgres.Client) repositories.SearchHistoryRepository {
	return &SearchHistoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Append persists a new history entry. Entries are write-once.
func (a *SearchHistoryAdapter) Append(ctx context.Context, entry *entities.SearchHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	record := goqu.Record{
		"id":          entry.ID,
		"user_id":     entry.UserID,
		"search_text": entry.SearchText,
		"status":      entry.Status,
		"created_at":  entry.CreatedAt,
	}

	sqlStr, args, err := a.db.Insert("search_history").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build history insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, sqlStr, args...); err != nil {
		return apperrors.NewUnavailableError("failed to append search history", err)
	}

	return nil
}

// ListByUser returns one page of a user's history, newest first, with the
// total entry count for pagination.
func (a *SearchHistoryAdapter) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.SearchHistoryEntry, int, error) {
	countSQL, countArgs, err := a.db.Select(goqu.COUNT("*")).
		From("search_history").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build history count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewUnavailableError("failed to count search history", err)
	}

	sqlStr, args, err := a.db.Select(
		"id", "user_id", "search_text", "status", "created_at",
	).From("search_history").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build history query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, apperrors.NewUnavailableError("failed to list search history", err)
	}
	defer rows.Close()

	entries := []*entities.SearchHistoryEntry{}
	for rows.Next() {
		entry := &entities.SearchHistoryEntry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.SearchText,
			&entry.Status,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan history entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewUnavailableError("error iterating search history", err)
	}

	return entries, total, nil
}
