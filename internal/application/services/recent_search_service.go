package services

import (
	"context"

	"github.com/bizlens/backend/internal/domain/entities"
	"github.com/bizlens/backend/internal/domain/providers"
	"github.com/bizlens/backend/internal/domain/repositories"
	apperrors "github.com/bizlens/backend/pkg/errors"
)

// RecentSearchService serves the recent-searches and search-history read
// endpoints. Unlike the search path, these endpoints exist solely to serve
// cache/store data, so a store failure surfaces as a retryable error.
type RecentSearchService struct {
	cache   providers.CacheProvider
	history repositories.SearchHistoryRepository
}

// NewRecentSearchService creates a new recent search service
func NewRecentSearchService(cache providers.CacheProvider, history repositories.SearchHistoryRepository) *RecentSearchService {
	return &RecentSearchService{
		cache:   cache,
		history: history,
	}
}

// Recent returns the user's recent searches, most recent first
func (s *RecentSearchService) Recent(ctx context.Context, userID string) (*entities.RecentSearches, error) {
	if s.cache == nil {
		return nil, apperrors.NewUnavailableError("recent search store not configured", nil)
	}
	searches, err := s.cache.ListRecent(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnavailableError("recent searches unavailable", err)
	}
	return &entities.RecentSearches{
		Searches: searches,
		Count:    len(searches),
	}, nil
}

// Clear removes the user's entire recent-search set and returns how many
// entries were removed
func (s *RecentSearchService) Clear(ctx context.Context, userID string) (int, error) {
	if s.cache == nil {
		return 0, apperrors.NewUnavailableError("recent search store not configured", nil)
	}
	cleared, err := s.cache.ClearRecent(ctx, userID)
	if err != nil {
		return 0, apperrors.NewUnavailableError("failed to clear recent searches", err)
	}
	return cleared, nil
}

// History returns one page of the user's durable search history
func (s *RecentSearchService) History(ctx context.Context, userID string, page, limit int) (*entities.SearchHistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > entities.MaxLimit {
		limit = entities.DefaultLimit
	}

	entries, total, err := s.history.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	return &entities.SearchHistoryPage{
		Entries: entries,
		Pagination: entities.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
