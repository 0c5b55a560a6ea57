package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizlens/backend/internal/domain/entities"
	apperrors "github.com/bizlens/backend/pkg/errors"
)

func TestRecent_ReturnsMostRecentFirst(t *testing.T) {
	cacheStore := newFakeCache()
	ctx := context.Background()

	require.NoError(t, cacheStore.AddRecent(ctx, "u1", "pizza", 10))
	require.NoError(t, cacheStore.AddRecent(ctx, "u1", "sushi", 10))

	svc := NewRecentSearchService(cacheStore, &fakeHistory{})
	recent, err := svc.Recent(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, []string{"sushi", "pizza"}, recent.Searches)
	assert.Equal(t, 2, recent.Count)
}

func TestRecent_RepeatedQueryIsRescoredNotDuplicated(t *testing.T) {
	cacheStore := newFakeCache()
	ctx := context.Background()

	require.NoError(t, cacheStore.AddRecent(ctx, "u1", "pizza", 10))
	require.NoError(t, cacheStore.AddRecent(ctx, "u1", "sushi", 10))
	require.NoError(t, cacheStore.AddRecent(ctx, "u1", "pizza", 10))

	svc := NewRecentSearchService(cacheStore, &fakeHistory{})
	recent, err := svc.Recent(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, []string{"pizza", "sushi"}, recent.Searches)
}

func TestRecent_CapacityEvictsOldest(t *testing.T) {
	cacheStore := newFakeCache()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, cacheStore.AddRecent(ctx, "u1", fmt.Sprintf("query-%02d", i), 10))
	}

	svc := NewRecentSearchService(cacheStore, &fakeHistory{})
	recent, err := svc.Recent(ctx, "u1")

	require.NoError(t, err)
	assert.Len(t, recent.Searches, 10)
	assert.Equal(t, "query-11", recent.Searches[0])
	assert.NotContains(t, recent.Searches, "query-00")
	assert.NotContains(t, recent.Searches, "query-01")
}

func TestRecent_StoreFailureIsRetryableError(t *testing.T) {
	cacheStore := newFakeCache()
	cacheStore.fail = true

	svc := NewRecentSearchService(cacheStore, &fakeHistory{})
	_, err := svc.Recent(context.Background(), "u1")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}

func TestClear_ReturnsClearedCount(t *testing.T) {
	cacheStore := newFakeCache()
	ctx := context.Background()

	require.NoError(t, cacheStore.AddRecent(ctx, "u1", "pizza", 10))
	require.NoError(t, cacheStore.AddRecent(ctx, "u1", "sushi", 10))

	svc := NewRecentSearchService(cacheStore, &fakeHistory{})

	cleared, err := svc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	recent, err := svc.Recent(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, recent.Searches)
}

func TestHistory_PaginatesDurableEntries(t *testing.T) {
	history := &fakeHistory{}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, history.Append(ctx, &entities.SearchHistoryEntry{
			ID:         fmt.Sprintf("h%d", i),
			UserID:     "u1",
			SearchText: fmt.Sprintf("query-%d", i),
			Status:     entities.HistoryStatusCompleted,
			CreatedAt:  time.Now(),
		}))
	}

	svc := NewRecentSearchService(newFakeCache(), history)

	page, err := svc.History(ctx, "u1", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Entries, 2)
	assert.Equal(t, 5, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
}

func TestHistory_NormalizesBadPageParams(t *testing.T) {
	svc := NewRecentSearchService(newFakeCache(), &fakeHistory{})

	page, err := svc.History(context.Background(), "u1", 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, entities.DefaultLimit, page.Pagination.Limit)
}
