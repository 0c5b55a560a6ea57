package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizlens/backend/internal/domain/entities"
)

func resultWithRating(id string, rating *float64, ratingCount int) *entities.BusinessResult {
	return &entities.BusinessResult{
		ID:          id,
		Name:        "Business " + id,
		Rating:      rating,
		RatingCount: ratingCount,
		Source:      entities.SourceLocal,
	}
}

func floatPtr(v float64) *float64 { return &v }

func pageQuery(sortBy entities.SortField, order entities.SortOrder, page, limit int) entities.SearchQuery {
	q := entities.SearchQuery{Text: "x", SortBy: sortBy, SortOrder: order, Page: page, Limit: limit}
	q.ApplyDefaults()
	return q
}

func TestRankPage_SortsByRatingDescWithNullsLast(t *testing.T) {
	svc := NewRankingService()

	results := []*entities.BusinessResult{
		resultWithRating("a", nil, 0),
		resultWithRating("b", floatPtr(3.2), 5),
		resultWithRating("c", floatPtr(4.8), 12),
	}

	page, _ := svc.RankPage(results, pageQuery(entities.SortByRating, entities.SortDesc, 1, 20))

	assert.Equal(t, []string{"c", "b", "a"}, ids(page))
}

func TestRankPage_NullRatingsLastEvenAscending(t *testing.T) {
	svc := NewRankingService()

	results := []*entities.BusinessResult{
		resultWithRating("a", nil, 0),
		resultWithRating("b", floatPtr(4.8), 12),
		resultWithRating("c", floatPtr(3.2), 5),
	}

	page, _ := svc.RankPage(results, pageQuery(entities.SortByRating, entities.SortAsc, 1, 20))

	assert.Equal(t, []string{"c", "b", "a"}, ids(page))
}

func TestRankPage_SortsByReviews(t *testing.T) {
	svc := NewRankingService()

	results := []*entities.BusinessResult{
		resultWithRating("a", floatPtr(4.0), 3),
		resultWithRating("b", floatPtr(4.0), 90),
	}

	page, _ := svc.RankPage(results, pageQuery(entities.SortByReviews, entities.SortDesc, 1, 20))
	assert.Equal(t, []string{"b", "a"}, ids(page))
}

func TestRankPage_SortsByNameCaseInsensitive(t *testing.T) {
	svc := NewRankingService()

	results := []*entities.BusinessResult{
		{ID: "1", Name: "zeta cafe"},
		{ID: "2", Name: "Alpha Bistro"},
	}

	page, _ := svc.RankPage(results, pageQuery(entities.SortByName, entities.SortAsc, 1, 20))
	assert.Equal(t, "Alpha Bistro", page[0].Name)
}

func TestRankPage_SortsByDistanceWithLocation(t *testing.T) {
	svc := NewRankingService()

	near := resultWithRating("near", floatPtr(3.0), 1)
	near.DistanceMeters = floatPtr(120)
	far := resultWithRating("far", floatPtr(5.0), 1)
	far.DistanceMeters = floatPtr(4000)
	unknown := resultWithRating("unknown", floatPtr(4.0), 1)

	q := pageQuery(entities.SortByDistance, entities.SortAsc, 1, 20)
	q.Location = &entities.GeoPoint{Latitude: 6.5, Longitude: 3.4}

	page, _ := svc.RankPage([]*entities.BusinessResult{far, unknown, near}, q)

	assert.Equal(t, []string{"near", "far", "unknown"}, ids(page))
}

func TestRankPage_DistanceWithoutLocationFallsBackToRating(t *testing.T) {
	svc := NewRankingService()

	low := resultWithRating("low", floatPtr(2.1), 1)
	high := resultWithRating("high", floatPtr(4.9), 1)

	// No location on the query: distance sort silently becomes rating sort.
	page, _ := svc.RankPage([]*entities.BusinessResult{low, high}, pageQuery(entities.SortByDistance, entities.SortDesc, 1, 20))

	assert.Equal(t, []string{"high", "low"}, ids(page))
}

func TestRankPage_TiesBreakOnID(t *testing.T) {
	svc := NewRankingService()

	results := []*entities.BusinessResult{
		resultWithRating("b", floatPtr(4.0), 10),
		resultWithRating("a", floatPtr(4.0), 10),
	}

	page, _ := svc.RankPage(results, pageQuery(entities.SortByRating, entities.SortDesc, 1, 20))
	assert.Equal(t, []string{"a", "b"}, ids(page))
}

func TestRankPage_PaginationMetadata(t *testing.T) {
	svc := NewRankingService()

	results := make([]*entities.BusinessResult, 45)
	for i := range results {
		results[i] = resultWithRating(fmt.Sprintf("%03d", i), floatPtr(4.0), i)
	}

	page, pagination := svc.RankPage(results, pageQuery(entities.SortByRating, entities.SortDesc, 3, 20))

	assert.Len(t, page, 5)
	assert.Equal(t, 45, pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
}

func TestRankPage_OutOfRangePageIsEmpty(t *testing.T) {
	svc := NewRankingService()

	results := []*entities.BusinessResult{resultWithRating("a", floatPtr(4.0), 1)}
	page, pagination := svc.RankPage(results, pageQuery(entities.SortByRating, entities.SortDesc, 9, 20))

	assert.Empty(t, page)
	assert.Equal(t, 1, pagination.Total)
}

func TestRankPage_EmptySetHasOnePage(t *testing.T) {
	svc := NewRankingService()

	page, pagination := svc.RankPage(nil, pageQuery(entities.SortByRating, entities.SortDesc, 1, 20))

	assert.Empty(t, page)
	assert.Equal(t, 0, pagination.Total)
	assert.Equal(t, 1, pagination.TotalPages)
}

func TestRankPage_ConcatenatedPagesReproduceFullSet(t *testing.T) {
	svc := NewRankingService()

	results := make([]*entities.BusinessResult, 45)
	for i := range results {
		results[i] = resultWithRating(fmt.Sprintf("%03d", i), floatPtr(float64(i%7)), i)
	}

	var concatenated []string
	for p := 1; p <= 3; p++ {
		page, pagination := svc.RankPage(results, pageQuery(entities.SortByRating, entities.SortDesc, p, 20))
		assert.Equal(t, 3, pagination.TotalPages)
		concatenated = append(concatenated, ids(page)...)
	}

	full, _ := svc.RankPage(results, pageQuery(entities.SortByRating, entities.SortDesc, 1, 100))
	assert.Equal(t, ids(full), concatenated)

	// Every input appears exactly once across the pages.
	seen := map[string]int{}
	for _, id := range concatenated {
		seen[id]++
	}
	assert.Len(t, seen, 45)
}

func ids(results []*entities.BusinessResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}
