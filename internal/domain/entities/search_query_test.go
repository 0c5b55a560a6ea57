package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/bizlens/backend/pkg/errors"
)

func validQuery() SearchQuery {
	q := SearchQuery{Text: "pizza"}
	q.ApplyDefaults()
	return q
}

func TestApplyDefaults(t *testing.T) {
	q := SearchQuery{Text: "pizza"}
	q.ApplyDefaults()

	assert.Equal(t, float64(DefaultRadius), q.RadiusMeters)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, SortByRating, q.SortBy)
	assert.Equal(t, SortDesc, q.SortOrder)
}

func TestValidate_AcceptsValidQuery(t *testing.T) {
	q := validQuery()
	assert.NoError(t, q.Validate())
}

func TestValidate_TextBoundCountsRunesNotBytes(t *testing.T) {
	// 200 multibyte characters are 400 bytes but still within the bound.
	q := validQuery()
	q.Text = strings.Repeat("é", 200)
	assert.NoError(t, q.Validate())
}

func TestValidate_RejectsInvalidQueries(t *testing.T) {
	rating0 := 0.5
	rating6 := 5.5

	tests := []struct {
		name   string
		mutate func(*SearchQuery)
	}{
		{"empty text", func(q *SearchQuery) { q.Text = "" }},
		{"blank text", func(q *SearchQuery) { q.Text = "   " }},
		{"text too long", func(q *SearchQuery) { q.Text = strings.Repeat("a", MaxQueryLength+1) }},
		{"multibyte text too long", func(q *SearchQuery) { q.Text = strings.Repeat("é", MaxQueryLength+1) }},
		{"too many categories", func(q *SearchQuery) { q.CategoryIDs = make([]string, MaxCategoryFilters+1) }},
		{"rating below floor", func(q *SearchQuery) { q.MinRating = &rating0 }},
		{"rating above ceiling", func(q *SearchQuery) { q.MinRating = &rating6 }},
		{"radius too small", func(q *SearchQuery) { q.RadiusMeters = 50 }},
		{"radius too large", func(q *SearchQuery) { q.RadiusMeters = 60000 }},
		{"latitude out of range", func(q *SearchQuery) { q.Location = &GeoPoint{Latitude: 91, Longitude: 0} }},
		{"longitude out of range", func(q *SearchQuery) { q.Location = &GeoPoint{Latitude: 0, Longitude: 181} }},
		{"page below one", func(q *SearchQuery) { q.Page = -1 }},
		{"limit above cap", func(q *SearchQuery) { q.Limit = MaxLimit + 1 }},
		{"unknown sort field", func(q *SearchQuery) { q.SortBy = "price" }},
		{"unknown sort order", func(q *SearchQuery) { q.SortOrder = "sideways" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuery()
			tt.mutate(&q)
			err := q.Validate()
			assert.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestEffectiveSort_DistanceFallsBackWithoutLocation(t *testing.T) {
	q := validQuery()
	q.SortBy = SortByDistance
	assert.Equal(t, SortByRating, q.EffectiveSort())

	q.Location = &GeoPoint{Latitude: 6.5, Longitude: 3.4}
	assert.Equal(t, SortByDistance, q.EffectiveSort())
}

func TestRatingValue(t *testing.T) {
	assert.Nil(t, RatingValue(0, 0))

	rating := RatingValue(9.4, 2)
	if assert.NotNil(t, rating) {
		assert.InDelta(t, 4.7, *rating, 0.0001)
	}
}
