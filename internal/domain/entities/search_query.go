package entities

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/bizlens/backend/pkg/errors"
)

// SortField is the key used to order search results
type SortField string

const (
	SortByRating   SortField = "rating"
	SortByReviews  SortField = "reviews"
	SortByName     SortField = "name"
	SortByDistance SortField = "distance"
)

// SortOrder is the direction results are ordered in
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Query shape bounds
const (
	MaxQueryLength     = 255
	MaxCategoryFilters = 10
	MinRadiusMeters    = 100
	MaxRadiusMeters    = 50000
	DefaultRadius      = 5000
	DefaultLimit       = 20
	MaxLimit           = 100
)

// GeoPoint represents geographical coordinates
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchQuery is the immutable, per-request shape of a business search.
// Construct it, call ApplyDefaults then Validate, and discard it after
// the call.
type SearchQuery struct {
	Text         string    `json:"query"`
	CategoryIDs  []string  `json:"category_ids,omitempty"`
	MinRating    *float64  `json:"rating,omitempty"`
	RadiusMeters float64   `json:"radius_meters,omitempty"`
	Location     *GeoPoint `json:"location,omitempty"`
	Page         int       `json:"page"`
	Limit        int       `json:"limit"`
	SortBy       SortField `json:"sort_by"`
	SortOrder    SortOrder `json:"sort_order"`
}

// ApplyDefaults fills in the documented defaults for omitted fields
func (q *SearchQuery) ApplyDefaults() {
	if q.RadiusMeters == 0 {
		q.RadiusMeters = DefaultRadius
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.SortBy == "" {
		q.SortBy = SortByRating
	}
	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}
}

// Validate checks the query shape invariants. It returns a validation
// AppError on the first violation found.
func (q *SearchQuery) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return apperrors.NewValidationError("query text is required")
	}
	if utf8.RuneCountInString(q.Text) > MaxQueryLength {
		return apperrors.NewValidationError(fmt.Sprintf("query text must be at most %d characters", MaxQueryLength))
	}
	if len(q.CategoryIDs) > MaxCategoryFilters {
		return apperrors.NewValidationError(fmt.Sprintf("at most %d category filters are allowed", MaxCategoryFilters))
	}
	if q.MinRating != nil && (*q.MinRating < 1.0 || *q.MinRating > 5.0) {
		return apperrors.NewValidationError("rating filter must be between 1.0 and 5.0")
	}
	if q.RadiusMeters < MinRadiusMeters || q.RadiusMeters > MaxRadiusMeters {
		return apperrors.NewValidationError(fmt.Sprintf("radius must be between %d and %d meters", MinRadiusMeters, MaxRadiusMeters))
	}
	if q.Location != nil {
		if q.Location.Latitude < -90 || q.Location.Latitude > 90 {
			return apperrors.NewValidationError("latitude must be between -90 and 90")
		}
		if q.Location.Longitude < -180 || q.Location.Longitude > 180 {
			return apperrors.NewValidationError("longitude must be between -180 and 180")
		}
	}
	if q.Page < 1 {
		return apperrors.NewValidationError("page must be at least 1")
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		return apperrors.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	switch q.SortBy {
	case SortByRating, SortByReviews, SortByName, SortByDistance:
	default:
		return apperrors.NewValidationError("sort_by must be one of rating, reviews, name, distance")
	}
	switch q.SortOrder {
	case SortAsc, SortDesc:
	default:
		return apperrors.NewValidationError("sort_order must be asc or desc")
	}
	return nil
}

// EffectiveSort returns the sort field actually applied: distance sort
// silently falls back to rating when no location was supplied.
func (q *SearchQuery) EffectiveSort() SortField {
	if q.SortBy == SortByDistance && q.Location == nil {
		return SortByRating
	}
	return q.SortBy
}
