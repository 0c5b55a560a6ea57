package services

import (
	"sort"
	"strings"

	"github.com/bizlens/backend/internal/domain/entities"
)

// RankingService sorts a deduplicated result set by the requested key and
// slices out the requested page.
type RankingService struct{}

// NewRankingService creates a new ranking service
func NewRankingService() *RankingService {
	return &RankingService{}
}

// RankPage sorts results by the query's effective sort (distance falls back
// to rating when no location was supplied) and returns the page window plus
// pagination metadata computed on the full deduplicated set. Ties break on
// id so repeated calls paginate deterministically. Out-of-range pages return
// an empty slice.
func (s *RankingService) RankPage(results []*entities.BusinessResult, query entities.SearchQuery) ([]*entities.BusinessResult, entities.Pagination) {
	sorted := make([]*entities.BusinessResult, len(results))
	copy(sorted, results)

	field := query.EffectiveSort()
	ascending := query.SortOrder == entities.SortAsc

	sort.SliceStable(sorted, func(i, j int) bool {
		if less, tie := compareByField(sorted[i], sorted[j], field, ascending); !tie {
			return less
		}
		return sorted[i].ID < sorted[j].ID
	})

	total := len(sorted)
	totalPages := (total + query.Limit - 1) / query.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (query.Page - 1) * query.Limit
	end := start + query.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return sorted[start:end], entities.Pagination{
		Page:       query.Page,
		Limit:      query.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// compareByField orders a before b for the given field and direction. Null
// ratings and null distances sort last regardless of direction. tie reports
// that the secondary key should decide.
func compareByField(a, b *entities.BusinessResult, field entities.SortField, ascending bool) (less, tie bool) {
	switch field {
	case entities.SortByRating:
		return compareNullableFloat(a.Rating, b.Rating, ascending)
	case entities.SortByReviews:
		if a.RatingCount == b.RatingCount {
			return false, true
		}
		if ascending {
			return a.RatingCount < b.RatingCount, false
		}
		return a.RatingCount > b.RatingCount, false
	case entities.SortByName:
		na := strings.ToLower(a.Name)
		nb := strings.ToLower(b.Name)
		if na == nb {
			return false, true
		}
		if ascending {
			return na < nb, false
		}
		return na > nb, false
	case entities.SortByDistance:
		return compareNullableFloat(a.DistanceMeters, b.DistanceMeters, ascending)
	}
	return false, true
}

func compareNullableFloat(a, b *float64, ascending bool) (less, tie bool) {
	switch {
	case a == nil && b == nil:
		return false, true
	case a == nil:
		return false, false
	case b == nil:
		return true, false
	case *a == *b:
		return false, true
	}
	if ascending {
		return *a < *b, false
	}
	return *a > *b, false
}
