package places

import (
	"context"
	"strings"

	"github.com/bizlens/backend/internal/domain/entities"
	"github.com/bizlens/backend/internal/domain/providers"
)

// MockProvider is a deterministic places provider for development and for
// running the API without a provider API key.
type MockProvider struct{}

// NewMockProvider creates a new mock places provider
func NewMockProvider() providers.PlacesProvider {
	return &MockProvider{}
}

// TextSearch returns one synthetic place derived from the query
func (m *MockProvider) TextSearch(ctx context.Context, query string, near *entities.GeoPoint, radiusMeters float64) ([]*providers.Place, error) {
	rating := 4.2
	location := &entities.GeoPoint{Latitude: 6.5244, Longitude: 3.3792}
	if near != nil {
		location = &entities.GeoPoint{Latitude: near.Latitude, Longitude: near.Longitude}
	}

	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(query)), " ", "-")
	return []*providers.Place{
		{
			PlaceID:          "mock-" + slug,
			Name:             strings.TrimSpace(query),
			FormattedAddress: "1 Mock Street",
			Rating:           &rating,
			UserRatingsTotal: 12,
			Location:         location,
			Types:            []string{"establishment"},
		},
	}, nil
}
