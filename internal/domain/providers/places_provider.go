package providers

import (
	"context"

	"github.com/bizlens/backend/internal/domain/entities"
)

// Place is a single hit from the external places provider. Only the fields
// the search engine consumes are mapped; missing optionals stay zero-valued.
type Place struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Rating           *float64
	UserRatingsTotal int
	Location         *entities.GeoPoint
	Types            []string
	PhotoRefs        []string
}

// PlacesProvider defines the interface to the external maps/places source
type PlacesProvider interface {
	// TextSearch issues one text-search request. near and radiusMeters are
	// optional (near may be nil). Provider errors are returned typed so the
	// orchestrator can degrade to local-only results.
	TextSearch(ctx context.Context, query string, near *entities.GeoPoint, radiusMeters float64) ([]*Place, error)
}
