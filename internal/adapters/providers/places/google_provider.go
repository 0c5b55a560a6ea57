package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bizlens/backend/internal/domain/entities"
	"github.com/bizlens/backend/internal/domain/providers"
	apperrors "github.com/bizlens/backend/pkg/errors"
)

const (
	googlePlacesTextURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	defaultHTTPTimeout  = 8 * time.Second
)

// GoogleProvider implements the PlacesProvider using the Google Places
// Text Search API.
type GoogleProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewGoogleProvider creates a new Google places provider.
func NewGoogleProvider(apiKey string) providers.PlacesProvider {
	return NewGoogleProviderWithOptions(apiKey, googlePlacesTextURL, nil)
}

// NewGoogleProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleProviderWithOptions(apiKey, baseURL string, httpClient *http.Client) providers.PlacesProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googlePlacesTextURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// TextSearch issues one text-search request against the provider. Missing
// optional fields on a place (rating, ratings total, photos) map to zero
// values rather than failing the result.
func (g *GoogleProvider) TextSearch(ctx context.Context, query string, near *entities.GeoPoint, radiusMeters float64) ([]*providers.Place, error) {
	if g.apiKey == "" {
		return nil, apperrors.NewExternalError("places api key is required", nil)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", g.apiKey)
	if near != nil {
		params.Set("location", fmt.Sprintf("%f,%f", near.Latitude, near.Longitude))
		if radiusMeters > 0 {
			params.Set("radius", fmt.Sprintf("%.0f", radiusMeters))
		}
	}

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to build places request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("places request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(fmt.Sprintf("places request returned status %d", resp.StatusCode), nil)
	}

	var payload textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode places response", err)
	}

	if payload.Status == "ZERO_RESULTS" {
		return []*providers.Place{}, nil
	}
	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return nil, apperrors.NewExternalError(fmt.Sprintf("places search failed: %s - %s", payload.Status, payload.ErrorMessage), nil)
		}
		return nil, apperrors.NewExternalError(fmt.Sprintf("places search failed: %s", payload.Status), nil)
	}

	places := make([]*providers.Place, 0, len(payload.Results))
	for _, result := range payload.Results {
		places = append(places, mapPlace(result))
	}
	return places, nil
}

func mapPlace(result textSearchResult) *providers.Place {
	place := &providers.Place{
		PlaceID:          result.PlaceID,
		Name:             result.Name,
		FormattedAddress: result.FormattedAddress,
		Rating:           result.Rating,
		Types:            result.Types,
	}
	if result.UserRatingsTotal != nil {
		place.UserRatingsTotal = *result.UserRatingsTotal
	}
	if result.Geometry != nil {
		place.Location = &entities.GeoPoint{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		}
	}
	for _, photo := range result.Photos {
		if photo.PhotoReference != "" {
			place.PhotoRefs = append(place.PhotoRefs, photo.PhotoReference)
		}
	}
	return place
}

type textSearchResponse struct {
	Status       string             `json:"status"`
	ErrorMessage string             `json:"error_message,omitempty"`
	Results      []textSearchResult `json:"results"`
}

type textSearchResult struct {
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name"`
	FormattedAddress string          `json:"formatted_address"`
	Rating           *float64        `json:"rating,omitempty"`
	UserRatingsTotal *int            `json:"user_ratings_total,omitempty"`
	Geometry         *placeGeometry  `json:"geometry,omitempty"`
	Types            []string        `json:"types,omitempty"`
	Photos           []placePhotoRef `json:"photos,omitempty"`
}

type placeGeometry struct {
	Location placeLocation `json:"location"`
}

type placeLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type placePhotoRef struct {
	PhotoReference string `json:"photo_reference"`
}
