package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/bizlens/backend/internal/application/services"
	"github.com/bizlens/backend/internal/domain/entities"
	apperrors "github.com/bizlens/backend/pkg/errors"
)

// SearchHandler handles search-related HTTP requests. Authentication happens
// upstream; the caller's identity arrives on the X-User-ID header.
type SearchHandler struct {
	searchService *services.SearchService
	recentService *services.RecentSearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *services.SearchService, recentService *services.RecentSearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		recentService: recentService,
	}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user identifier is required")
		return
	}

	query, err := parseSearchQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.searchService.Search(r.Context(), userID, *query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

// RecentSearches handles GET /api/search/recent
func (h *SearchHandler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user identifier is required")
		return
	}

	recent, err := h.recentService.Recent(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, recent)
}

// ClearRecentSearches handles DELETE /api/search/recent
func (h *SearchHandler) ClearRecentSearches(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user identifier is required")
		return
	}

	cleared, err := h.recentService.Clear(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"clearedCount": cleared})
}

// SearchHistory handles GET /api/search/history
func (h *SearchHandler) SearchHistory(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user identifier is required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.recentService.History(r.Context(), userID, page, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

func requestUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-ID"))
}

// parseSearchQuery maps URL query parameters onto a SearchQuery. Shape
// validation beyond basic type parsing happens in SearchQuery.Validate.
func parseSearchQuery(r *http.Request) (*entities.SearchQuery, error) {
	params := r.URL.Query()

	query := &entities.SearchQuery{
		Text:      strings.TrimSpace(params.Get("q")),
		SortBy:    entities.SortField(params.Get("sort_by")),
		SortOrder: entities.SortOrder(params.Get("sort_order")),
	}

	if raw := params.Get("categories"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				query.CategoryIDs = append(query.CategoryIDs, id)
			}
		}
	}

	if raw := params.Get("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid rating parameter")
		}
		query.MinRating = &rating
	}

	if raw := params.Get("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid radius parameter")
		}
		query.RadiusMeters = radius
	}

	latRaw := params.Get("lat")
	lonRaw := params.Get("lon")
	if latRaw != "" || lonRaw != "" {
		if latRaw == "" || lonRaw == "" {
			return nil, apperrors.NewValidationError("lat and lon must be supplied together")
		}
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid lat parameter")
		}
		lon, err := strconv.ParseFloat(lonRaw, 64)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid lon parameter")
		}
		query.Location = &entities.GeoPoint{Latitude: lat, Longitude: lon}
	}

	if raw := params.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid page parameter")
		}
		query.Page = page
	}

	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid limit parameter")
		}
		query.Limit = limit
	}

	return query, nil
}

// respondWithAppError translates the error taxonomy to HTTP statuses
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
