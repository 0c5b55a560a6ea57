package routes

import (
	"net/http"

	"github.com/bizlens/backend/internal/api/handlers"
	"github.com/bizlens/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler *handlers.SearchHandler
	healthHandler *handlers.HealthHandler
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	healthHandler *handlers.HealthHandler,
) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		searchHandler: searchHandler,
		healthHandler: healthHandler,
	}
}

// Setup registers all routes
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)
	r.mux.HandleFunc("GET /api/search/recent", r.searchHandler.RecentSearches)
	r.mux.HandleFunc("DELETE /api/search/recent", r.searchHandler.ClearRecentSearches)
	r.mux.HandleFunc("GET /api/search/history", r.searchHandler.SearchHistory)

	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	return middleware.TracingMiddleware(middleware.LoggingMiddleware(r.mux))
}
