package repositories

import (
	"context"

	"github.com/bizlens/backend/internal/domain/entities"
)

// CatalogReader defines the read-only interface to the internal business
// catalog. Search never mutates the catalog.
type CatalogReader interface {
	// Search performs a case-insensitive text match against business name,
	// handle and description, applies category (ANY-of), rating-floor and
	// radius filters, and returns unordered results with source = local.
	// A storage failure is returned as a retryable unavailable error and
	// never partially applies filters.
	Search(ctx context.Context, query entities.SearchQuery) ([]*entities.BusinessResult, error)
}
