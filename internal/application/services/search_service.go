package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bizlens/backend/internal/domain/entities"
	"github.com/bizlens/backend/internal/domain/providers"
	"github.com/bizlens/backend/internal/domain/repositories"
	"github.com/bizlens/backend/internal/infrastructure/observability"
	"github.com/bizlens/backend/pkg/geo"
)

const recordWriteTimeout = 5 * time.Second

// SearchService orchestrates a business search: it validates the query,
// fans out to the local catalog and the external places provider, merges and
// ranks the results, and records history and cache entries off the response
// path.
type SearchService struct {
	catalog repositories.CatalogReader
	places  providers.PlacesProvider
	cache   providers.CacheProvider
	history repositories.SearchHistoryRepository
	dedup   *DedupService
	ranker  *RankingService

	externalTimeout time.Duration
	resultCacheTTL  time.Duration
	recentCap       int
}

// SearchServiceOptions holds the orchestrator's tunables
type SearchServiceOptions struct {
	ExternalTimeout time.Duration
	ResultCacheTTL  time.Duration
	RecentSearchCap int
}

// NewSearchService creates a new search orchestrator. cache and history may
// be nil; both are best-effort on the search path.
func NewSearchService(
	catalog repositories.CatalogReader,
	placesProvider providers.PlacesProvider,
	cache providers.CacheProvider,
	history repositories.SearchHistoryRepository,
	opts SearchServiceOptions,
) *SearchService {
	if opts.ExternalTimeout <= 0 {
		opts.ExternalTimeout = 4 * time.Second
	}
	if opts.ResultCacheTTL <= 0 {
		opts.ResultCacheTTL = 5 * time.Minute
	}
	if opts.RecentSearchCap <= 0 {
		opts.RecentSearchCap = 10
	}
	return &SearchService{
		catalog:         catalog,
		places:          placesProvider,
		cache:           cache,
		history:         history,
		dedup:           NewDedupService(),
		ranker:          NewRankingService(),
		externalTimeout: opts.ExternalTimeout,
		resultCacheTTL:  opts.ResultCacheTTL,
		recentCap:       opts.RecentSearchCap,
	}
}

// Search runs one search request for the given user. The local catalog is
// required; the external provider degrades to an empty result set on error
// or timeout, and cache/history writes never block or fail the response.
func (s *SearchService) Search(ctx context.Context, userID string, query entities.SearchQuery) (*entities.SearchResponse, error) {
	query.ApplyDefaults()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	logger := observability.LoggerFromContext(ctx)
	cacheKey := resultCacheKey(query)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var response entities.SearchResponse
			if err := json.Unmarshal(cached, &response); err == nil {
				return &response, nil
			}
		} else if !errors.Is(err, providers.ErrCacheMiss) {
			logger.Warn().Err(err).Msg("result cache read failed, continuing without cache")
		}
	}

	type catalogOut struct {
		results []*entities.BusinessResult
		err     error
	}
	localCh := make(chan catalogOut, 1)
	externalCh := make(chan []*entities.BusinessResult, 1)
	degradedCh := make(chan bool, 1)

	go func() {
		results, err := s.catalog.Search(ctx, query)
		localCh <- catalogOut{results: results, err: err}
	}()

	go func() {
		extCtx, cancel := context.WithTimeout(ctx, s.externalTimeout)
		defer cancel()

		found, err := s.places.TextSearch(extCtx, query.Text, query.Location, query.RadiusMeters)
		if err != nil {
			// Partial-result policy: the search proceeds on local results
			// alone when the external source is down or slow.
			logger.Warn().Err(err).Msg("external places search degraded to empty result set")
			externalCh <- nil
			degradedCh <- true
			return
		}
		externalCh <- s.externalResults(found, query.Location)
		degradedCh <- false
	}()

	local := <-localCh
	external := <-externalCh
	degraded := <-degradedCh

	if local.err != nil {
		// No meaningful search without the local source.
		return nil, local.err
	}

	merged, counts := s.dedup.Merge(local.results, external)
	page, pagination := s.ranker.RankPage(merged, query)

	response := &entities.SearchResponse{
		Businesses: page,
		Pagination: pagination,
		Sources:    counts,
		Query:      query.Text,
		Filters: entities.SearchFilters{
			CategoryIDs:  query.CategoryIDs,
			MinRating:    query.MinRating,
			RadiusMeters: query.RadiusMeters,
			Location:     query.Location,
		},
	}

	// History, recent-search and result-cache writes happen off the response
	// path with a fresh context since the request context ends with the call.
	go s.recordSearch(userID, query, cacheKey, response, degraded)

	return response, nil
}

func (s *SearchService) recordSearch(userID string, query entities.SearchQuery, cacheKey string, response *entities.SearchResponse, degraded bool) {
	ctx, cancel := context.WithTimeout(context.Background(), recordWriteTimeout)
	defer cancel()

	logger := observability.GetLogger()

	if s.history != nil {
		status := entities.HistoryStatusCompleted
		if degraded {
			status = entities.HistoryStatusDegraded
		}
		entry := &entities.SearchHistoryEntry{
			UserID:     userID,
			SearchText: query.Text,
			Status:     status,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.history.Append(ctx, entry); err != nil {
			logger.Warn().Err(err).Msg("failed to append search history")
		}
	}

	if s.cache != nil {
		if err := s.cache.AddRecent(ctx, userID, query.Text, s.recentCap); err != nil {
			logger.Warn().Err(err).Msg("failed to record recent search")
		}
		if data, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.resultCacheTTL); err != nil {
				logger.Warn().Err(err).Msg("failed to cache search results")
			}
		}
	}
}

// externalResults maps provider places into results tagged external, with
// ids carrying the provider tag so provenance survives later operations.
func (s *SearchService) externalResults(found []*providers.Place, origin *entities.GeoPoint) []*entities.BusinessResult {
	results := make([]*entities.BusinessResult, 0, len(found))
	for _, place := range found {
		result := &entities.BusinessResult{
			ID:          entities.ExternalIDPrefix + place.PlaceID,
			Name:        place.Name,
			Rating:      place.Rating,
			RatingCount: place.UserRatingsTotal,
			Source:      entities.SourceExternal,
			PhotoRefs:   place.PhotoRefs,
		}
		if place.Location != nil {
			result.Locations = []entities.BusinessLocation{{
				Address:   place.FormattedAddress,
				Latitude:  place.Location.Latitude,
				Longitude: place.Location.Longitude,
			}}
			if origin != nil {
				d := geo.DistanceMeters(origin.Latitude, origin.Longitude, place.Location.Latitude, place.Location.Longitude)
				result.DistanceMeters = &d
			}
		}
		results = append(results, result)
	}
	return results
}

// resultCacheKey builds a normalized cache key from the query, its filters
// and a coarse location bucket (3 decimal places, roughly 110 m).
func resultCacheKey(query entities.SearchQuery) string {
	categories := make([]string, len(query.CategoryIDs))
	copy(categories, query.CategoryIDs)
	sort.Strings(categories)

	rating := ""
	if query.MinRating != nil {
		rating = fmt.Sprintf("%.1f", *query.MinRating)
	}
	location := ""
	if query.Location != nil {
		location = fmt.Sprintf("%.3f,%.3f", query.Location.Latitude, query.Location.Longitude)
	}

	raw := fmt.Sprintf("%s|%s|%s|%.0f|%s|%d|%d|%s|%s",
		strings.ToLower(strings.TrimSpace(query.Text)),
		strings.Join(categories, ","),
		rating,
		query.RadiusMeters,
		location,
		query.Page,
		query.Limit,
		query.EffectiveSort(),
		query.SortOrder,
	)

	sum := sha256.Sum256([]byte(raw))
	return "search:results:" + hex.EncodeToString(sum[:])
}
