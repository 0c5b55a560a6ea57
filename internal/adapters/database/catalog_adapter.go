package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/bizlens/backend/internal/domain/entities"
	"github.com/bizlens/backend/internal/domain/repositories"
	"github.com/bizlens/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/bizlens/backend/pkg/errors"
	"github.com/bizlens/backend/pkg/geo"
)

// CatalogAdapter implements the CatalogReader interface against the
// relational business catalog. All access is read-only.
type CatalogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) repositories.CatalogReader {
	return &CatalogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Search queries the catalog with the text, category, rating and radius
// filters of the query. Text matching is a case-insensitive substring match
// on name, username and description. Category filtering uses ANY-of
// semantics across the requested ids. The radius filter runs in-process so
// the nearest matching location's distance can be attached to each hit.
func (a *CatalogAdapter) Search(ctx context.Context, query entities.SearchQuery) ([]*entities.BusinessResult, error) {
	pattern := likePattern(query.Text)

	ds := a.db.Select(
		"id", "name", "username", "logo_url", "about", "rating_sum", "rating_count",
	).From("businesses").
		Where(goqu.Ex{"is_active": true}).
		Where(goqu.Or(
			goqu.I("name").ILike(pattern),
			goqu.I("username").ILike(pattern),
			goqu.I("about").ILike(pattern),
		))

	if len(query.CategoryIDs) > 0 {
		ds = ds.Where(goqu.L(
			"id IN (SELECT business_id FROM business_categories WHERE category_id = ANY(?))",
			pq.Array(query.CategoryIDs),
		))
	}

	if query.MinRating != nil {
		ds = ds.Where(goqu.L("rating_count > 0 AND rating_sum / rating_count >= ?", *query.MinRating))
	}

	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build catalog query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("catalog store unreachable", err)
	}
	defer rows.Close()

	results := []*entities.BusinessResult{}
	ids := []string{}
	for rows.Next() {
		var (
			result                  entities.BusinessResult
			username, logoURL, about sql.NullString
			ratingSum               float64
		)
		if err := rows.Scan(
			&result.ID,
			&result.Name,
			&username,
			&logoURL,
			&about,
			&ratingSum,
			&result.RatingCount,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan business", err)
		}

		result.Username = username.String
		result.LogoURL = logoURL.String
		result.About = about.String
		result.Rating = entities.RatingValue(ratingSum, result.RatingCount)
		result.Source = entities.SourceLocal

		results = append(results, &result)
		ids = append(ids, result.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating businesses", err)
	}

	if len(results) == 0 {
		return results, nil
	}

	categories, err := a.loadCategories(ctx, ids)
	if err != nil {
		return nil, err
	}
	locations, err := a.loadLocations(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		result.Categories = categories[result.ID]
		result.Locations = locations[result.ID]
	}

	if query.Location != nil {
		results = filterByRadius(results, *query.Location, query.RadiusMeters)
	}

	return results, nil
}

func (a *CatalogAdapter) loadCategories(ctx context.Context, businessIDs []string) (map[string][]entities.CategorySummary, error) {
	sqlStr, args, err := a.db.Select(
		goqu.I("bc.business_id"), goqu.I("c.id"), goqu.I("c.name"),
	).From(goqu.T("business_categories").As("bc")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.I("bc.category_id").Eq(goqu.I("c.id")))).
		Where(goqu.Ex{"bc.business_id": businessIDs}).
		Order(goqu.I("bc.position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build categories query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to load business categories", err)
	}
	defer rows.Close()

	categories := make(map[string][]entities.CategorySummary)
	for rows.Next() {
		var businessID string
		var category entities.CategorySummary
		if err := rows.Scan(&businessID, &category.ID, &category.Name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories[businessID] = append(categories[businessID], category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating categories", err)
	}

	return categories, nil
}

func (a *CatalogAdapter) loadLocations(ctx context.Context, businessIDs []string) (map[string][]entities.BusinessLocation, error) {
	sqlStr, args, err := a.db.Select(
		"business_id", "address", "latitude", "longitude", "city", "state", "country",
	).From("business_locations").
		Where(goqu.Ex{"business_id": businessIDs}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build locations query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to load business locations", err)
	}
	defer rows.Close()

	locations := make(map[string][]entities.BusinessLocation)
	for rows.Next() {
		var businessID string
		var location entities.BusinessLocation
		var city, state, country sql.NullString
		if err := rows.Scan(
			&businessID,
			&location.Address,
			&location.Latitude,
			&location.Longitude,
			&city,
			&state,
			&country,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan location", err)
		}
		location.City = city.String
		location.State = state.String
		location.Country = country.String
		locations[businessID] = append(locations[businessID], location)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating locations", err)
	}

	return locations, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a contains-match ILIKE pattern with the user text
// escaped so LIKE metacharacters in it match literally.
func likePattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

// filterByRadius keeps only businesses with at least one location inside the
// radius and attaches the distance of the nearest such location.
func filterByRadius(results []*entities.BusinessResult, origin entities.GeoPoint, radiusMeters float64) []*entities.BusinessResult {
	filtered := results[:0]
	for _, result := range results {
		var nearest *float64
		for _, loc := range result.Locations {
			d := geo.DistanceMeters(origin.Latitude, origin.Longitude, loc.Latitude, loc.Longitude)
			if !geo.WithinRadius(d, radiusMeters) {
				continue
			}
			if nearest == nil || d < *nearest {
				dist := d
				nearest = &dist
			}
		}
		if nearest == nil {
			continue
		}
		result.DistanceMeters = nearest
		filtered = append(filtered, result)
	}
	return filtered
}
