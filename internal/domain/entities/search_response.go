package entities

// Pagination describes the page window of a response. Totals are computed
// on the deduplicated set, not the raw pre-merge counts.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// SourceCounts reports how many hits each upstream source contributed and
// how many cross-source duplicates were collapsed.
type SourceCounts struct {
	Local        int `json:"local"`
	External     int `json:"external"`
	Deduplicated int `json:"deduplicated"`
}

// SearchFilters echoes the filters that were applied, for the caller
type SearchFilters struct {
	CategoryIDs  []string  `json:"category_ids,omitempty"`
	MinRating    *float64  `json:"rating,omitempty"`
	RadiusMeters float64   `json:"radius_meters"`
	Location     *GeoPoint `json:"location,omitempty"`
}

// SearchResponse is the composed result of one search call
type SearchResponse struct {
	Businesses []*BusinessResult `json:"businesses"`
	Pagination Pagination        `json:"pagination"`
	Sources    SourceCounts      `json:"sources"`
	Query      string            `json:"query"`
	Filters    SearchFilters     `json:"filters"`
}

// RecentSearches is the payload of the recent-searches read endpoint
type RecentSearches struct {
	Searches []string `json:"searches"`
	Count    int      `json:"count"`
}
