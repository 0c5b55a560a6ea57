package entities

// Source identifies which upstream source(s) a result came from
type Source string

const (
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
	SourceMerged   Source = "merged"
)

// ExternalIDPrefix tags ids synthesized for external provider hits so
// provenance survives merge-labeling.
const ExternalIDPrefix = "ext:"

// BusinessResult is a single search hit. Instances are built per call from
// the catalog and the external places provider and carry no persistent
// identity; an external-only hit has an id prefixed with the provider tag.
type BusinessResult struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Username       string             `json:"username,omitempty"`
	LogoURL        string             `json:"logo_url,omitempty"`
	About          string             `json:"about,omitempty"`
	Rating         *float64           `json:"rating"`
	RatingCount    int                `json:"rating_count"`
	DistanceMeters *float64           `json:"distance_meters,omitempty"`
	Source         Source             `json:"source"`
	Categories     []CategorySummary  `json:"categories,omitempty"`
	Locations      []BusinessLocation `json:"locations,omitempty"`

	// PhotoRefs are supplementary provider photo references attached on
	// merge; they never replace first-party fields.
	PhotoRefs []string `json:"photo_refs,omitempty"`
}

// CategorySummary is the category projection attached to a result
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BusinessLocation is a physical location of a business
type BusinessLocation struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country,omitempty"`
}

// RatingValue converts a rating sum and count into the nullable average
// exposed on results. A business with no reviews has a null rating.
func RatingValue(ratingSum float64, ratingCount int) *float64 {
	if ratingCount <= 0 {
		return nil
	}
	avg := ratingSum / float64(ratingCount)
	return &avg
}
