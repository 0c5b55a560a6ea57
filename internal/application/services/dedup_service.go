package services

import (
	"github.com/bizlens/backend/internal/domain/entities"
	"github.com/bizlens/backend/pkg/geo"
	"github.com/bizlens/backend/pkg/utils"
)

const (
	// Two candidates need at least this normalized-name similarity to be
	// considered the same business.
	nameSimilarityThreshold = 0.8

	// Proximity tolerance between the candidates' closest locations. Guards
	// against two branches of a chain sharing a name.
	proximityToleranceMeters = 150.0
)

// DedupService collapses cross-source duplicates between the local catalog
// results and the external provider results.
type DedupService struct{}

// NewDedupService creates a new dedup service
func NewDedupService() *DedupService {
	return &DedupService{}
}

// Merge combines the two result lists, collapsing pairs that represent the
// same real-world business. Matching is greedy in input order and each
// external record can satisfy at most one local record. On a match the local
// record wins as the canonical entry and is re-tagged merged; external-only
// extras (photo references) are attached but never overwrite local fields.
func (s *DedupService) Merge(local, external []*entities.BusinessResult) ([]*entities.BusinessResult, entities.SourceCounts) {
	counts := entities.SourceCounts{
		Local:    len(local),
		External: len(external),
	}

	consumed := make([]bool, len(external))

	merged := make([]*entities.BusinessResult, 0, len(local)+len(external))
	for _, localResult := range local {
		for i, externalResult := range external {
			if consumed[i] {
				continue
			}
			if !sameBusiness(localResult, externalResult) {
				continue
			}

			consumed[i] = true
			counts.Deduplicated++

			localResult.Source = entities.SourceMerged
			if len(localResult.PhotoRefs) == 0 {
				localResult.PhotoRefs = externalResult.PhotoRefs
			}
			break
		}
		merged = append(merged, localResult)
	}

	for i, externalResult := range external {
		if !consumed[i] {
			merged = append(merged, externalResult)
		}
	}

	return merged, counts
}

// sameBusiness applies the two-part matching rule: normalized-name
// similarity above the threshold AND closest locations within tolerance.
// Without location evidence on both sides there is no match.
func sameBusiness(a, b *entities.BusinessResult) bool {
	if utils.NameSimilarity(a.Name, b.Name) < nameSimilarityThreshold {
		return false
	}

	closest, ok := closestLocationDistance(a.Locations, b.Locations)
	if !ok {
		return false
	}
	return geo.WithinRadius(closest, proximityToleranceMeters)
}

func closestLocationDistance(a, b []entities.BusinessLocation) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}

	found := false
	closest := 0.0
	for _, la := range a {
		for _, lb := range b {
			d := geo.DistanceMeters(la.Latitude, la.Longitude, lb.Latitude, lb.Longitude)
			if !found || d < closest {
				closest = d
				found = true
			}
		}
	}
	return closest, found
}
