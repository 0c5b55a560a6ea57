package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used for haversine distances.
const EarthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula. Inputs are degrees; callers are expected to
// have validated coordinate ranges beforehand.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// WithinRadius reports whether a distance falls inside the given radius.
func WithinRadius(distanceMeters, radiusMeters float64) bool {
	return distanceMeters <= radiusMeters
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
