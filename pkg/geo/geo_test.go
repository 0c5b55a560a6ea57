package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_ZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(6.5244, 3.3792, 6.5244, 3.3792))
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	// Lagos (6.5244, 3.3792) to Ibadan (7.3775, 3.9470) is roughly 114 km.
	d := DistanceMeters(6.5244, 3.3792, 7.3775, 3.9470)
	assert.InDelta(t, 114000, d, 3000)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	d1 := DistanceMeters(40.7128, -74.0060, 40.7580, -73.9855)
	d2 := DistanceMeters(40.7580, -73.9855, 40.7128, -74.0060)
	assert.InDelta(t, d1, d2, 0.0001)
}

func TestDistanceMeters_ShortDistance(t *testing.T) {
	// Two points ~111 m apart along a meridian (0.001 degrees of latitude).
	d := DistanceMeters(6.5244, 3.3792, 6.5254, 3.3792)
	assert.InDelta(t, 111, d, 2)
}

func TestWithinRadius(t *testing.T) {
	assert.True(t, WithinRadius(100, 150))
	assert.True(t, WithinRadius(150, 150))
	assert.False(t, WithinRadius(150.1, 150))
}
