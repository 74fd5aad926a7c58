package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmSamePoint(t *testing.T) {
	points := []Point{
		{0, 0},
		{-33.4489, -70.6693}, // Santiago
		{89.9, 179.9},
	}
	for _, p := range points {
		assert.Zero(t, DistanceKm(p.Lat, p.Lng, p.Lat, p.Lng))
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	a := Point{-33.4489, -70.6693}
	b := Point{-33.0472, -71.6127} // Valparaíso
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

// One degree of latitude is about 111 km.
func TestDistanceKmReference(t *testing.T) {
	d := DistanceKm(0, 0, 1, 0)
	assert.InDelta(t, 111.0, d, 1.0)
}
