// Package geo provides great-circle distance math for the delivery radius check.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm computes the Haversine distance between two coordinates in
// kilometers. Inputs outside valid latitude/longitude ranges are not
// validated; that is the caller's responsibility.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Distance is DistanceKm over Point values.
func Distance(a, b Point) float64 {
	return DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
