package utils

import "math"

const earthRadiusMeters = 6371000

// HaversineDistance returns the great-circle distance in meters between two
// coordinates. Used for attendance check-in radius validation.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// WithinRadius reports whether a point lies within radiusMeters of a center.
func WithinRadius(centerLat, centerLng, lat, lng, radiusMeters float64) bool {
	return HaversineDistance(centerLat, centerLng, lat, lng) <= radiusMeters
}
