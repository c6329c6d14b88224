package kernel

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	// UnreachableDistanceKm is returned when either point is missing. It is
	// larger than any dispatch radius, so such pairs are never eligible.
	UnreachableDistanceKm = 9999.0
)

// Distance returns the great-circle distance between a and b in kilometers.
// It never fails: a missing or invalid point yields UnreachableDistanceKm.
func Distance(a, b GeoPoint) float64 {
	if !a.IsValid() || !b.IsValid() {
		return UnreachableDistanceKm
	}
	if a.IsEqual(b) {
		return 0
	}

	lat1 := toRadians(a.lat)
	lat2 := toRadians(b.lat)
	dLat := toRadians(b.lat - a.lat)
	dLng := toRadians(b.lng - a.lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
