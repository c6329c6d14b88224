package kernel

import (
	"fmt"
	"math"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// GeoPoint is a validated WGS84 coordinate.
//
// The zero value is a missing point: IsValid reports false and Distance
// treats it as unreachable. Shops without configured coordinates and drivers
// that never reported a position are modelled this way.
type GeoPoint struct {
	lat     float64
	lng     float64
	isValid bool
}

// NewGeoPoint validates and builds a coordinate.
//
// The exact pair (0, 0) is rejected as well: clients without a GPS fix send
// it, and no shop or driver of this system sits in the Gulf of Guinea.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < minLatitude || lat > maxLatitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", lat, minLatitude, maxLatitude)
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) || lng < minLongitude || lng > maxLongitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", lng, minLongitude, maxLongitude)
	}
	if lat == 0 && lng == 0 {
		return GeoPoint{}, errs.NewValueIsRequiredErrorWithCause("coordinates", fmt.Errorf("(0, 0) is not a position fix"))
	}

	return GeoPoint{lat: lat, lng: lng, isValid: true}, nil
}

// MustNewGeoPoint is NewGeoPoint for literals known to be valid. It panics otherwise.
func MustNewGeoPoint(lat, lng float64) GeoPoint {
	p, err := NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}
	return p
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsValid reports whether the point was built by NewGeoPoint.
func (p GeoPoint) IsValid() bool {
	return p.isValid
}

// IsEqual compares two points by value. Two missing points are equal.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p == other
}

func (p GeoPoint) String() string {
	if !p.isValid {
		return "(missing)"
	}
	return fmt.Sprintf("(%.6f, %.6f)", p.lat, p.lng)
}
