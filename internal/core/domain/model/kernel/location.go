package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Degrees is a geographic coordinate component in decimal degrees.
type Degrees float64

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin Degrees = -90
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax Degrees = 90
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin Degrees = -180
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax Degrees = 180

	// kilometersPerDegree is the planar degrees-to-kilometers scale used for
	// ranking distances. One degree is treated as 111 km everywhere, which is
	// acceptable only for the short urban spans the dispatcher works with.
	kilometersPerDegree = 111
)

// ErrLocationIsNotConstructed is returned when using an improperly
// initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable geographic point with validated coordinates.
// The zero value is invalid and fails validation; use NewLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation(40.7589, -73.9851)
//	if err != nil {
//	    // handle validation error
//	}
type Location struct { //nolint:recvcheck //using for validation
	latitude  Degrees
	longitude Degrees
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location with the given latitude and longitude in
// decimal degrees. Coordinates outside the valid geographic ranges, or
// non-numeric values (NaN), are rejected.
func NewLocation(latitude, longitude Degrees) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was created via its constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (l Location) Latitude() Degrees {
	return l.latitude
}

// Longitude returns the longitude in decimal degrees.
func (l Location) Longitude() Degrees {
	return l.longitude
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.latitude, l.longitude)
}

// IsEqual compares two locations for coordinate equality.
// Both locations must be properly constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// DistanceKm estimates the distance to another location in kilometers using
// the Euclidean norm of the coordinate delta scaled by 111 km/degree, rounded
// to two decimals. This is a planar approximation: it is monotonic with true
// distance inside a small bounding region and is used for ranking only, never
// as a metric distance.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := float64(l.latitude - other.latitude)
	dLon := float64(l.longitude - other.longitude)
	km := math.Sqrt(dLat*dLat+dLon*dLon) * kilometersPerDegree

	return math.Round(km*100) / 100, nil
}

func (l *Location) setLatitude(latitude Degrees) error {
	if math.IsNaN(float64(latitude)) {
		return errs.NewValueIsInvalidError("latitude")
	}
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude Degrees) error {
	if math.IsNaN(float64(longitude)) {
		return errs.NewValueIsInvalidError("longitude")
	}
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}
