package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrGeoPointIsNotConstructed is returned for a GeoPoint that bypassed NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint or GeoPointFromCoordinates")

// GeoPoint is a WGS84 position stored longitude first, as GeoJSON does.
// Coordinates are taken as reported by the courier device; no range check is applied.
type GeoPoint struct {
	longitude float64
	latitude  float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint builds a point from latitude/longitude in that order.
func NewGeoPoint(latitude, longitude float64) GeoPoint {
	return GeoPoint{
		longitude: longitude,
		latitude:  latitude,
		guard:     guard.NewConstructorGuard(),
	}
}

// GeoPointFromCoordinates builds a point from a GeoJSON [longitude, latitude] pair.
func GeoPointFromCoordinates(coordinates []float64) (GeoPoint, error) {
	if len(coordinates) != 2 {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause(
			"coordinates",
			fmt.Errorf("expected [longitude, latitude], got %d values", len(coordinates)),
		)
	}
	return NewGeoPoint(coordinates[1], coordinates[0]), nil
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Coordinates returns the GeoJSON ordering [longitude, latitude].
func (p GeoPoint) Coordinates() []float64 {
	return []float64{p.longitude, p.latitude}
}

func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.longitude == other.longitude && p.latitude == other.latitude
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("Point(%g %g)", p.longitude, p.latitude)
}
