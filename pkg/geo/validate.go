package geo

import (
	"math"
)

// Limits of the UTM projection domain.
const (
	MinLat = -80.0
	MaxLat = 84.0

	// MaxMeridianOffset is the largest distance in degrees of longitude from the
	// zone's central meridian that is still projected. Transverse Mercator
	// degenerates towards 90 degrees off the central meridian.
	MaxMeridianOffset = 40.0
)

// ValidateGeographic checks that (lon, lat) can be projected with p.
func ValidateGeographic(p Projection, lon, lat float64) error {
	domainErr := func(reason string) error {
		return &ProjectionDomainError{System: Geographic, X: lon, Y: lat, Projection: p, Reason: reason}
	}
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return domainErr("coordinates must be finite")
	}
	if lon < -180.0 || lon > 180.0 {
		return domainErr("lon must be ±180")
	}
	if lat < MinLat || lat > MaxLat {
		return domainErr("lat must be within -80..84")
	}
	offset := math.Abs(lon - p.CentralMeridian())
	if offset > 180 {
		offset = 360 - offset
	}
	if offset > MaxMeridianOffset {
		return domainErr("too far from the zone's central meridian")
	}
	return nil
}

// ValidateProjected checks that (x, y) can be unprojected with p.
func ValidateProjected(p Projection, x, y float64) error {
	domainErr := func(reason string) error {
		return &ProjectionDomainError{System: Projected, X: x, Y: y, Projection: p, Reason: reason}
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return domainErr("coordinates must be finite")
	}
	// Easting is not range checked: a forced zone legitimately yields eastings
	// outside the nominal 100 km..1000 km band.
	if y < 0 || y > 10000000 {
		return domainErr("northing must be within 0..10000000 m")
	}
	return nil
}
