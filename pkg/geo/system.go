// Package geo resolves, validates and converts the two coordinate systems used by
// wave-model grids: geographic longitude/latitude in degrees and projected UTM
// easting/northing in meters.
//
// The Converter is the only place in the module where coordinates are transformed.
// Everything else reads native values or asks a Converter for the foreign pair.
package geo

// CoordinateSystem identifies how a set of points was originally defined.
//
// A skeleton is bound to exactly one system at construction. The other system is
// always derivable through a Converter and is never stored.
type CoordinateSystem int

const (
	// Geographic coordinates are longitude/latitude in decimal degrees (WGS-84).
	Geographic CoordinateSystem = iota

	// Projected coordinates are UTM easting/northing in meters, in the fixed
	// zone and band of the active Projection.
	Projected
)

// String returns a human-readable name for the coordinate system.
func (c CoordinateSystem) String() string {
	switch c {
	case Geographic:
		return "Longitude/Latitude (WGS-84)"
	case Projected:
		return "Easting/Northing (UTM)"
	default:
		return "Unknown"
	}
}

// XName returns the storage name of the first coordinate: "lon" or "x".
func (c CoordinateSystem) XName() string {
	if c == Geographic {
		return "lon"
	}
	return "x"
}

// YName returns the storage name of the second coordinate: "lat" or "y".
func (c CoordinateSystem) YName() string {
	if c == Geographic {
		return "lat"
	}
	return "y"
}

// Other returns the system that is derived from c by conversion.
func (c CoordinateSystem) Other() CoordinateSystem {
	if c == Geographic {
		return Projected
	}
	return Geographic
}
