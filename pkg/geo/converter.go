package geo

import (
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"
)

const longLatProj4 = "+proj=longlat +datum=WGS84 +no_defs"

// Converter transforms coordinates between the geographic and projected systems
// of a fixed Projection.
//
// A Converter holds no mutable state after construction and may be shared by any
// number of skeletons.
type Converter struct {
	projection Projection
	forward    proj.Transformer // lon/lat -> x/y
	inverse    proj.Transformer // x/y -> lon/lat
}

// NewConverter builds a converter for the given projection.
func NewConverter(p Projection) (*Converter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	geoSR, err := proj.Parse(longLatProj4)
	if err != nil {
		return nil, fmt.Errorf("parse geographic reference: %w", err)
	}
	utmSR, err := proj.Parse(p.Proj4())
	if err != nil {
		return nil, fmt.Errorf("parse UTM %s reference: %w", p, err)
	}
	forward, err := geoSR.NewTransform(utmSR)
	if err != nil {
		return nil, fmt.Errorf("UTM %s forward transform: %w", p, err)
	}
	inverse, err := utmSR.NewTransform(geoSR)
	if err != nil {
		return nil, fmt.Errorf("UTM %s inverse transform: %w", p, err)
	}
	return &Converter{projection: p, forward: forward, inverse: inverse}, nil
}

// DefaultConverter returns a converter for DefaultProjection.
func DefaultConverter() *Converter {
	c, err := NewConverter(DefaultProjection())
	if err != nil {
		// DefaultZone/DefaultBand are compile-time constants
		panic(err)
	}
	return c
}

// Projection returns the zone and band the converter projects into.
func (c *Converter) Projection() Projection {
	return c.projection
}

// PointToProjected projects a single geographic point.
func (c *Converter) PointToProjected(lon, lat float64) (x, y float64, err error) {
	if err := ValidateGeographic(c.projection, lon, lat); err != nil {
		return math.NaN(), math.NaN(), err
	}
	x, y, err = c.forward(lon, lat)
	if err != nil {
		return math.NaN(), math.NaN(), &ProjectionDomainError{
			System: Geographic, X: lon, Y: lat, Projection: c.projection, Reason: err.Error(),
		}
	}
	return x, y, nil
}

// PointToGeographic unprojects a single projected point.
func (c *Converter) PointToGeographic(x, y float64) (lon, lat float64, err error) {
	if err := ValidateProjected(c.projection, x, y); err != nil {
		return math.NaN(), math.NaN(), err
	}
	lon, lat, err = c.inverse(x, y)
	if err == nil && (math.IsNaN(lon) || math.IsNaN(lat) || math.Abs(lat) > 90) {
		err = fmt.Errorf("no geographic solution")
	}
	if err != nil {
		return math.NaN(), math.NaN(), &ProjectionDomainError{
			System: Projected, X: x, Y: y, Projection: c.projection, Reason: err.Error(),
		}
	}
	return lon, lat, nil
}

// ToProjected projects equally long lon/lat vectors. The first point outside the
// projection domain aborts the conversion.
func (c *Converter) ToProjected(lon, lat []float64) (x, y []float64, err error) {
	if len(lon) != len(lat) {
		return nil, nil, &LengthMismatchError{XName: "lon", YName: "lat", XLen: len(lon), YLen: len(lat)}
	}
	x, y = make([]float64, len(lon)), make([]float64, len(lat))
	for i := range lon {
		if x[i], y[i], err = c.PointToProjected(lon[i], lat[i]); err != nil {
			return nil, nil, err
		}
	}
	return x, y, nil
}

// ToGeographic unprojects equally long x/y vectors.
func (c *Converter) ToGeographic(x, y []float64) (lon, lat []float64, err error) {
	if len(x) != len(y) {
		return nil, nil, &LengthMismatchError{XName: "x", YName: "y", XLen: len(x), YLen: len(y)}
	}
	lon, lat = make([]float64, len(x)), make([]float64, len(y))
	for i := range x {
		if lon[i], lat[i], err = c.PointToGeographic(x[i], y[i]); err != nil {
			return nil, nil, err
		}
	}
	return lon, lat, nil
}

// Convert transforms a pair from one system into another. Converting into the
// same system returns copies of the input.
func (c *Converter) Convert(from, to CoordinateSystem, a, b []float64) ([]float64, []float64, error) {
	switch {
	case from == to:
		return append([]float64{}, a...), append([]float64{}, b...), nil
	case to == Projected:
		return c.ToProjected(a, b)
	default:
		return c.ToGeographic(a, b)
	}
}
