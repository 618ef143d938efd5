// Package spectra provides point sets carrying wave spectra: omnidirectional
// Spectra over frequency and directional Boundary spectra over time, frequency
// and direction.
//
// Both compose a skeleton.PointSkeleton with a PhysicalQuantity describing the
// spectral variable, instead of extending the skeleton type.
package spectra

import (
	"github.com/ctessum/sparse"

	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/skeleton"
	"github.com/dnora/dnora/pkg/store"
)

// DefaultName is the name of spectral entities created without WithName.
const DefaultName = "AnonymousSpectra"

// entity is the state shared by Spectra and Boundary.
type entity struct {
	*skeleton.PointSkeleton
	quantity PhysicalQuantity
}

func newEntity(c skeleton.Coordinates, dims []skeleton.Dimension, opts []skeleton.Option) (*entity, error) {
	opts = append([]skeleton.Option{skeleton.WithName(DefaultName), skeleton.WithDimensions(dims...)}, opts...)
	p, err := skeleton.NewPointSkeleton(c, opts...)
	if err != nil {
		return nil, err
	}
	e := &entity{PointSkeleton: p, quantity: PowerSpectrum}
	if err := e.ResetVars(); err != nil {
		return nil, err
	}
	return e, nil
}

// coordinatesOf returns the native points of src. Grids contribute every cell.
func coordinatesOf(src skeleton.Skeleton) skeleton.Coordinates {
	a, b := src.NativeXY()
	if src.System() == geo.Geographic {
		return skeleton.Coordinates{Lon: a, Lat: b}
	}
	return skeleton.Coordinates{X: a, Y: b}
}

// Quantity describes the spectral variable.
func (e *entity) Quantity() PhysicalQuantity { return e.quantity }

// ResetVars sets the spectral variable to zeros over all axes.
func (e *entity) ResetVars() error {
	return e.Set(e.quantity.Name, sparse.ZerosDense(e.DataShape()...))
}

// SetSpec replaces the spectral variable. data has to have the shape of
// DataShape.
func (e *entity) SetSpec(data *sparse.DenseArray) error {
	return e.Set(e.quantity.Name, data)
}

// Spec returns a copy of the spectral variable.
func (e *entity) Spec() *sparse.DenseArray {
	v, _ := e.Get(e.quantity.Name)
	return v.Data
}

// Freq returns the frequency axis in Hz.
func (e *entity) Freq() []float64 {
	c, _ := e.Axis(skeleton.FrequencyAxis)
	return c.Values
}

// SetFreq replaces the frequency axis and resets the spectra.
func (e *entity) SetFreq(freq []float64) error {
	return e.resetAxis(store.NumericCoord(skeleton.FrequencyAxis, freq))
}

// resetAxis changes an axis whatever its length and reallocates the spectra.
// On error the entity is unchanged.
func (e *entity) resetAxis(c store.Coord) error {
	spec := e.Spec()
	e.Remove(e.quantity.Name)
	if err := e.SetAxis(c); err != nil {
		_ = e.Set(e.quantity.Name, spec)
		return err
	}
	return e.ResetVars()
}
