package spectra

import (
	"time"

	"github.com/ctessum/sparse"

	"github.com/dnora/dnora/pkg/skeleton"
	"github.com/dnora/dnora/pkg/store"
)

// Boundary holds directional boundary spectra, laid out
// (time, inds, freq, dirs).
type Boundary struct {
	*entity
}

// NewBoundary creates zeroed boundary spectra at the given points with the
// default times, frequencies and directions.
func NewBoundary(c skeleton.Coordinates, opts ...skeleton.Option) (*Boundary, error) {
	dims := []skeleton.Dimension{
		skeleton.TimeDimension(),
		skeleton.FrequencyDimension(),
		skeleton.DirectionDimension(),
	}
	e, err := newEntity(c, dims, opts)
	if err != nil {
		return nil, err
	}
	return &Boundary{entity: e}, nil
}

// BoundaryFrom creates boundary spectra at every point of src, in src's native
// system.
func BoundaryFrom(src skeleton.Skeleton, opts ...skeleton.Option) (*Boundary, error) {
	opts = append([]skeleton.Option{skeleton.WithConverter(src.Converter())}, opts...)
	return NewBoundary(coordinatesOf(src), opts...)
}

// Dirs returns the direction axis in degrees.
func (b *Boundary) Dirs() []float64 {
	c, _ := b.Axis(skeleton.DirectionAxis)
	return c.Values
}

// SetDirs replaces the direction axis and resets the spectra.
func (b *Boundary) SetDirs(dirs []float64) error {
	return b.resetAxis(store.NumericCoord(skeleton.DirectionAxis, dirs))
}

// SetTimes replaces the time axis and resets the spectra.
func (b *Boundary) SetTimes(times []time.Time) error {
	return b.resetAxis(store.TimeCoord(skeleton.TimeAxis, times))
}

// Assign sets all axes and the spectra at once. spec is laid out
// (time, inds, freq, dirs). On error the boundary is unchanged.
func (b *Boundary) Assign(times []time.Time, freq, dirs []float64, spec *sparse.DenseArray) error {
	before := struct {
		times      []time.Time
		freq, dirs []float64
		spec       *sparse.DenseArray
	}{b.Time(), b.Freq(), b.Dirs(), b.Spec()}

	err := b.SetTimes(times)
	if err == nil {
		err = b.SetFreq(freq)
	}
	if err == nil {
		err = b.SetDirs(dirs)
	}
	if err == nil {
		err = b.SetSpec(spec)
	}
	if err != nil {
		_ = b.SetTimes(before.times)
		_ = b.SetFreq(before.freq)
		_ = b.SetDirs(before.dirs)
		_ = b.SetSpec(before.spec)
	}
	return err
}
