package skeleton

import (
	"fmt"

	"github.com/dnora/dnora/pkg/geo"
)

// PointSkeleton is an unstructured set of points addressed by an integer index.
//
// The native coordinates are stored as variables over the "inds" axis, so X and
// Y (or Lon and Lat) always return one value per point and XY is identical to
// (X, Y).
type PointSkeleton struct {
	*skeleton
}

// NewPointSkeleton creates a point set from equally long x/y or lon/lat vectors.
func NewPointSkeleton(c Coordinates, opts ...Option) (*PointSkeleton, error) {
	s, err := newSkeleton(pointTopology, c, opts)
	if err != nil {
		return nil, err
	}
	return &PointSkeleton{skeleton: s}, nil
}

// PointsFrom creates a point set from the native coordinates of every point of
// another skeleton. The converter of the source is shared unless overridden.
func PointsFrom(src Skeleton, opts ...Option) (*PointSkeleton, error) {
	a, b := src.NativeXY()
	c := Coordinates{X: a, Y: b}
	if src.System() == geo.Geographic {
		c = Coordinates{Lon: a, Lat: b}
	}
	opts = append([]Option{WithName(src.Name()), WithConverter(src.Converter())}, opts...)
	return NewPointSkeleton(c, opts...)
}

// Inds returns the point indices 0..N-1.
func (p *PointSkeleton) Inds() []int {
	inds := make([]int, p.NX())
	for i := range inds {
		inds[i] = i
	}
	return inds
}

// Subset returns a new point set holding the selected points in the given
// order. Only the coordinates are carried over.
func (p *PointSkeleton) Subset(inds []int, opts ...Option) (*PointSkeleton, error) {
	x, y := p.NativeXY()
	sx, sy := make([]float64, len(inds)), make([]float64, len(inds))
	for i, ind := range inds {
		if ind < 0 || ind >= len(x) {
			return nil, fmt.Errorf("%s: point index %d out of range [0, %d)", p.name, ind, len(x))
		}
		sx[i], sy[i] = x[ind], y[ind]
	}
	c := Coordinates{X: sx, Y: sy}
	if p.system == geo.Geographic {
		c = Coordinates{Lon: sx, Lat: sy}
	}
	opts = append([]Option{WithName(p.name), WithConverter(p.conv)}, opts...)
	return NewPointSkeleton(c, opts...)
}

// Index builds a spatial index over the projected coordinates of the points.
func (p *PointSkeleton) Index() (*PointIndex, error) {
	x, y, err := p.XY()
	if err != nil {
		return nil, err
	}
	return NewPointIndex(x, y)
}
