package skeleton

import (
	"github.com/dnora/dnora/pkg/store"
)

// GriddedSkeleton is a structured rectangular grid addressed by two independent
// axes. Its size is (ny, nx) and data is laid out y outer, x inner.
type GriddedSkeleton struct {
	*skeleton
}

// NewGriddedSkeleton creates a grid from x/y or lon/lat axes. The two axes may
// differ in length.
func NewGriddedSkeleton(c Coordinates, opts ...Option) (*GriddedSkeleton, error) {
	s, err := newSkeleton(gridTopology, c, opts)
	if err != nil {
		return nil, err
	}
	return &GriddedSkeleton{skeleton: s}, nil
}

// SetNativeAxes replaces both native axes. Every variable laid out over them,
// masks included, is dropped since its shape no longer applies; registered
// masks fall back to "not stored".
func (g *GriddedSkeleton) SetNativeAxes(x, y []float64) {
	xname, yname := g.system.XName(), g.system.YName()
	g.ds.Drop(yname, xname)
	// Neither axis has dependents left, so replacing can't fail
	_ = g.ds.ReplaceCoord(store.NumericCoord(yname, y))
	_ = g.ds.ReplaceCoord(store.NumericCoord(xname, x))
}
