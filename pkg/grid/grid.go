// Package grid implements the model grid: a structured skeleton with a sea mask
// and a boundary mask, regridded by spacing and given boundary points by edge.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/skeleton"
)

// Mask names
const (
	SeaMask      = "sea"
	BoundaryMask = "boundary"
)

// DefaultName is the name of grids created without skeleton.WithName.
const DefaultName = "AnonymousGrid"

// MetersPerDegree approximates the length of one degree of latitude. Spacings
// given in meters on a geographic grid, and in degrees on a projected grid, are
// converted with it.
const MetersPerDegree = 111_000.0

// MaxPoints caps the number of cells SetSpacing creates.
const MaxPoints = 50_000_000

// Grid is a model grid. It is created from the edges of the area, and refined
// with SetSpacing.
type Grid struct {
	*skeleton.GriddedSkeleton
}

// New creates a grid whose axes are the given edges, typically
// Coordinates{Lon: []float64{lon0, lon1}, Lat: []float64{lat0, lat1}}. Both
// the sea mask (default true) and the boundary mask (default false) are
// registered.
func New(c skeleton.Coordinates, opts ...skeleton.Option) (*Grid, error) {
	opts = append([]skeleton.Option{
		skeleton.WithName(DefaultName),
		skeleton.WithMasks(
			skeleton.MaskSpec{Name: SeaMask, Default: true},
			skeleton.MaskSpec{Name: BoundaryMask, Default: false},
		),
	}, opts...)
	g, err := skeleton.NewGriddedSkeleton(c, opts...)
	if err != nil {
		return nil, err
	}
	return &Grid{GriddedSkeleton: g}, nil
}

// Spacing requests a grid resolution. Exactly one of the modes has to be set:
// DLon and DLat in degrees, DX and DY in meters, DM in approximate meters in
// both directions, or NX and NY points.
type Spacing struct {
	DLon, DLat float64
	DX, DY     float64
	DM         float64
	NX, NY     int
}

func (s Spacing) modes() int {
	n := 0
	if s.DLon != 0 || s.DLat != 0 {
		n++
	}
	if s.DX != 0 || s.DY != 0 {
		n++
	}
	if s.DM != 0 {
		n++
	}
	if s.NX != 0 || s.NY != 0 {
		n++
	}
	return n
}

// counts converts the requested spacing into point counts along the native
// axes of g.
func (s Spacing) counts(g *Grid) (nx, ny int, err error) {
	if s.modes() != 1 {
		return 0, 0, fmt.Errorf("set exactly one of dlon/dlat, dx/dy, dm or nx/ny")
	}
	if s.DLon < 0 || s.DLat < 0 || s.DX < 0 || s.DY < 0 || s.DM < 0 || s.NX < 0 || s.NY < 0 {
		return 0, 0, fmt.Errorf("spacing can't be negative: %+v", s)
	}
	if s.NX != 0 || s.NY != 0 {
		if s.NX == 0 || s.NY == 0 {
			return 0, 0, fmt.Errorf("nx and ny have to be set together")
		}
		if err := checkPoints(float64(s.NX), float64(s.NY)); err != nil {
			return 0, 0, err
		}
		return s.NX, s.NY, nil
	}

	x0, x1, err := g.NativeXEdges()
	if err != nil {
		return 0, 0, err
	}
	y0, y1, err := g.NativeYEdges()
	if err != nil {
		return 0, 0, err
	}
	lat0, lat1, err := g.LatEdges()
	if err != nil {
		return 0, 0, err
	}
	cosLat := math.Cos((lat0 + lat1) / 2 * math.Pi / 180)

	dx, dy := s.DX, s.DY
	switch {
	case s.DM != 0:
		dx, dy = s.DM, s.DM
	case s.DLon != 0 || s.DLat != 0:
		dx, dy = s.DLon*MetersPerDegree*cosLat, s.DLat*MetersPerDegree
	}
	if dx == 0 || dy == 0 {
		return 0, 0, fmt.Errorf("spacing has to be set in both directions: %+v", s)
	}

	// Native degrees on a geographic grid
	if g.System() == geo.Geographic {
		if s.DLon != 0 {
			dx, dy = s.DLon, s.DLat
		} else {
			dx, dy = dx/(MetersPerDegree*cosLat), dy/MetersPerDegree
		}
	}
	fx, fy := count(x0, x1, dx), count(y0, y1, dy)
	if err := checkPoints(fx, fy); err != nil {
		return 0, 0, err
	}
	return int(fx), int(fy), nil
}

// count returns the number of points covering [lo, hi] at roughly step d.
func count(lo, hi, d float64) float64 {
	return math.Round((hi-lo)/d) + 1
}

func checkPoints(nx, ny float64) error {
	if nx*ny > MaxPoints {
		return fmt.Errorf("spacing gives %.0f x %.0f points, more than the %d allowed", nx, ny, MaxPoints)
	}
	return nil
}

// SetSpacing rebuilds both axes between the current edges at the requested
// resolution. The edges are kept, so the realized spacing may differ slightly
// from the request. Stored masks are discarded.
func (g *Grid) SetSpacing(s Spacing) error {
	nx, ny, err := s.counts(g)
	if err != nil {
		return err
	}
	x0, x1, err := g.NativeXEdges()
	if err != nil {
		return err
	}
	y0, y1, err := g.NativeYEdges()
	if err != nil {
		return err
	}
	g.SetNativeAxes(linspace(x0, x1, nx), linspace(y0, y1, ny))
	return nil
}

func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Sea returns the stored sea mask, or the all-sea default.
func (g *Grid) Sea() (*skeleton.MaskArray, error) {
	m, err := g.GetMask(SeaMask, false)
	if err != nil || m != nil {
		return m, err
	}
	return g.GetMask(SeaMask, true)
}

// SetSea stores the sea mask. A nil mask stores the all-sea default.
func (g *Grid) SetSea(m *skeleton.MaskArray) error {
	return g.UpdateMask(SeaMask, m)
}

// BoundarySetter decides which grid cells are boundary points.
type BoundarySetter interface {
	Boundary(size []int) (*skeleton.MaskArray, error)
}

// SetBoundary stores the boundary mask produced by setter. Only sea cells can
// be boundary points.
func (g *Grid) SetBoundary(setter BoundarySetter) error {
	m, err := setter.Boundary(g.Size())
	if err != nil {
		return err
	}
	sea, err := g.Sea()
	if err != nil {
		return err
	}
	if len(sea.Values) == len(m.Values) {
		for i := range m.Values {
			m.Values[i] = m.Values[i] && sea.Values[i]
		}
	}
	return g.UpdateMask(BoundaryMask, m)
}

// BoundaryPoints returns the boundary points in the requested representation,
// in grid order.
func (g *Grid) BoundaryPoints(rep skeleton.Representation) ([]float64, []float64, error) {
	return g.MaskedPoints(BoundaryMask, rep, "", false)
}

// GeoBounds returns the geographic bounding box of the grid.
func (g *Grid) GeoBounds() (geo.Bounds, error) {
	return g.Bounds(geo.Geographic)
}
