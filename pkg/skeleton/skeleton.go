package skeleton

import (
	"fmt"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"

	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/store"
)

// IndexAxis is the name of the point index axis of a PointSkeleton.
const IndexAxis = "inds"

// Skeleton is the coordinate access surface shared by both topologies.
type Skeleton interface {
	Name() string
	System() geo.CoordinateSystem
	Converter() *geo.Converter

	X() ([]float64, error)
	Y() ([]float64, error)
	Lon() ([]float64, error)
	Lat() ([]float64, error)
	NativeX() []float64
	NativeY() []float64

	XY() ([]float64, []float64, error)
	LonLat() ([]float64, []float64, error)
	NativeXY() ([]float64, []float64)

	Size() []int
	NX() int
	NY() int
}

type topology int

const (
	pointTopology topology = iota
	gridTopology
)

// skeleton is the state and behavior shared by PointSkeleton and
// GriddedSkeleton. Topology-specific behavior dispatches on topo.
type skeleton struct {
	topo   topology
	name   string
	system geo.CoordinateSystem
	conv   *geo.Converter
	ds     *store.Store
	masks  []MaskSpec
	dims   []Dimension
}

func newSkeleton(topo topology, c Coordinates, opts []Option) (*skeleton, error) {
	o := buildOptions(opts)

	resolve := geo.Resolve
	if topo == gridTopology {
		resolve = geo.ResolveAxes
	}
	sys, xvec, yvec, err := resolve(c.X, c.Y, c.Lon, c.Lat)
	if err != nil {
		return nil, err
	}

	conv := o.Converter
	if conv == nil {
		if conv, err = geo.NewConverter(o.Projection); err != nil {
			return nil, err
		}
	}

	s := &skeleton{topo: topo, name: o.Name, system: sys, conv: conv}
	if s.ds, err = s.initStore(xvec, yvec); err != nil {
		return nil, err
	}

	for _, d := range o.Dimensions {
		if err := s.Extend(d); err != nil {
			return nil, err
		}
	}
	if o.Times != nil {
		if !s.HasDimension(TimeAxis) {
			if err := s.Extend(TimeDimension()); err != nil {
				return nil, err
			}
		}
		if err := s.SetAxis(store.TimeCoord(TimeAxis, o.Times)); err != nil {
			return nil, err
		}
	}
	for _, m := range o.Masks {
		if err := s.RegisterMask(m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// initStore lays out the native coordinates. Points keep x/y as variables over
// the index axis; grids keep them as two coordinate axes.
func (s *skeleton) initStore(xvec, yvec []float64) (*store.Store, error) {
	xname, yname := s.system.XName(), s.system.YName()

	if s.topo == gridTopology {
		return store.New(s.name, store.NumericCoord(yname, yvec), store.NumericCoord(xname, xvec))
	}

	inds := make([]float64, len(xvec))
	for i := range inds {
		inds[i] = float64(i)
	}
	ds, err := store.New(s.name, store.NumericCoord(IndexAxis, inds))
	if err != nil {
		return nil, err
	}
	xdata, err := store.NewArray([]int{len(xvec)}, xvec)
	if err != nil {
		return nil, err
	}
	ydata, err := store.NewArray([]int{len(yvec)}, yvec)
	if err != nil {
		return nil, err
	}
	err = ds.Put(
		store.Variable{Name: xname, Dims: []string{IndexAxis}, Data: xdata},
		store.Variable{Name: yname, Dims: []string{IndexAxis}, Data: ydata},
	)
	return ds, err
}

// Name returns the skeleton name.
func (s *skeleton) Name() string { return s.name }

// System returns the native coordinate system.
func (s *skeleton) System() geo.CoordinateSystem { return s.system }

// Converter returns the converter used for the foreign coordinate pair.
func (s *skeleton) Converter() *geo.Converter { return s.conv }

// spatialAxes returns the names of the axes spanning the skeleton's points.
func (s *skeleton) spatialAxes() []string {
	if s.topo == gridTopology {
		return []string{s.system.YName(), s.system.XName()}
	}
	return []string{IndexAxis}
}

// Axes returns the axes of a variable compiled on the skeleton: leading
// dimensions, spatial axes, then trailing dimensions.
func (s *skeleton) Axes() []string {
	var axes []string
	for _, d := range s.dims {
		if d.Leading() {
			axes = append(axes, d.Name)
		}
	}
	axes = append(axes, s.spatialAxes()...)
	for _, d := range s.dims {
		if !d.Leading() {
			axes = append(axes, d.Name)
		}
	}
	return axes
}

// DataShape returns the shape of a variable laid out over Axes.
func (s *skeleton) DataShape() []int {
	shape, _ := s.ds.Shape(s.Axes())
	return shape
}

// SetAttr sets a free-form attribute such as the data source.
func (s *skeleton) SetAttr(key, value string) { s.ds.SetAttr(key, value) }

// Attr returns the attribute stored under key.
func (s *skeleton) Attr(key string) (string, bool) { return s.ds.Attr(key) }

// native returns the stored x (axis 0) or y (axis 1) values.
func (s *skeleton) native(axis int) []float64 {
	name := s.system.XName()
	if axis == 1 {
		name = s.system.YName()
	}
	if s.topo == gridTopology {
		c, _ := s.ds.Coord(name)
		return c.Values
	}
	v, _ := s.ds.Values(name)
	return v
}

// NativeX returns the stored x or lon values.
func (s *skeleton) NativeX() []float64 { return s.native(0) }

// NativeY returns the stored y or lat values.
func (s *skeleton) NativeY() []float64 { return s.native(1) }

// NX returns the number of values along the x axis. For points this is the
// number of points.
func (s *skeleton) NX() int { return len(s.native(0)) }

// NY returns the number of values along the y axis. For points this is the
// number of points.
func (s *skeleton) NY() int { return len(s.native(1)) }

// Size returns (N) for points and (ny, nx) for grids.
func (s *skeleton) Size() []int {
	if s.topo == gridTopology {
		return []int{s.NY(), s.NX()}
	}
	return []int{s.NX()}
}

// NativeXY returns the native pair of every point.
func (s *skeleton) NativeXY() ([]float64, []float64) {
	x, y := s.native(0), s.native(1)
	if s.topo == pointTopology {
		return x, y
	}
	xx := make([]float64, 0, len(x)*len(y))
	yy := make([]float64, 0, len(x)*len(y))
	for _, yv := range y {
		for _, xv := range x {
			xx = append(xx, xv)
			yy = append(yy, yv)
		}
	}
	return xx, yy
}

// pair returns the coordinates of every point in the requested system.
func (s *skeleton) pair(sys geo.CoordinateSystem) ([]float64, []float64, error) {
	a, b := s.NativeXY()
	if sys == s.system {
		return a, b, nil
	}
	return s.conv.Convert(s.system, sys, a, b)
}

// XY returns the projected pair of every point.
func (s *skeleton) XY() ([]float64, []float64, error) { return s.pair(geo.Projected) }

// LonLat returns the geographic pair of every point.
func (s *skeleton) LonLat() ([]float64, []float64, error) { return s.pair(geo.Geographic) }

// coordinate returns one coordinate in the requested system. Native values are
// returned as stored. On a grid a foreign axis is not separable, so a regular
// axis spanning the converted extent is returned instead; use XY or LonLat for
// exact values.
func (s *skeleton) coordinate(sys geo.CoordinateSystem, axis int) ([]float64, error) {
	if sys == s.system {
		return s.native(axis), nil
	}
	a, b, err := s.pair(sys)
	if err != nil {
		return nil, err
	}
	vals := a
	if axis == 1 {
		vals = b
	}
	if s.topo == pointTopology {
		return vals, nil
	}
	n := s.NX()
	if axis == 1 {
		n = s.NY()
	}
	return regularAxis(vals, n), nil
}

func regularAxis(vals []float64, n int) []float64 {
	switch {
	case n == 0 || len(vals) == 0:
		return []float64{}
	case n == 1:
		return []float64{(floats.Min(vals) + floats.Max(vals)) / 2}
	}
	return floats.Span(make([]float64, n), floats.Min(vals), floats.Max(vals))
}

// X returns the projected x coordinate.
func (s *skeleton) X() ([]float64, error) { return s.coordinate(geo.Projected, 0) }

// Y returns the projected y coordinate.
func (s *skeleton) Y() ([]float64, error) { return s.coordinate(geo.Projected, 1) }

// Lon returns the longitude.
func (s *skeleton) Lon() ([]float64, error) { return s.coordinate(geo.Geographic, 0) }

// Lat returns the latitude.
func (s *skeleton) Lat() ([]float64, error) { return s.coordinate(geo.Geographic, 1) }

func (s *skeleton) edges(sys geo.CoordinateSystem, axis int) (float64, float64, error) {
	var vals []float64
	if sys == s.system {
		vals = s.native(axis)
	} else {
		a, b, err := s.pair(sys)
		if err != nil {
			return 0, 0, err
		}
		vals = a
		if axis == 1 {
			vals = b
		}
	}
	if len(vals) == 0 {
		name := sys.XName()
		if axis == 1 {
			name = sys.YName()
		}
		return 0, 0, &EmptyDataError{Name: s.name, Axis: name}
	}
	return floats.Min(vals), floats.Max(vals), nil
}

// LonEdges returns the minimum and maximum longitude.
func (s *skeleton) LonEdges() (float64, float64, error) { return s.edges(geo.Geographic, 0) }

// LatEdges returns the minimum and maximum latitude.
func (s *skeleton) LatEdges() (float64, float64, error) { return s.edges(geo.Geographic, 1) }

// XEdges returns the minimum and maximum x.
func (s *skeleton) XEdges() (float64, float64, error) { return s.edges(geo.Projected, 0) }

// YEdges returns the minimum and maximum y.
func (s *skeleton) YEdges() (float64, float64, error) { return s.edges(geo.Projected, 1) }

// NativeXEdges returns the minimum and maximum of the native x coordinate.
func (s *skeleton) NativeXEdges() (float64, float64, error) { return s.edges(s.system, 0) }

// NativeYEdges returns the minimum and maximum of the native y coordinate.
func (s *skeleton) NativeYEdges() (float64, float64, error) { return s.edges(s.system, 1) }

// spacing is (max-min)/(n-1) with n the number of values along the axis, and
// exactly 0 for a single value.
func (s *skeleton) spacing(sys geo.CoordinateSystem, axis int) (float64, error) {
	n := s.NX()
	if axis == 1 {
		n = s.NY()
	}
	if n == 1 {
		return 0, nil
	}
	lo, hi, err := s.edges(sys, axis)
	if err != nil {
		return 0, err
	}
	return (hi - lo) / float64(n-1), nil
}

// DLon returns the longitude spacing.
func (s *skeleton) DLon() (float64, error) { return s.spacing(geo.Geographic, 0) }

// DLat returns the latitude spacing.
func (s *skeleton) DLat() (float64, error) { return s.spacing(geo.Geographic, 1) }

// DX returns the x spacing in meters.
func (s *skeleton) DX() (float64, error) { return s.spacing(geo.Projected, 0) }

// DY returns the y spacing in meters.
func (s *skeleton) DY() (float64, error) { return s.spacing(geo.Projected, 1) }

// NativeDX returns the spacing of the native x coordinate.
func (s *skeleton) NativeDX() (float64, error) { return s.spacing(s.system, 0) }

// NativeDY returns the spacing of the native y coordinate.
func (s *skeleton) NativeDY() (float64, error) { return s.spacing(s.system, 1) }

// Bounds returns the bounding box of all points in the requested system.
func (s *skeleton) Bounds(sys geo.CoordinateSystem) (geo.Bounds, error) {
	a, b, err := s.pair(sys)
	if err != nil {
		return geo.Bounds{}, err
	}
	return geo.BoundsOf(sys, a, b), nil
}

// CompileVariable lays data out over the skeleton's axes, followed by any
// additional coordinates, and returns it in a new store holding those
// coordinates. The shapes are checked before anything is returned.
func (s *skeleton) CompileVariable(name string, data *sparse.DenseArray, additional ...store.Coord) (*store.Store, error) {
	dims := s.Axes()
	coords := s.ds.Coords()
	for _, c := range additional {
		dims = append(dims, c.Name)
		coords = append(coords, c)
	}
	ds, err := store.New(s.name, coords...)
	if err != nil {
		return nil, err
	}
	if err := ds.Put(store.Variable{Name: name, Dims: dims, Data: data}); err != nil {
		return nil, err
	}
	return ds, nil
}

// MergeData attaches the coordinates and variables of the given stores. On error
// the skeleton is unchanged. Variables named like the native coordinates or a
// registered mask are refused; masks change only through UpdateMask.
func (s *skeleton) MergeData(data ...*store.Store) error {
	for _, d := range data {
		for _, name := range d.VariableNames() {
			if s.isReserved(name) {
				return &store.ConflictError{Name: name, Reason: "reserved for coordinates or masks of " + s.name}
			}
		}
	}
	return s.ds.Merge(data...)
}

// Set stores data over the skeleton's axes, replacing any variable of the same
// name.
func (s *skeleton) Set(name string, data *sparse.DenseArray) error {
	if s.isReserved(name) {
		return fmt.Errorf("%s: %s is reserved for coordinates or masks", s.name, name)
	}
	return s.ds.Put(store.Variable{Name: name, Dims: s.Axes(), Data: data})
}

func (s *skeleton) isReserved(name string) bool {
	if name == s.system.XName() || name == s.system.YName() {
		return true
	}
	for _, m := range s.masks {
		if maskVariable(m.Name) == name {
			return true
		}
	}
	return false
}

// Remove deletes a data variable. Coordinates and masks are left alone.
func (s *skeleton) Remove(name string) {
	if s.isReserved(name) {
		return
	}
	if _, ok := s.ds.Len(name); ok {
		return
	}
	s.ds.Drop(name)
}

// Get returns a copy of the named variable.
func (s *skeleton) Get(name string) (store.Variable, bool) {
	return s.ds.Variable(name)
}

// Coord returns a copy of the named coordinate axis.
func (s *skeleton) Coord(name string) (store.Coord, bool) {
	return s.ds.Coord(name)
}

// Snapshot returns a deep copy of the backing store.
func (s *skeleton) Snapshot() *store.Store {
	return s.ds.Clone()
}
