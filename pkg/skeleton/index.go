package skeleton

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/dnora/dnora/pkg/geo"
)

// PointIndex provides nearest-point and bounding-box queries over a point set
// using an R-tree. Coordinates are planar, normally projected meters.
type PointIndex struct {
	rtree *rtreego.Rtree
	n     int
}

// indexedPoint wraps a point for R-tree storage.
type indexedPoint struct {
	ind  int
	x, y float64
}

// R-tree rectangles need non-zero sides
const pointEpsilon = 1e-6

// Bounds implements rtreego.Spatial interface.
func (p *indexedPoint) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(rtreego.Point{p.x, p.y}, []float64{pointEpsilon, pointEpsilon})
	return rect
}

// NewPointIndex indexes the points (x[i], y[i]) under their position i.
func NewPointIndex(x, y []float64) (*PointIndex, error) {
	if len(x) != len(y) {
		return nil, &geo.LengthMismatchError{XName: "x", YName: "y", XLen: len(x), YLen: len(y)}
	}

	// 2D, min=25 children, max=50 children
	rtree := rtreego.NewTree(2, 25, 50)
	for i := range x {
		rtree.Insert(&indexedPoint{ind: i, x: x[i], y: y[i]})
	}
	return &PointIndex{rtree: rtree, n: len(x)}, nil
}

// Len returns the number of indexed points.
func (idx *PointIndex) Len() int { return idx.n }

// Nearest returns the index of the point closest to (x, y) and its distance.
// ok is false for an empty index.
func (idx *PointIndex) Nearest(x, y float64) (ind int, dist float64, ok bool) {
	if idx.n == 0 {
		return -1, math.Inf(1), false
	}
	p, _ := idx.rtree.NearestNeighbor(rtreego.Point{x, y}).(*indexedPoint)
	if p == nil {
		return -1, math.Inf(1), false
	}
	return p.ind, math.Hypot(p.x-x, p.y-y), true
}

// InBounds returns the sorted indices of all points inside b.
func (idx *PointIndex) InBounds(b geo.Bounds) []int {
	w, h := b.Width(), b.Height()
	if w < pointEpsilon {
		w = pointEpsilon
	}
	if h < pointEpsilon {
		h = pointEpsilon
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, []float64{w, h})
	if err != nil {
		return nil
	}

	var inds []int
	for _, s := range idx.rtree.SearchIntersect(rect) {
		p := s.(*indexedPoint)
		if b.Contains(p.x, p.y) {
			inds = append(inds, p.ind)
		}
	}
	sort.Ints(inds)
	return inds
}
