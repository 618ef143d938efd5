package geo

import (
	"gonum.org/v1/gonum/floats"
)

// Bounds is an axis-aligned bounding box in one coordinate system.
//
// For Geographic bounds X is longitude and Y is latitude in decimal degrees;
// for Projected bounds both are meters.
type Bounds struct {
	System     CoordinateSystem
	MinX, MaxX float64 // Western and eastern edge
	MinY, MaxY float64 // Southern and northern edge
}

// BoundsOf returns the bounding box of the given points.
// The zero Bounds is returned for an empty point set.
func BoundsOf(sys CoordinateSystem, xs, ys []float64) Bounds {
	if len(xs) == 0 || len(ys) == 0 {
		return Bounds{System: sys}
	}
	return Bounds{
		System: sys,
		MinX:   floats.Min(xs),
		MaxX:   floats.Max(xs),
		MinY:   floats.Min(ys),
		MaxY:   floats.Max(ys),
	}
}

// Contains returns true if the point (x, y) is within the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// Margin is in the units of the bounds' system.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		System: b.System,
		MinX:   b.MinX - margin,
		MaxX:   b.MaxX + margin,
		MinY:   b.MinY - margin,
		MaxY:   b.MaxY + margin,
	}
}

// Union returns the smallest bounds covering both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	u := b
	if other.MinX < u.MinX {
		u.MinX = other.MinX
	}
	if other.MaxX > u.MaxX {
		u.MaxX = other.MaxX
	}
	if other.MinY < u.MinY {
		u.MinY = other.MinY
	}
	if other.MaxY > u.MaxY {
		u.MaxY = other.MaxY
	}
	return u
}

// Width returns MaxX-MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }
