package store

import (
	"fmt"
	"time"

	"github.com/ctessum/sparse"
)

// Coord is a named, ordered coordinate axis.
//
// A coordinate is either numeric (Values) or temporal (Times); exactly one of
// the two slices is used.
type Coord struct {
	Name   string
	Values []float64
	Times  []time.Time
}

// NumericCoord returns a numeric coordinate holding a copy of values.
func NumericCoord(name string, values []float64) Coord {
	return Coord{Name: name, Values: append([]float64{}, values...)}
}

// TimeCoord returns a temporal coordinate holding a copy of times.
func TimeCoord(name string, times []time.Time) Coord {
	return Coord{Name: name, Times: append([]time.Time{}, times...)}
}

// IsTime reports whether the coordinate holds timestamps.
func (c Coord) IsTime() bool { return c.Times != nil }

// Len returns the number of values along the axis.
func (c Coord) Len() int {
	if c.IsTime() {
		return len(c.Times)
	}
	return len(c.Values)
}

// Equal reports whether both coordinates have the same name, kind and values.
func (c Coord) Equal(o Coord) bool {
	if c.Name != o.Name || c.IsTime() != o.IsTime() || c.Len() != o.Len() {
		return false
	}
	if c.IsTime() {
		for i := range c.Times {
			if !c.Times[i].Equal(o.Times[i]) {
				return false
			}
		}
		return true
	}
	for i := range c.Values {
		if c.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

func (c Coord) clone() Coord {
	if c.IsTime() {
		return TimeCoord(c.Name, c.Times)
	}
	return NumericCoord(c.Name, c.Values)
}

// Variable is a named data array laid out over an ordered list of axes.
// Data is row-major with Data.Shape[i] values along Dims[i].
type Variable struct {
	Name string
	Dims []string
	Data *sparse.DenseArray
}

func (v Variable) clone() Variable {
	c := Variable{Name: v.Name, Dims: append([]string{}, v.Dims...)}
	if v.Data != nil {
		c.Data = copyArray(v.Data)
	}
	return c
}

// copyArray deep-copies a, shape included. DenseArray.Copy shares the shape
// slice and relies on unexported sizes that literal arrays lack.
func copyArray(a *sparse.DenseArray) *sparse.DenseArray {
	b := sparse.ZerosDense(append([]int{}, a.Shape...)...)
	copy(b.Elements, a.Elements)
	return b
}

// checkArray verifies that a's elements fill its shape.
func checkArray(name string, a *sparse.DenseArray) error {
	if a == nil {
		return fmt.Errorf("%s: no data", name)
	}
	n := 1
	for _, l := range a.Shape {
		n *= l
	}
	if n != len(a.Elements) {
		return fmt.Errorf("%s: %d elements don't fill shape %v", name, len(a.Elements), a.Shape)
	}
	return nil
}

func (v Variable) equal(o Variable) bool {
	if v.Name != o.Name || len(v.Dims) != len(o.Dims) {
		return false
	}
	for i := range v.Dims {
		if v.Dims[i] != o.Dims[i] {
			return false
		}
	}
	if len(v.Data.Shape) != len(o.Data.Shape) || len(v.Data.Elements) != len(o.Data.Elements) {
		return false
	}
	for i := range v.Data.Shape {
		if v.Data.Shape[i] != o.Data.Shape[i] {
			return false
		}
	}
	for i := range v.Data.Elements {
		if v.Data.Elements[i] != o.Data.Elements[i] {
			return false
		}
	}
	return true
}

// NewArray returns a dense array of the given shape holding a copy of values.
// A nil values slice yields an all-zero array.
func NewArray(shape []int, values []float64) (*sparse.DenseArray, error) {
	n := 1
	for _, l := range shape {
		if l < 0 {
			return nil, fmt.Errorf("negative length %d in shape %v", l, shape)
		}
		n *= l
	}
	a := sparse.ZerosDense(append([]int{}, shape...)...)
	if values == nil {
		return a, nil
	}
	if len(values) != n {
		return nil, fmt.Errorf("%d values don't fill shape %v (%d values)", len(values), shape, n)
	}
	copy(a.Elements, values)
	return a, nil
}

// FullArray returns an array of the given shape with every element set to val.
func FullArray(shape []int, val float64) *sparse.DenseArray {
	a := sparse.ZerosDense(append([]int{}, shape...)...)
	for i := range a.Elements {
		a.Elements[i] = val
	}
	return a
}
