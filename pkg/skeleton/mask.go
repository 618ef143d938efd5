package skeleton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/store"
)

// MaskSpec registers a named mask and the value it has before one is stored.
type MaskSpec struct {
	Name    string
	Default bool
}

// MaskArray is a boolean mask shaped like a skeleton: (N) for points and
// (ny, nx) for grids, flattened row-major.
type MaskArray struct {
	Shape  []int
	Values []bool
}

// FullMask returns a mask of the given shape with every element set to val.
func FullMask(shape []int, val bool) *MaskArray {
	n := 1
	for _, l := range shape {
		n *= l
	}
	m := &MaskArray{Shape: append([]int{}, shape...), Values: make([]bool, n)}
	if val {
		for i := range m.Values {
			m.Values[i] = true
		}
	}
	return m
}

// Float returns the mask as 0/1 values.
func (m *MaskArray) Float() []float64 {
	out := make([]float64, len(m.Values))
	for i, v := range m.Values {
		if v {
			out[i] = 1
		}
	}
	return out
}

// Count returns the number of true elements.
func (m *MaskArray) Count() int {
	n := 0
	for _, v := range m.Values {
		if v {
			n++
		}
	}
	return n
}

func maskVariable(name string) string { return name + "_mask" }

// Representation selects the coordinate pair of masked point queries.
type Representation int

const (
	// Native returns the stored pair.
	Native Representation = iota
	// Cartesian returns projected x/y.
	Cartesian
	// Spherical returns geographic lon/lat.
	Spherical
)

// ParseRepresentation accepts "native", "cartesian", "xy", "utm", "spherical",
// "lonlat" and "geographic" in any case.
func ParseRepresentation(s string) (Representation, error) {
	switch strings.ToLower(s) {
	case "native":
		return Native, nil
	case "cartesian", "xy", "utm":
		return Cartesian, nil
	case "spherical", "lonlat", "geographic":
		return Spherical, nil
	}
	return 0, fmt.Errorf("unknown coordinate representation %q", s)
}

func (r Representation) system(native geo.CoordinateSystem) geo.CoordinateSystem {
	switch r {
	case Cartesian:
		return geo.Projected
	case Spherical:
		return geo.Geographic
	default:
		return native
	}
}

func (s *skeleton) maskIndex(name string) int {
	for i := range s.masks {
		if s.masks[i].Name == name {
			return i
		}
	}
	return -1
}

// RegisterMask adds a mask to the registry. Nothing is stored until UpdateMask.
func (s *skeleton) RegisterMask(spec MaskSpec) error {
	if s.maskIndex(spec.Name) >= 0 {
		return &DuplicateMaskError{Mask: spec.Name}
	}
	s.masks = append(s.masks, spec)
	return nil
}

// Masks returns the registered masks in registration order.
func (s *skeleton) Masks() []MaskSpec {
	return append([]MaskSpec{}, s.masks...)
}

// GetMask returns the stored mask. With empty set it instead returns a mask of
// the skeleton's size filled with the registered default, whether or not a mask
// is stored. A registered mask that was never stored yields nil.
func (s *skeleton) GetMask(name string, empty bool) (*MaskArray, error) {
	i := s.maskIndex(name)
	if i < 0 {
		return nil, &UnknownMaskError{Mask: name}
	}
	if empty {
		return FullMask(s.Size(), s.masks[i].Default), nil
	}
	v, ok := s.ds.Variable(maskVariable(name))
	if !ok {
		return nil, nil
	}
	m := &MaskArray{Shape: v.Data.Shape, Values: make([]bool, len(v.Data.Elements))}
	for j, f := range v.Data.Elements {
		m.Values[j] = f != 0
	}
	return m, nil
}

// UpdateMask stores a mask. A nil mask stores the registered default. The mask
// has to have the skeleton's size.
func (s *skeleton) UpdateMask(name string, mask *MaskArray) error {
	i := s.maskIndex(name)
	if i < 0 {
		return &UnknownMaskError{Mask: name}
	}
	if mask == nil {
		mask = FullMask(s.Size(), s.masks[i].Default)
	}

	size, axes := s.Size(), s.spatialAxes()
	for dim := range size {
		if dim >= len(mask.Shape) {
			return &store.ShapeMismatchError{Name: maskVariable(name), Axis: axes[dim], Dim: dim, Expected: size[dim], Actual: -1}
		}
		if mask.Shape[dim] != size[dim] {
			return &store.ShapeMismatchError{Name: maskVariable(name), Axis: axes[dim], Dim: dim, Expected: size[dim], Actual: mask.Shape[dim]}
		}
	}
	if len(mask.Shape) > len(size) {
		return &store.ShapeMismatchError{Name: maskVariable(name), Dim: len(size), Expected: -1, Actual: mask.Shape[len(size)]}
	}

	data, err := store.NewArray(size, mask.Float())
	if err != nil {
		return fmt.Errorf("%s: %w", maskVariable(name), err)
	}
	return s.ds.Put(store.Variable{Name: maskVariable(name), Dims: axes, Data: data})
}

// MaskedPoints returns the coordinates of the points where the mask is true.
//
// A mask that was never stored is taken at its default. With strict set a
// foreign representation yields nil instead of converted values. orderBy sorts
// the points by "x", "y", "lon" or "lat"; the empty string keeps index order.
// Sorting is stable.
func (s *skeleton) MaskedPoints(name string, rep Representation, orderBy string, strict bool) ([]float64, []float64, error) {
	mask, err := s.GetMask(name, false)
	if err != nil {
		return nil, nil, err
	}
	if mask == nil {
		if mask, err = s.GetMask(name, true); err != nil {
			return nil, nil, err
		}
	}

	sys := rep.system(s.system)
	if strict && sys != s.system {
		return nil, nil, nil
	}
	a, b, err := s.pair(sys)
	if err != nil {
		return nil, nil, err
	}

	var keys []float64
	switch orderBy {
	case "":
	case sys.XName():
		keys = a
	case sys.YName():
		keys = b
	case sys.Other().XName(), sys.Other().YName():
		oa, ob, err := s.pair(sys.Other())
		if err != nil {
			return nil, nil, err
		}
		keys = oa
		if orderBy == sys.Other().YName() {
			keys = ob
		}
	default:
		return nil, nil, fmt.Errorf("can't order points by %q", orderBy)
	}

	var inds []int
	for i, v := range mask.Values {
		if v {
			inds = append(inds, i)
		}
	}
	if keys != nil {
		sort.SliceStable(inds, func(i, j int) bool { return keys[inds[i]] < keys[inds[j]] })
	}

	outA, outB := make([]float64, len(inds)), make([]float64, len(inds))
	for i, ind := range inds {
		outA[i], outB[i] = a[ind], b[ind]
	}
	return outA, outB, nil
}
