// Package store implements a labeled, coordinate-indexed container of
// multi-dimensional arrays.
//
// A Store holds an ordered set of named coordinate axes and an ordered set of
// named variables. Every variable is declared over a list of axis names and its
// backing array must have exactly the lengths of those axes. The invariant is
// checked whenever data enters the store; mutations that would break it fail
// without touching the store.
package store

import (
	"sort"
)

// Store is a named collection of coordinates and variables.
//
// The zero value is not usable; create stores with New. A Store is not safe for
// concurrent mutation.
type Store struct {
	name   string
	attrs  map[string]string
	coords []Coord
	vars   []Variable
}

// New returns a store holding copies of the given coordinates.
func New(name string, coords ...Coord) (*Store, error) {
	s := &Store{name: name, attrs: make(map[string]string)}
	for _, c := range coords {
		if s.coordIndex(c.Name) >= 0 {
			return nil, &ConflictError{Name: c.Name, Reason: "coordinate given twice"}
		}
		s.coords = append(s.coords, c.clone())
	}
	return s, nil
}

// Name returns the store's name.
func (s *Store) Name() string { return s.name }

// SetAttr sets a free-form string attribute.
func (s *Store) SetAttr(key, value string) { s.attrs[key] = value }

// Attr returns the attribute stored under key.
func (s *Store) Attr(key string) (string, bool) {
	v, ok := s.attrs[key]
	return v, ok
}

// Attrs returns a copy of all attributes.
func (s *Store) Attrs() map[string]string {
	m := make(map[string]string, len(s.attrs))
	for k, v := range s.attrs {
		m[k] = v
	}
	return m
}

func (s *Store) coordIndex(name string) int {
	for i := range s.coords {
		if s.coords[i].Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) varIndex(name string) int {
	for i := range s.vars {
		if s.vars[i].Name == name {
			return i
		}
	}
	return -1
}

// Coord returns a copy of the named coordinate.
func (s *Store) Coord(name string) (Coord, bool) {
	i := s.coordIndex(name)
	if i < 0 {
		return Coord{}, false
	}
	return s.coords[i].clone(), true
}

// Coords returns copies of all coordinates in insertion order.
func (s *Store) Coords() []Coord {
	out := make([]Coord, len(s.coords))
	for i := range s.coords {
		out[i] = s.coords[i].clone()
	}
	return out
}

// CoordNames returns the coordinate names in insertion order.
func (s *Store) CoordNames() []string {
	names := make([]string, len(s.coords))
	for i := range s.coords {
		names[i] = s.coords[i].Name
	}
	return names
}

// Variable returns a copy of the named variable.
func (s *Store) Variable(name string) (Variable, bool) {
	i := s.varIndex(name)
	if i < 0 {
		return Variable{}, false
	}
	return s.vars[i].clone(), true
}

// Values returns a copy of the named variable's elements in row-major order.
func (s *Store) Values(name string) ([]float64, bool) {
	i := s.varIndex(name)
	if i < 0 {
		return nil, false
	}
	return append([]float64{}, s.vars[i].Data.Elements...), true
}

// Variables returns copies of all variables in insertion order.
func (s *Store) Variables() []Variable {
	out := make([]Variable, len(s.vars))
	for i := range s.vars {
		out[i] = s.vars[i].clone()
	}
	return out
}

// VariableNames returns the variable names sorted alphabetically.
func (s *Store) VariableNames() []string {
	names := make([]string, len(s.vars))
	for i := range s.vars {
		names[i] = s.vars[i].Name
	}
	sort.Strings(names)
	return names
}

// Len returns the length of the named axis.
func (s *Store) Len(axis string) (int, bool) {
	i := s.coordIndex(axis)
	if i < 0 {
		return 0, false
	}
	return s.coords[i].Len(), true
}

// Shape returns the lengths of the given axes.
func (s *Store) Shape(dims []string) ([]int, error) {
	shape := make([]int, len(dims))
	for i, d := range dims {
		l, ok := s.Len(d)
		if !ok {
			return nil, &UnknownAxisError{Name: d, Axis: d}
		}
		shape[i] = l
	}
	return shape, nil
}

// Check verifies that v could be attached to the store: every declared axis
// exists, no axis is repeated and the data has exactly the axis lengths.
func (s *Store) Check(v Variable) error {
	if err := checkArray(v.Name, v.Data); err != nil {
		return err
	}
	seen := make(map[string]bool, len(v.Dims))
	for i, d := range v.Dims {
		if seen[d] {
			return &ConflictError{Name: v.Name, Reason: "axis " + d + " declared twice"}
		}
		seen[d] = true

		want, ok := s.Len(d)
		if !ok {
			return &UnknownAxisError{Name: v.Name, Axis: d}
		}
		if i >= len(v.Data.Shape) {
			return &ShapeMismatchError{Name: v.Name, Axis: d, Dim: i, Expected: want, Actual: -1}
		}
		if v.Data.Shape[i] != want {
			return &ShapeMismatchError{Name: v.Name, Axis: d, Dim: i, Expected: want, Actual: v.Data.Shape[i]}
		}
	}
	if extra := len(v.Dims); extra < len(v.Data.Shape) {
		return &ShapeMismatchError{Name: v.Name, Dim: extra, Expected: -1, Actual: v.Data.Shape[extra]}
	}
	return nil
}

func (s *Store) addCoord(c Coord) error {
	if s.varIndex(c.Name) >= 0 {
		return &ConflictError{Name: c.Name, Reason: "name already used by a variable"}
	}
	i := s.coordIndex(c.Name)
	if i < 0 {
		s.coords = append(s.coords, c.clone())
		return nil
	}
	have := s.coords[i]
	if have.Len() != c.Len() {
		return &ShapeMismatchError{Name: c.Name, Axis: c.Name, Expected: have.Len(), Actual: c.Len()}
	}
	if !have.Equal(c) {
		return &ConflictError{Name: c.Name, Reason: "coordinate values differ"}
	}
	return nil
}

func (s *Store) addVariable(v Variable, replace bool) error {
	if s.coordIndex(v.Name) >= 0 {
		return &ConflictError{Name: v.Name, Reason: "name already used by a coordinate"}
	}
	if err := s.Check(v); err != nil {
		return err
	}
	i := s.varIndex(v.Name)
	switch {
	case i < 0:
		s.vars = append(s.vars, v.clone())
	case replace:
		s.vars[i] = v.clone()
	case !s.vars[i].equal(v):
		return &ConflictError{Name: v.Name, Reason: "variable already exists with different data"}
	}
	return nil
}

// Merge attaches the coordinates, variables and attributes of others.
//
// Coordinates already present must be identical, variables already present must
// hold identical data, and existing attributes win. Merge is atomic: on error the
// store is left exactly as it was.
func (s *Store) Merge(others ...*Store) error {
	stage := s.Clone()
	for _, o := range others {
		for _, c := range o.coords {
			if err := stage.addCoord(c); err != nil {
				return err
			}
		}
		for _, v := range o.vars {
			if err := stage.addVariable(v, false); err != nil {
				return err
			}
		}
		for k, v := range o.attrs {
			if _, ok := stage.attrs[k]; !ok {
				stage.attrs[k] = v
			}
		}
	}
	*s = *stage
	return nil
}

// Put adds the given variables, replacing any existing variable of the same
// name. Either all variables are stored or none is.
func (s *Store) Put(vars ...Variable) error {
	stage := s.Clone()
	for _, v := range vars {
		if err := stage.addVariable(v, true); err != nil {
			return err
		}
	}
	*s = *stage
	return nil
}

// ReplaceCoord sets the values of an axis, adding it if absent. Variables
// declared over the axis keep their data, so the new length has to match theirs.
func (s *Store) ReplaceCoord(c Coord) error {
	if s.varIndex(c.Name) >= 0 {
		return &ConflictError{Name: c.Name, Reason: "name already used by a variable"}
	}
	for _, v := range s.vars {
		for dim, d := range v.Dims {
			if d == c.Name && v.Data.Shape[dim] != c.Len() {
				return &ShapeMismatchError{Name: v.Name, Axis: d, Dim: dim, Expected: c.Len(), Actual: v.Data.Shape[dim]}
			}
		}
	}
	if i := s.coordIndex(c.Name); i >= 0 {
		s.coords[i] = c.clone()
		return nil
	}
	s.coords = append(s.coords, c.clone())
	return nil
}

// Drop removes the named variables and coordinates. Variables declared over a
// dropped coordinate are removed with it. Unknown names are ignored.
func (s *Store) Drop(names ...string) {
	gone := make(map[string]bool, len(names))
	for _, n := range names {
		gone[n] = true
	}

	coords := s.coords[:0]
	for _, c := range s.coords {
		if !gone[c.Name] {
			coords = append(coords, c)
		}
	}
	s.coords = coords

	vars := s.vars[:0]
	for _, v := range s.vars {
		keep := !gone[v.Name]
		for _, d := range v.Dims {
			if gone[d] {
				keep = false
			}
		}
		if keep {
			vars = append(vars, v)
		}
	}
	s.vars = vars
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{
		name:   s.name,
		attrs:  s.Attrs(),
		coords: s.Coords(),
		vars:   s.Variables(),
	}
	return c
}
