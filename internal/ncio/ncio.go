// Package ncio stores a store.Store as a NetCDF classic file.
//
// Every coordinate becomes a dimension and a 1-D variable of the same name.
// Data variables are written as doubles over their coordinate dimensions, in
// alphabetical order. Time coordinates are written as seconds since the Unix
// epoch and carry a units attribute so Read can restore them. The store name
// and attributes become global attributes.
package ncio

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ctessum/cdf"

	"github.com/dnora/dnora/pkg/store"
)

// Global and variable attributes written by Write.
const (
	NameAttribute  = "name"
	UnitsAttribute = "units"
	TimeUnits      = "seconds since 1970-01-01 00:00:00"
)

// Write writes s to a new NetCDF file at path, replacing any existing file.
func Write(path string, s *store.Store) error {
	h, err := header(s)
	if err != nil {
		return fmt.Errorf("ncio: writing %s: %w", path, err)
	}

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ncio: %w", err)
	}
	defer w.Close()

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("ncio: writing header of %s: %w", path, err)
	}
	for _, c := range s.Coords() {
		if err := write(f, c.Name, coordValues(c)); err != nil {
			return fmt.Errorf("ncio: writing coordinate %s: %w", c.Name, err)
		}
	}
	for _, name := range s.VariableNames() {
		vals, _ := s.Values(name)
		if err := write(f, name, vals); err != nil {
			return fmt.Errorf("ncio: writing variable %s: %w", name, err)
		}
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("ncio: %w", err)
	}
	return w.Close()
}

// header defines the file layout of s. cdf panics on record dimensions and
// repeated variables, so those are rejected here first.
func header(s *store.Store) (*cdf.Header, error) {
	coords := s.Coords()
	dims := make([]string, len(coords))
	lengths := make([]int, len(coords))
	for i, c := range coords {
		if c.Len() == 0 {
			return nil, fmt.Errorf("coordinate %s is empty", c.Name)
		}
		dims[i], lengths[i] = c.Name, c.Len()
	}

	names := s.VariableNames()
	for _, name := range names {
		if _, ok := s.Coord(name); ok {
			return nil, fmt.Errorf("variable %s shadows a coordinate", name)
		}
		if v, _ := s.Variable(name); len(v.Dims) == 0 {
			return nil, fmt.Errorf("variable %s has no dimensions", name)
		}
	}
	attrs := s.Attrs()
	if _, ok := attrs[NameAttribute]; ok {
		return nil, fmt.Errorf("attribute %q is reserved for the store name", NameAttribute)
	}

	h := cdf.NewHeader(dims, lengths)
	h.AddAttribute("", NameAttribute, s.Name())
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.AddAttribute("", k, attrs[k])
	}

	for _, c := range coords {
		h.AddVariable(c.Name, []string{c.Name}, []float64{0})
		if c.IsTime() {
			h.AddAttribute(c.Name, UnitsAttribute, TimeUnits)
		}
	}
	for _, name := range names {
		v, _ := s.Variable(name)
		h.AddVariable(name, v.Dims, []float64{0})
	}
	h.Define()
	if errs := h.Check(); len(errs) > 0 {
		return nil, errs[0]
	}
	return h, nil
}

// write writes the whole variable. The end corner is one past the last
// element so the writer doesn't report io.EOF on the final value.
func write(f *cdf.File, name string, vals []float64) error {
	end := append([]int{}, f.Header.Lengths(name)...)
	start := make([]int, len(end))
	_, err := f.Writer(name, start, end).Write(vals)
	return err
}

func coordValues(c store.Coord) []float64 {
	if !c.IsTime() {
		return c.Values
	}
	vals := make([]float64, len(c.Times))
	for i, t := range c.Times {
		vals[i] = float64(t.Unix()) + float64(t.Nanosecond())/1e9
	}
	return vals
}

// Read reads a file written by Write.
func Read(path string) (*store.Store, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncio: %w", err)
	}
	defer r.Close()

	f, err := cdf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("ncio: reading header of %s: %w", path, err)
	}
	h := f.Header

	name, _ := h.GetAttribute("", NameAttribute).(string)
	coords := make([]store.Coord, 0)
	for _, dim := range h.Dimensions("") {
		if !isCoordinate(h, dim) {
			return nil, fmt.Errorf("ncio: %s: dimension %s has no coordinate variable", path, dim)
		}
		vals, err := read(f, dim)
		if err != nil {
			return nil, fmt.Errorf("ncio: reading coordinate %s: %w", dim, err)
		}
		units, _ := h.GetAttribute(dim, UnitsAttribute).(string)
		if strings.Trim(units, " \x00") == TimeUnits {
			coords = append(coords, store.TimeCoord(dim, toTimes(vals)))
			continue
		}
		coords = append(coords, store.NumericCoord(dim, vals))
	}

	s, err := store.New(name, coords...)
	if err != nil {
		return nil, fmt.Errorf("ncio: %s: %w", path, err)
	}
	for _, k := range h.Attributes("") {
		if k == NameAttribute {
			continue
		}
		if v, ok := h.GetAttribute("", k).(string); ok {
			s.SetAttr(k, v)
		}
	}

	vars := make([]store.Variable, 0)
	for _, v := range h.Variables() {
		if isCoordinate(h, v) {
			continue
		}
		vals, err := read(f, v)
		if err != nil {
			return nil, fmt.Errorf("ncio: reading variable %s: %w", v, err)
		}
		data, err := store.NewArray(h.Lengths(v), vals)
		if err != nil {
			return nil, fmt.Errorf("ncio: variable %s: %w", v, err)
		}
		vars = append(vars, store.Variable{Name: v, Dims: h.Dimensions(v), Data: data})
	}
	if err := s.Put(vars...); err != nil {
		return nil, fmt.Errorf("ncio: %s: %w", path, err)
	}
	return s, nil
}

func isCoordinate(h *cdf.Header, v string) bool {
	dims := h.Dimensions(v)
	return len(dims) == 1 && dims[0] == v
}

func read(f *cdf.File, name string) ([]float64, error) {
	n := 1
	for _, l := range f.Header.Lengths(name) {
		n *= l
	}
	buf, ok := f.Header.ZeroValue(name, n).([]float64)
	if !ok {
		return nil, fmt.Errorf("%s is not stored as double", name)
	}
	if _, err := f.Reader(name, nil, nil).Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func toTimes(secs []float64) []time.Time {
	times := make([]time.Time, len(secs))
	for i, s := range secs {
		whole, frac := math.Modf(s)
		times[i] = time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
	}
	return times
}
