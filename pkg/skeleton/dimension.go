package skeleton

import (
	"sort"
	"time"

	"github.com/dnora/dnora/pkg/store"
)

// Dimension describes an extra labeled axis that can be attached to a skeleton.
type Dimension struct {
	Name  string
	Units string

	// Rank fixes the position of the axis in compiled variables. Negative ranks
	// come before the spatial axes, the others after them, each group in
	// ascending rank.
	Rank int

	// Default returns the axis values used by Extend and ResetAxis.
	Default func() store.Coord
}

// Leading reports whether the axis precedes the spatial axes.
func (d Dimension) Leading() bool { return d.Rank < 0 }

// Axis names of the predefined dimensions.
const (
	TimeAxis      = "time"
	FrequencyAxis = "freq"
	DirectionAxis = "dirs"
)

// DefaultStart is the first default time step.
var DefaultStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// TimeDimension is an hourly time axis, 24 steps from DefaultStart by default.
func TimeDimension() Dimension {
	return Dimension{
		Name:  TimeAxis,
		Units: "seconds since 1970-01-01 00:00:00",
		Rank:  -1,
		Default: func() store.Coord {
			return store.TimeCoord(TimeAxis, HourlyTimes(DefaultStart, 24))
		},
	}
}

// FrequencyDimension is a frequency axis in Hz, [0.1 0.2 0.3] by default.
func FrequencyDimension() Dimension {
	return Dimension{
		Name:  FrequencyAxis,
		Units: "Hz",
		Rank:  1,
		Default: func() store.Coord {
			return store.NumericCoord(FrequencyAxis, []float64{0.1, 0.2, 0.3})
		},
	}
}

// DirectionDimension is a direction axis in degrees, 0 to 315 in steps of 45 by
// default.
func DirectionDimension() Dimension {
	return Dimension{
		Name:  DirectionAxis,
		Units: "deg",
		Rank:  2,
		Default: func() store.Coord {
			dirs := make([]float64, 8)
			for i := range dirs {
				dirs[i] = float64(i) * 45
			}
			return store.NumericCoord(DirectionAxis, dirs)
		},
	}
}

// HourlyTimes returns n hourly timestamps starting at start.
func HourlyTimes(start time.Time, n int) []time.Time {
	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Hour)
	}
	return times
}

func sortDimensions(dims []Dimension) {
	sort.SliceStable(dims, func(i, j int) bool {
		if dims[i].Rank != dims[j].Rank {
			return dims[i].Rank < dims[j].Rank
		}
		return dims[i].Name < dims[j].Name
	})
}

func (s *skeleton) dimensionIndex(name string) int {
	for i := range s.dims {
		if s.dims[i].Name == name {
			return i
		}
	}
	return -1
}

// Extend attaches a dimension with its default values.
//
// Applying a dimension that is already attached fails with
// *DuplicateDimensionError; the axis set never depends on application order.
func (s *skeleton) Extend(d Dimension) error {
	if s.dimensionIndex(d.Name) >= 0 {
		return &DuplicateDimensionError{Dimension: d.Name}
	}
	if _, ok := s.ds.Len(d.Name); ok {
		return &DuplicateDimensionError{Dimension: d.Name}
	}
	c := d.Default()
	c.Name = d.Name
	if err := s.ds.ReplaceCoord(c); err != nil {
		return err
	}
	s.dims = append(s.dims, d)
	sortDimensions(s.dims)
	return nil
}

// Dimensions returns the attached dimensions in canonical order.
func (s *skeleton) Dimensions() []Dimension {
	return append([]Dimension{}, s.dims...)
}

// HasDimension reports whether the named dimension is attached.
func (s *skeleton) HasDimension(name string) bool {
	return s.dimensionIndex(name) >= 0
}

// Axis returns a copy of the values of an attached dimension.
func (s *skeleton) Axis(name string) (store.Coord, error) {
	if s.dimensionIndex(name) < 0 {
		return store.Coord{}, &UnknownDimensionError{Dimension: name}
	}
	c, _ := s.ds.Coord(name)
	return c, nil
}

// SetAxis replaces the values of an attached dimension. Variables already laid
// out over the axis must match the new length.
func (s *skeleton) SetAxis(c store.Coord) error {
	if s.dimensionIndex(c.Name) < 0 {
		return &UnknownDimensionError{Dimension: c.Name}
	}
	return s.ds.ReplaceCoord(c)
}

// ResetAxis restores the default values of an attached dimension.
func (s *skeleton) ResetAxis(name string) error {
	i := s.dimensionIndex(name)
	if i < 0 {
		return &UnknownDimensionError{Dimension: name}
	}
	c := s.dims[i].Default()
	c.Name = name
	return s.ds.ReplaceCoord(c)
}

// Time returns the time axis, or nil if none is attached.
func (s *skeleton) Time() []time.Time {
	if s.dimensionIndex(TimeAxis) < 0 {
		return nil
	}
	c, _ := s.ds.Coord(TimeAxis)
	return c.Times
}
