package skeleton

import (
	"fmt"
)

// EmptyDataError indicates an edge or spacing query on a skeleton without points
type EmptyDataError struct {
	Name string // skeleton name
	Axis string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("%s: can't compute %s edges of zero points", e.Name, e.Axis)
}

// DuplicateMaskError indicates a second registration of a mask name
type DuplicateMaskError struct {
	Mask string
}

func (e *DuplicateMaskError) Error() string {
	return fmt.Sprintf("mask %q is already registered", e.Mask)
}

// DuplicateDimensionError indicates a dimension extension applied twice
type DuplicateDimensionError struct {
	Dimension string
}

func (e *DuplicateDimensionError) Error() string {
	return fmt.Sprintf("dimension %q is already applied", e.Dimension)
}

// UnknownMaskError indicates a query for a mask that was never registered
type UnknownMaskError struct {
	Mask string
}

func (e *UnknownMaskError) Error() string {
	return fmt.Sprintf("no mask named %q", e.Mask)
}

// UnknownDimensionError indicates a query for a dimension that was never applied
type UnknownDimensionError struct {
	Dimension string
}

func (e *UnknownDimensionError) Error() string {
	return fmt.Sprintf("no dimension named %q", e.Dimension)
}
