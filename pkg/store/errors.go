package store

import (
	"fmt"
)

// ShapeMismatchError indicates data whose shape disagrees with the lengths of
// the axes it is declared over.
//
// Actual is -1 when the data lacks the dimension entirely, and Expected is -1
// when the data has a dimension no axis is declared for.
type ShapeMismatchError struct {
	Name     string // variable, mask or coordinate being attached
	Axis     string
	Dim      int
	Expected int
	Actual   int
}

func (e *ShapeMismatchError) Error() string {
	switch {
	case e.Actual < 0:
		return fmt.Sprintf("%s: %s coordinate is %d long, but that dimension doesn't exist in the data",
			e.Name, e.Axis, e.Expected)
	case e.Expected < 0:
		return fmt.Sprintf("%s: data has %d values in dimension %d, but no coordinate is declared for it",
			e.Name, e.Actual, e.Dim)
	default:
		return fmt.Sprintf("%s: %s coordinate is %d long, but size of data in that dimension (dim %d) is %d",
			e.Name, e.Axis, e.Expected, e.Dim, e.Actual)
	}
}

// ConflictError indicates an attempt to merge a coordinate or variable that
// already exists with different content
type ConflictError struct {
	Name   string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting %s: %s", e.Name, e.Reason)
}

// UnknownAxisError indicates a variable declared over an axis the store lacks
type UnknownAxisError struct {
	Name string
	Axis string
}

func (e *UnknownAxisError) Error() string {
	return fmt.Sprintf("%s: no coordinate named %q", e.Name, e.Axis)
}
