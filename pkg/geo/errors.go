package geo

import (
	"fmt"
)

// AmbiguousInputError indicates both x/y and lon/lat were supplied
type AmbiguousInputError struct{}

func (e *AmbiguousInputError) Error() string {
	return "ambiguous coordinates: can't set both lon/lat and x/y"
}

// MissingInputError indicates no complete coordinate pair was supplied.
// Missing names the absent vector of a half-supplied pair, and is empty when
// neither pair was given at all.
type MissingInputError struct {
	Missing string
}

func (e *MissingInputError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("missing coordinates: %s is required with its pair", e.Missing)
	}
	return "missing coordinates: have to set either lon/lat or x/y"
}

// LengthMismatchError indicates the two vectors of a coordinate pair differ in length
type LengthMismatchError struct {
	XName, YName string
	XLen, YLen   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s and %s have to be equally long: %s has %d values, %s has %d",
		e.XName, e.YName, e.XName, e.XLen, e.YName, e.YLen)
}

// ProjectionDomainError indicates a point outside the valid domain of the projection
type ProjectionDomainError struct {
	System     CoordinateSystem // system of the offending input
	X, Y       float64
	Projection Projection
	Reason     string
}

func (e *ProjectionDomainError) Error() string {
	return fmt.Sprintf("point (%s=%g, %s=%g) outside domain of UTM %s: %s",
		e.System.XName(), e.X, e.System.YName(), e.Y, e.Projection, e.Reason)
}
