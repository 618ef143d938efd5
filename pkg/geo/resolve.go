package geo

// Resolve determines the native coordinate system of a point set and returns its
// canonical coordinate vectors.
//
// Exactly one of the pairs (x, y) and (lon, lat) must be supplied; a nil slice
// means "not supplied". The returned vectors are copies of the given values in
// the native system, no conversion is done here.
//
// Errors:
//   - *AmbiguousInputError if both pairs are supplied
//   - *MissingInputError if neither pair is complete
//   - *LengthMismatchError if the chosen pair differs in length
func Resolve(x, y, lon, lat []float64) (CoordinateSystem, []float64, []float64, error) {
	sys, xvec, yvec, err := resolve(x, y, lon, lat)
	if err != nil {
		return 0, nil, nil, err
	}
	if len(xvec) != len(yvec) {
		return 0, nil, nil, &LengthMismatchError{
			XName: sys.XName(), YName: sys.YName(),
			XLen: len(xvec), YLen: len(yvec),
		}
	}
	return sys, xvec, yvec, nil
}

// ResolveAxes is Resolve for the two independent axes of a structured grid.
// The axes may differ in length.
func ResolveAxes(x, y, lon, lat []float64) (CoordinateSystem, []float64, []float64, error) {
	return resolve(x, y, lon, lat)
}

func resolve(x, y, lon, lat []float64) (CoordinateSystem, []float64, []float64, error) {
	xyGiven := x != nil || y != nil
	lonlatGiven := lon != nil || lat != nil

	if xyGiven && lonlatGiven {
		return 0, nil, nil, &AmbiguousInputError{}
	}
	if !xyGiven && !lonlatGiven {
		return 0, nil, nil, &MissingInputError{}
	}

	sys, xvec, yvec := Projected, x, y
	if lonlatGiven {
		sys, xvec, yvec = Geographic, lon, lat
	}

	// Half pairs are rejected rather than ignored
	if xvec == nil {
		return 0, nil, nil, &MissingInputError{Missing: sys.XName()}
	}
	if yvec == nil {
		return 0, nil, nil, &MissingInputError{Missing: sys.YName()}
	}

	return sys, append([]float64{}, xvec...), append([]float64{}, yvec...), nil
}
