package spectra

import (
	"github.com/dnora/dnora/pkg/skeleton"
)

// Spectra holds omnidirectional spectra, laid out (inds, freq).
type Spectra struct {
	*entity
}

// NewSpectra creates zeroed spectra at the given points with the default
// frequencies.
func NewSpectra(c skeleton.Coordinates, opts ...skeleton.Option) (*Spectra, error) {
	e, err := newEntity(c, []skeleton.Dimension{skeleton.FrequencyDimension()}, opts)
	if err != nil {
		return nil, err
	}
	return &Spectra{entity: e}, nil
}

// SpectraFrom creates spectra at every point of src, in src's native system.
func SpectraFrom(src skeleton.Skeleton, opts ...skeleton.Option) (*Spectra, error) {
	opts = append([]skeleton.Option{skeleton.WithConverter(src.Converter())}, opts...)
	return NewSpectra(coordinatesOf(src), opts...)
}
