package skeleton

import (
	"time"

	"github.com/dnora/dnora/pkg/geo"
)

// DefaultName is the name given to skeletons created without WithName.
const DefaultName = "LonelySkeleton"

// Coordinates holds the raw vectors a skeleton is created from. Exactly one of
// the pairs (X, Y) and (Lon, Lat) has to be set.
type Coordinates struct {
	X, Y     []float64
	Lon, Lat []float64
}

// Options configures skeleton construction.
type Options struct {
	Name string

	// Times, when non-nil, attaches a time axis holding these values.
	Times []time.Time

	// Projection selects the UTM zone and band of the converter. It is ignored
	// when Converter is set.
	Projection geo.Projection

	// Converter derives the foreign coordinate pair. A nil Converter is built
	// from Projection.
	Converter *geo.Converter

	Masks      []MaskSpec
	Dimensions []Dimension
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Name:       DefaultName,
		Projection: geo.DefaultProjection(),
	}
}

// Option modifies Options.
type Option func(*Options)

// WithName sets the skeleton name.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithTime attaches a time axis with the given values. If TimeDimension is
// also applied, these values replace its defaults.
func WithTime(times []time.Time) Option {
	return func(o *Options) { o.Times = append([]time.Time{}, times...) }
}

// WithProjection selects the projection used for coordinate conversion.
func WithProjection(p geo.Projection) Option {
	return func(o *Options) { o.Projection = p }
}

// WithConverter shares an existing converter.
func WithConverter(c *geo.Converter) Option {
	return func(o *Options) { o.Converter = c }
}

// WithMasks registers masks at construction.
func WithMasks(masks ...MaskSpec) Option {
	return func(o *Options) { o.Masks = append(o.Masks, masks...) }
}

// WithDimensions applies dimension extensions with their default values.
func WithDimensions(dims ...Dimension) Option {
	return func(o *Options) { o.Dimensions = append(o.Dimensions, dims...) }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
