package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/skeleton"
	"github.com/dnora/dnora/pkg/spectra"
	"github.com/dnora/dnora/pkg/store"
)

func describe(err error) string {
	var (
		ambiguous *geo.AmbiguousInputError
		missing   *geo.MissingInputError
		lengths   *geo.LengthMismatchError
		domain    *geo.ProjectionDomainError
		shape     *store.ShapeMismatchError
		mask      *skeleton.UnknownMaskError
	)
	switch {
	case errors.As(err, &ambiguous):
		return "both coordinate systems given"
	case errors.As(err, &missing):
		return "incomplete coordinates: " + missing.Missing
	case errors.As(err, &lengths):
		return fmt.Sprintf("%s has %d values, %s has %d", lengths.XName, lengths.XLen, lengths.YName, lengths.YLen)
	case errors.As(err, &domain):
		return "outside projection: " + domain.Reason
	case errors.As(err, &shape):
		return fmt.Sprintf("%s: %s axis expects %d values, got %d", shape.Name, shape.Axis, shape.Expected, shape.Actual)
	case errors.As(err, &mask):
		return "no mask named " + mask.Mask
	}
	return err.Error()
}

func main() {
	// Half a coordinate pair
	_, err := skeleton.NewPointSkeleton(skeleton.Coordinates{Lon: []float64{5, 6}})
	log.Printf("Expected error: %s", describe(err))

	// Vectors of different length
	_, err = skeleton.NewPointSkeleton(skeleton.Coordinates{X: []float64{0, 1, 2}, Y: []float64{0, 1}})
	log.Printf("Expected error: %s", describe(err))

	// Point far outside the UTM zone
	p, err := skeleton.NewPointSkeleton(skeleton.Coordinates{Lon: []float64{-120}, Lat: []float64{45}})
	if err != nil {
		log.Fatal(err)
	}
	_, err = p.X()
	log.Printf("Expected error: %s", describe(err))

	// Spectrum of the wrong shape
	s, err := spectra.NewSpectra(skeleton.Coordinates{Lon: []float64{5, 6}, Lat: []float64{60, 61}})
	if err != nil {
		log.Fatal(err)
	}
	bad, err := store.NewArray([]int{3, 3}, nil)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Expected error: %s", describe(s.SetSpec(bad)))

	// Unknown mask
	_, err = s.GetMask("land", true)
	log.Printf("Expected error: %s", describe(err))

	fmt.Println("Spectra unchanged:", s.Spec().Shape)
}
