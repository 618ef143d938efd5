package spectra

import (
	"fmt"
	"math"
	"time"

	"github.com/ctessum/sparse"

	"github.com/dnora/dnora/pkg/skeleton"
	"github.com/dnora/dnora/pkg/store"
)

// ERA5 spectral grid
const (
	ERA5FrequencyCount = 30
	ERA5DirectionCount = 24
	ERA5FirstFrequency = 0.03453 // Hz
	ERA5FrequencyRatio = 1.1
	ERA5FirstDirection = 7.5 // deg
	ERA5DirectionStep  = 15.0
	ERA5Source         = "ECMWF-ERA5 from Copernicus Climate Data Store"
)

// ERA5Frequencies returns the 30 logarithmically spaced ERA5 frequencies.
func ERA5Frequencies() []float64 {
	freq := make([]float64, ERA5FrequencyCount)
	for k := range freq {
		freq[k] = ERA5FirstFrequency * math.Pow(ERA5FrequencyRatio, float64(k))
	}
	return freq
}

// ERA5Directions returns the 24 ERA5 direction bin centers, 7.5 to 352.5.
func ERA5Directions() []float64 {
	dirs := make([]float64, ERA5DirectionCount)
	for k := range dirs {
		dirs[k] = ERA5FirstDirection + float64(k)*ERA5DirectionStep
	}
	return dirs
}

// RenormalizeERA5 converts log10-encoded ERA5 spectral values to energy
// density. Missing values become 0.
func RenormalizeERA5(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		out[i] = math.Pow(10, v)
	}
	return out
}

// ERA5Field is a 2D spectrum field as distributed by the CDS: log10 values
// laid out (time, freq, dir, lat, lon) with latitude descending.
type ERA5Field struct {
	Times  []time.Time
	Lon    []float64
	Lat    []float64 // descending, as stored in the file
	Values *sparse.DenseArray
}

func (f *ERA5Field) check() error {
	want := []int{len(f.Times), ERA5FrequencyCount, ERA5DirectionCount, len(f.Lat), len(f.Lon)}
	axes := []string{skeleton.TimeAxis, skeleton.FrequencyAxis, skeleton.DirectionAxis, "latitude", "longitude"}
	if f.Values == nil {
		return fmt.Errorf("ERA5 field has no values")
	}
	for dim := range want {
		if dim >= len(f.Values.Shape) {
			return &store.ShapeMismatchError{Name: "d2fd", Axis: axes[dim], Dim: dim, Expected: want[dim], Actual: -1}
		}
		if f.Values.Shape[dim] != want[dim] {
			return &store.ShapeMismatchError{Name: "d2fd", Axis: axes[dim], Dim: dim, Expected: want[dim], Actual: f.Values.Shape[dim]}
		}
	}
	if len(f.Values.Shape) > len(want) {
		return &store.ShapeMismatchError{Name: "d2fd", Dim: len(want), Expected: -1, Actual: f.Values.Shape[len(want)]}
	}
	return nil
}

// Stations returns the coordinates of every field point with latitude flipped
// to ascending, longitude varying fastest. Station indices used by Boundary
// refer to this order.
func (f *ERA5Field) Stations() (lon, lat []float64) {
	nlat, nlon := len(f.Lat), len(f.Lon)
	lon, lat = make([]float64, 0, nlat*nlon), make([]float64, 0, nlat*nlon)
	for j := nlat - 1; j >= 0; j-- {
		for i := 0; i < nlon; i++ {
			lon = append(lon, f.Lon[i])
			lat = append(lat, f.Lat[j])
		}
	}
	return lon, lat
}

// Boundary renormalizes the field and reshapes it to boundary spectra
// (time, inds, freq, dirs) at the selected stations. A nil inds selects all
// stations.
func (f *ERA5Field) Boundary(inds []int, opts ...skeleton.Option) (*Boundary, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	lon, lat := f.Stations()
	if inds == nil {
		inds = make([]int, len(lon))
		for i := range inds {
			inds[i] = i
		}
	}

	slon, slat := make([]float64, len(inds)), make([]float64, len(inds))
	for i, ind := range inds {
		if ind < 0 || ind >= len(lon) {
			return nil, fmt.Errorf("station %d out of range [0, %d)", ind, len(lon))
		}
		slon[i], slat[i] = lon[ind], lat[ind]
	}

	nt, nf, nd := len(f.Times), ERA5FrequencyCount, ERA5DirectionCount
	nlat, nlon := len(f.Lat), len(f.Lon)
	values := RenormalizeERA5(f.Values.Elements)

	spec := sparse.ZerosDense(nt, len(inds), nf, nd)
	for t := 0; t < nt; t++ {
		for s, ind := range inds {
			// Station order is flipped latitude outer, longitude inner
			jlat := nlat - 1 - ind/nlon
			ilon := ind % nlon
			for k := 0; k < nf; k++ {
				for d := 0; d < nd; d++ {
					src := (((t*nf+k)*nd+d)*nlat+jlat)*nlon + ilon
					dst := ((t*len(inds)+s)*nf+k)*nd + d
					spec.Elements[dst] = values[src]
				}
			}
		}
	}

	b, err := NewBoundary(skeleton.Coordinates{Lon: slon, Lat: slat}, opts...)
	if err != nil {
		return nil, err
	}
	if err := b.Assign(f.Times, ERA5Frequencies(), ERA5Directions(), spec); err != nil {
		return nil, err
	}
	b.SetAttr("source", ERA5Source)
	return b, nil
}
