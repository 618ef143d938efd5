package geo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		x, y, lon, la []float64
		wantSys       CoordinateSystem
		wantErr       interface{}
	}{
		{name: "projected", x: []float64{0, 1, 2}, y: []float64{0, 1, 2}, wantSys: Projected},
		{name: "geographic", lon: []float64{4}, la: []float64{60}, wantSys: Geographic},
		{name: "empty vectors", x: []float64{}, y: []float64{}, wantSys: Projected},
		{name: "both pairs", x: []float64{0}, y: []float64{0}, lon: []float64{4}, la: []float64{60}, wantErr: &AmbiguousInputError{}},
		{name: "x with lat", x: []float64{0}, la: []float64{60}, wantErr: &AmbiguousInputError{}},
		{name: "neither pair", wantErr: &MissingInputError{}},
		{name: "half pair", lon: []float64{4}, wantErr: &MissingInputError{}},
		{name: "unequal", x: []float64{0, 1}, y: []float64{0}, wantErr: &LengthMismatchError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, xv, yv, err := Resolve(tt.x, tt.y, tt.lon, tt.la)
			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, tt.wantSys, sys)
				assert.Equal(t, len(xv), len(yv))
			case *AmbiguousInputError:
				assert.True(t, errors.As(err, &want), "got %v", err)
			case *MissingInputError:
				assert.True(t, errors.As(err, &want), "got %v", err)
			case *LengthMismatchError:
				require.True(t, errors.As(err, &want), "got %v", err)
				assert.Equal(t, 2, want.XLen)
				assert.Equal(t, 1, want.YLen)
			}
		})
	}
}

func TestResolveHalfPairNamesMissingVector(t *testing.T) {
	_, _, _, err := Resolve(nil, nil, []float64{4}, nil)
	var missing *MissingInputError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "lat", missing.Missing)
}

func TestResolveCopiesInput(t *testing.T) {
	x := []float64{0, 1}
	_, xv, _, err := Resolve(x, []float64{0, 1}, nil, nil)
	require.NoError(t, err)
	xv[0] = 42
	assert.Equal(t, 0.0, x[0])
}

func TestResolveAxesAllowsDifferentLengths(t *testing.T) {
	sys, xv, yv, err := ResolveAxes(nil, nil, []float64{4, 5, 6}, []float64{60, 61})
	require.NoError(t, err)
	assert.Equal(t, Geographic, sys)
	assert.Len(t, xv, 3)
	assert.Len(t, yv, 2)
}

func TestProjection(t *testing.T) {
	p := DefaultProjection()
	assert.Equal(t, 33, p.Zone)
	assert.Equal(t, byte('W'), p.Band)
	assert.Equal(t, "33W", p.String())
	assert.False(t, p.Southern())
	assert.Equal(t, 15.0, p.CentralMeridian())
	assert.NotContains(t, p.Proj4(), "+south")

	south, err := ParseProjection("56 h")
	require.NoError(t, err)
	assert.True(t, south.Southern())
	assert.Contains(t, south.Proj4(), "+south")

	for _, bad := range []string{"", "61W", "0W", "33I", "33Z", "xxW", "3x3W", "33.9W", "33abcW", "+33W", "W"} {
		_, err := ParseProjection(bad)
		assert.Error(t, err, bad)
	}
}

func TestConverterRoundTrip(t *testing.T) {
	c := DefaultConverter()
	lon := []float64{4.0, 5.73, 10.5, 15.0}
	lat := []float64{60.53, 61.25, 59.9, 70.0}

	x, y, err := c.ToProjected(lon, lat)
	require.NoError(t, err)

	// The central meridian maps onto the false easting
	assert.InDelta(t, 500000.0, x[3], 1e-6)

	// The series expansion loses accuracy away from the central meridian; 1e-4
	// degrees is a few meters at 11 degrees off.
	lon2, lat2, err := c.ToGeographic(x, y)
	require.NoError(t, err)
	for i := range lon {
		assert.InDelta(t, lon[i], lon2[i], 1e-4)
		assert.InDelta(t, lat[i], lat2[i], 1e-4)
	}
}

func TestConverterForcedZone(t *testing.T) {
	// 4E lies in zone 31, but the forced zone 33 still projects it west of the
	// false easting.
	x, _, err := DefaultConverter().PointToProjected(4.0, 60.53)
	require.NoError(t, err)
	assert.Less(t, x, 500000.0)
}

func TestConverterDomain(t *testing.T) {
	c := DefaultConverter()
	tests := []struct {
		name     string
		lon, lat float64
	}{
		{"polar", 15, 85},
		{"south polar", 15, -81},
		{"off meridian", 100, 60},
		{"out of range", 200, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.PointToProjected(tt.lon, tt.lat)
			var domain *ProjectionDomainError
			require.True(t, errors.As(err, &domain), "got %v", err)
			assert.Equal(t, Geographic, domain.System)
		})
	}

	_, _, err := c.PointToGeographic(500000, -10)
	var domain *ProjectionDomainError
	require.True(t, errors.As(err, &domain))
	assert.Equal(t, Projected, domain.System)

	_, _, err = c.ToProjected([]float64{1}, []float64{1, 2})
	var mismatch *LengthMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestConvertSameSystemCopies(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{3, 4}
	x, y, err := DefaultConverter().Convert(Projected, Projected, a, b)
	require.NoError(t, err)
	x[0], y[0] = 9, 9
	assert.Equal(t, []float64{1, 2}, a)
	assert.Equal(t, []float64{3, 4}, b)
}

func TestBounds(t *testing.T) {
	b := BoundsOf(Geographic, []float64{4.0, 5.73, 5.0}, []float64{61.25, 60.53, 61.0})
	assert.Equal(t, Bounds{System: Geographic, MinX: 4.0, MaxX: 5.73, MinY: 60.53, MaxY: 61.25}, b)
	assert.True(t, b.Contains(5, 61))
	assert.False(t, b.Contains(6, 61))
	assert.InDelta(t, 1.73, b.Width(), 1e-12)

	other := Bounds{System: Geographic, MinX: 5.5, MaxX: 7, MinY: 61, MaxY: 62}
	assert.True(t, b.Intersects(other))
	u := b.Union(other)
	assert.Equal(t, 7.0, u.MaxX)
	assert.Equal(t, 60.53, u.MinY)

	e := b.Expand(1)
	assert.Equal(t, 3.0, e.MinX)

	assert.Equal(t, Bounds{System: Projected}, BoundsOf(Projected, nil, nil))
}

func TestSystemNames(t *testing.T) {
	assert.Equal(t, "lon", Geographic.XName())
	assert.Equal(t, "lat", Geographic.YName())
	assert.Equal(t, "x", Projected.XName())
	assert.Equal(t, "y", Projected.YName())
	assert.Equal(t, Projected, Geographic.Other())
	assert.Equal(t, "Unknown", CoordinateSystem(7).String())
}
