package ncio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnora/dnora/pkg/skeleton"
	"github.com/dnora/dnora/pkg/spectra"
	"github.com/dnora/dnora/pkg/store"
)

func TestRoundTrip(t *testing.T) {
	times := skeleton.HourlyTimes(time.Date(2021, 3, 4, 6, 0, 0, 0, time.UTC), 3)
	s, err := store.New("boundary",
		store.TimeCoord("time", times),
		store.NumericCoord("inds", []float64{0, 1}),
		store.NumericCoord("freq", []float64{0.05, 0.1}),
	)
	require.NoError(t, err)
	s.SetAttr("source", "test")

	spec, err := store.NewArray([]int{3, 2, 2}, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	require.NoError(t, err)
	lon, err := store.NewArray([]int{2}, []float64{4.5, 5.25})
	require.NoError(t, err)
	require.NoError(t, s.Put(
		store.Variable{Name: "spec", Dims: []string{"time", "inds", "freq"}, Data: spec},
		store.Variable{Name: "lon", Dims: []string{"inds"}, Data: lon},
	))

	path := filepath.Join(t.TempDir(), "boundary.nc")
	require.NoError(t, Write(path, s))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "boundary", got.Name())
	assert.Equal(t, map[string]string{"source": "test"}, got.Attrs())
	assert.Equal(t, []string{"time", "inds", "freq"}, got.CoordNames())

	tc, ok := got.Coord("time")
	require.True(t, ok)
	require.True(t, tc.IsTime())
	for i := range times {
		assert.True(t, times[i].Equal(tc.Times[i]), "time %d: %v", i, tc.Times[i])
	}
	fc, _ := got.Coord("freq")
	assert.Equal(t, []float64{0.05, 0.1}, fc.Values)

	assert.Equal(t, []string{"lon", "spec"}, got.VariableNames())
	v, ok := got.Variable("spec")
	require.True(t, ok)
	assert.Equal(t, []string{"time", "inds", "freq"}, v.Dims)
	assert.Equal(t, []int{3, 2, 2}, v.Data.Shape)
	assert.Equal(t, spec.Elements, v.Data.Elements)

	vals, _ := got.Values("lon")
	assert.Equal(t, []float64{4.5, 5.25}, vals)
}

func TestRoundTripBoundary(t *testing.T) {
	b, err := spectra.NewBoundary(skeleton.Coordinates{Lon: []float64{4, 5}, Lat: []float64{60, 60.5}}, skeleton.WithName("bnd"))
	require.NoError(t, err)
	spec := b.Spec()
	for i := range spec.Elements {
		spec.Elements[i] = float64(i) / 10
	}
	require.NoError(t, b.SetSpec(spec))

	path := filepath.Join(t.TempDir(), "bnd.nc")
	require.NoError(t, Write(path, b.Snapshot()))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "bnd", got.Name())
	want := b.Snapshot()
	assert.Equal(t, want.CoordNames(), got.CoordNames())
	assert.Equal(t, want.VariableNames(), got.VariableNames())
	for _, name := range want.VariableNames() {
		w, _ := want.Values(name)
		g, _ := got.Values(name)
		assert.Equal(t, w, g, name)
	}
}

func TestWriteRejects(t *testing.T) {
	dir := t.TempDir()

	empty, err := store.New("empty", store.NumericCoord("inds", []float64{}))
	require.NoError(t, err)
	assert.Error(t, Write(filepath.Join(dir, "empty.nc"), empty))

	named, err := store.New("named", store.NumericCoord("inds", []float64{0}))
	require.NoError(t, err)
	named.SetAttr(NameAttribute, "other")
	assert.Error(t, Write(filepath.Join(dir, "named.nc"), named))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.nc"))
	assert.Error(t, err)
}
