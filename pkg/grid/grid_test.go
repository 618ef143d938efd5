package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/skeleton"
)

func newSkjerjehamn(t *testing.T) *Grid {
	t.Helper()
	g, err := New(skeleton.Coordinates{Lon: []float64{4.00, 5.73}, Lat: []float64{60.53, 61.25}}, skeleton.WithName("Skjerjehamn250"))
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	g := newSkjerjehamn(t)
	assert.Equal(t, "Skjerjehamn250", g.Name())
	assert.Equal(t, []int{2, 2}, g.Size())
	assert.Len(t, g.Masks(), 2)

	sea, err := g.Sea()
	require.NoError(t, err)
	assert.Equal(t, 4, sea.Count())

	bnd, err := g.GetMask(BoundaryMask, true)
	require.NoError(t, err)
	assert.Equal(t, 0, bnd.Count())

	b, err := g.GeoBounds()
	require.NoError(t, err)
	assert.Equal(t, geo.Bounds{System: geo.Geographic, MinX: 4.00, MaxX: 5.73, MinY: 60.53, MaxY: 61.25}, b)

	unnamed, err := New(skeleton.Coordinates{X: []float64{0, 1}, Y: []float64{0, 1}})
	require.NoError(t, err)
	assert.Equal(t, DefaultName, unnamed.Name())
}

func TestSetSpacingCounts(t *testing.T) {
	g, err := New(skeleton.Coordinates{Lon: []float64{4, 5}, Lat: []float64{60, 61}})
	require.NoError(t, err)

	require.NoError(t, g.SetSpacing(Spacing{NX: 5, NY: 3}))
	assert.Equal(t, []int{3, 5}, g.Size())
	assert.InDeltaSlice(t, []float64{4, 4.25, 4.5, 4.75, 5}, g.NativeX(), 1e-12)
	assert.InDeltaSlice(t, []float64{60, 60.5, 61}, g.NativeY(), 1e-12)

	require.NoError(t, g.SetSpacing(Spacing{DLon: 0.1, DLat: 0.25}))
	assert.Equal(t, []int{5, 11}, g.Size())
	dlon, err := g.DLon()
	require.NoError(t, err)
	assert.InDelta(t, 0.1, dlon, 1e-12)
}

func TestSetSpacingMeters(t *testing.T) {
	g := newSkjerjehamn(t)
	require.NoError(t, g.SetSpacing(Spacing{DM: 1000}))
	assert.Equal(t, 94, g.NX())
	assert.Equal(t, 81, g.NY())

	// Edges are kept
	lo, hi, err := g.LonEdges()
	require.NoError(t, err)
	assert.Equal(t, 4.00, lo)
	assert.InDelta(t, 5.73, hi, 1e-12)

	p, err := New(skeleton.Coordinates{X: []float64{400000, 410000}, Y: []float64{6700000, 6705000}})
	require.NoError(t, err)
	require.NoError(t, p.SetSpacing(Spacing{DM: 1000}))
	assert.Equal(t, []int{6, 11}, p.Size())
	dx, err := p.NativeDX()
	require.NoError(t, err)
	assert.InDelta(t, 1000, dx, 1e-9)

	require.NoError(t, p.SetSpacing(Spacing{DX: 2000, DY: 2500}))
	assert.Equal(t, []int{3, 6}, p.Size())
}

func TestSetSpacingErrors(t *testing.T) {
	g := newSkjerjehamn(t)
	for name, s := range map[string]Spacing{
		"none":       {},
		"two modes":  {DM: 250, NX: 10, NY: 10},
		"negative":   {DM: -250},
		"half count": {NX: 10},
		"half pair":  {DLon: 0.1},
		"tiny dm":    {DM: 1e-9},
		"tiny dlon":  {DLon: 1e-9, DLat: 1e-9},
		"huge count": {NX: 100_000, NY: 100_000},
	} {
		assert.Error(t, g.SetSpacing(s), name)
	}
	assert.Equal(t, []int{2, 2}, g.Size())
}

func TestSetSpacingDiscardsMasks(t *testing.T) {
	g := newSkjerjehamn(t)
	require.NoError(t, g.SetSea(&skeleton.MaskArray{Shape: []int{2, 2}, Values: []bool{true, false, true, true}}))
	require.NoError(t, g.SetSpacing(Spacing{NX: 3, NY: 3}))

	m, err := g.GetMask(SeaMask, false)
	require.NoError(t, err)
	assert.Nil(t, m)
	sea, err := g.Sea()
	require.NoError(t, err)
	assert.Equal(t, 9, sea.Count())
}

func TestEdgesAsBoundary(t *testing.T) {
	m, err := EdgesAsBoundary{Edges: []string{"N", "w"}, Step: 2}.Boundary([]int{4, 5})
	require.NoError(t, err)
	want := []bool{
		true, false, false, false, false, // j=0
		false, false, false, false, false,
		true, false, false, false, false,
		true, false, true, false, true, // j=3, north
	}
	assert.Equal(t, want, m.Values)

	all, err := EdgesAsBoundary{}.Boundary([]int{3, 3})
	require.NoError(t, err)
	assert.Equal(t, 8, all.Count())

	_, err = EdgesAsBoundary{Edges: []string{"NE"}}.Boundary([]int{3, 3})
	assert.Error(t, err)
	_, err = EdgesAsBoundary{}.Boundary([]int{3})
	assert.Error(t, err)

	mid, err := MidPointAsBoundary{}.Boundary([]int{3, 3})
	require.NoError(t, err)
	assert.True(t, mid.Values[4])
	assert.Equal(t, 1, mid.Count())
}

func TestSetBoundaryOnlyMarksSea(t *testing.T) {
	g, err := New(skeleton.Coordinates{X: []float64{0, 1, 2}, Y: []float64{0, 1}})
	require.NoError(t, err)
	require.NoError(t, g.SetSea(&skeleton.MaskArray{Shape: []int{2, 3}, Values: []bool{true, true, false, true, true, true}}))

	require.NoError(t, g.SetBoundary(EdgesAsBoundary{Edges: []string{"S"}}))
	m, err := g.GetMask(BoundaryMask, false)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Count())

	x, y, err := g.BoundaryPoints(skeleton.Native)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, x)
	assert.Equal(t, []float64{0, 0}, y)

	assert.Error(t, g.SetBoundary(EdgesAsBoundary{Edges: []string{"X"}}))
}
