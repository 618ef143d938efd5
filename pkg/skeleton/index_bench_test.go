package skeleton

import (
	"math"
	"testing"

	"github.com/dnora/dnora/pkg/geo"
)

// Benchmark R-tree queries against a linear scan over the same points.

// benchPoints spreads n points over a 100 km square.
func benchPoints(n int) (x, y []float64) {
	side := int(math.Sqrt(float64(n)))
	x, y = make([]float64, 0, n), make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x = append(x, 300000+float64(i%side)*100000/float64(side))
		y = append(y, 6700000+float64(i/side)*100000/float64(side))
	}
	return x, y
}

func linearNearest(x, y []float64, px, py float64) int {
	best, bestDist := -1, math.Inf(1)
	for i := range x {
		if d := math.Hypot(x[i]-px, y[i]-py); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// BenchmarkNearest_Rtree benchmarks nearest point queries with the R-tree index.
func BenchmarkNearest_Rtree(b *testing.B) {
	x, y := benchPoints(10000)
	idx, err := NewPointIndex(x, y)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = idx.Nearest(350123, 6750456)
	}
}

// BenchmarkNearest_Linear benchmarks nearest point queries with a linear scan.
func BenchmarkNearest_Linear(b *testing.B) {
	x, y := benchPoints(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = linearNearest(x, y, 350123, 6750456)
	}
}

// BenchmarkInBounds_Rtree benchmarks a 10 km viewport (~100 points).
func BenchmarkInBounds_Rtree(b *testing.B) {
	x, y := benchPoints(10000)
	idx, err := NewPointIndex(x, y)
	if err != nil {
		b.Fatal(err)
	}
	viewport := geo.Bounds{System: geo.Projected, MinX: 340000, MaxX: 350000, MinY: 6740000, MaxY: 6750000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.InBounds(viewport)
	}
}

// BenchmarkNewPointIndex benchmarks building the index.
func BenchmarkNewPointIndex(b *testing.B) {
	x, y := benchPoints(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewPointIndex(x, y); err != nil {
			b.Fatal(err)
		}
	}
}

func TestNearestMatchesLinearScan(t *testing.T) {
	x, y := benchPoints(400)
	idx, err := NewPointIndex(x, y)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range [][2]float64{{350123, 6750456}, {299000, 6699000}, {412000, 6810000}, {333333, 6777777}} {
		got, _, ok := idx.Nearest(q[0], q[1])
		if !ok {
			t.Fatalf("no neighbour for %v", q)
		}
		want := linearNearest(x, y, q[0], q[1])
		if math.Hypot(x[got]-q[0], y[got]-q[1]) != math.Hypot(x[want]-q[0], y[want]-q[1]) {
			t.Errorf("nearest to %v: got %d, linear scan found %d", q, got, want)
		}
	}
}
