package grid

import (
	"fmt"
	"strings"

	"github.com/dnora/dnora/pkg/skeleton"
)

// EdgesAsBoundary marks cells along the grid edges as boundary points.
//
// Edges lists any of "N", "S", "E" and "W"; an empty list means all four.
// Every Step-th cell along an edge is marked, starting at the south-west end.
type EdgesAsBoundary struct {
	Edges []string
	Step  int
}

// Boundary implements BoundarySetter for a (ny, nx) grid.
func (e EdgesAsBoundary) Boundary(size []int) (*skeleton.MaskArray, error) {
	if len(size) != 2 {
		return nil, fmt.Errorf("edges need a 2D grid, got size %v", size)
	}
	ny, nx := size[0], size[1]
	step := e.Step
	if step <= 0 {
		step = 1
	}
	edges := e.Edges
	if len(edges) == 0 {
		edges = []string{"N", "W", "S", "E"}
	}

	m := skeleton.FullMask(size, false)
	if ny == 0 || nx == 0 {
		return m, nil
	}
	set := func(j, i int) { m.Values[j*nx+i] = true }

	for _, edge := range edges {
		switch strings.ToUpper(edge) {
		case "N":
			for i := 0; i < nx; i += step {
				set(ny-1, i)
			}
		case "S":
			for i := 0; i < nx; i += step {
				set(0, i)
			}
		case "E":
			for j := 0; j < ny; j += step {
				set(j, nx-1)
			}
		case "W":
			for j := 0; j < ny; j += step {
				set(j, 0)
			}
		default:
			return nil, fmt.Errorf("unknown edge %q, use N, S, E or W", edge)
		}
	}
	return m, nil
}

// MidPointAsBoundary marks the single center cell as boundary point.
type MidPointAsBoundary struct{}

// Boundary implements BoundarySetter.
func (MidPointAsBoundary) Boundary(size []int) (*skeleton.MaskArray, error) {
	m := skeleton.FullMask(size, false)
	if len(m.Values) > 0 {
		m.Values[len(m.Values)/2] = true
	}
	return m, nil
}
