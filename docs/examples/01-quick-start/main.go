package main

import (
	"fmt"
	"log"

	"github.com/dnora/dnora/pkg/grid"
	"github.com/dnora/dnora/pkg/skeleton"
)

func main() {
	// Create grid from its edges
	g, err := grid.New(skeleton.Coordinates{
		Lon: []float64{4.00, 5.73},
		Lat: []float64{60.53, 61.25},
	}, skeleton.WithName("Skjerjehamn250"))
	if err != nil {
		log.Fatal(err)
	}

	// Refine to roughly 250 m
	if err := g.SetSpacing(grid.Spacing{DM: 250}); err != nil {
		log.Fatal(err)
	}

	// Northern and western edges are open boundaries
	if err := g.SetBoundary(grid.EdgesAsBoundary{Edges: []string{"N", "W"}}); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Grid: %s\n", g.Name())
	fmt.Printf("Size: %d x %d\n", g.NX(), g.NY())

	dx, err := g.DX()
	if err != nil {
		log.Fatal(err)
	}
	dy, err := g.DY()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Spacing: %.1f m x %.1f m\n", dx, dy)

	// Boundary points in UTM coordinates
	x, y, err := g.BoundaryPoints(skeleton.Cartesian)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Boundary points: %d\n", len(x))
	fmt.Printf("First: (%.0f, %.0f)\n", x[0], y[0])
}
