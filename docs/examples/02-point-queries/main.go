package main

import (
	"fmt"
	"log"

	"github.com/sirupsen/logrus"

	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/grid"
	"github.com/dnora/dnora/pkg/picker"
	"github.com/dnora/dnora/pkg/skeleton"
	"github.com/dnora/dnora/pkg/spectra"
)

func main() {
	// Spectral output points, e.g. from a regional hindcast
	points, err := spectra.NewSpectra(skeleton.Coordinates{
		Lon: []float64{3.5, 4.0, 4.5, 5.0, 5.5, 6.0},
		Lat: []float64{60.5, 61.0, 61.5, 60.5, 61.0, 61.5},
	}, skeleton.WithName("hindcast"))
	if err != nil {
		log.Fatal(err)
	}

	// Build spatial index over projected coordinates
	index, err := points.Index()
	if err != nil {
		log.Fatal(err)
	}

	// Viewport query
	x0, y0, err := geo.DefaultConverter().PointToProjected(3.8, 60.8)
	if err != nil {
		log.Fatal(err)
	}
	x1, y1, err := geo.DefaultConverter().PointToProjected(5.2, 61.6)
	if err != nil {
		log.Fatal(err)
	}
	viewport := geo.Bounds{System: geo.Projected, MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
	fmt.Printf("Points in viewport: %v\n", index.InBounds(viewport))

	// Nearest point query
	ind, dist, ok := index.Nearest(x0, y0)
	if ok {
		fmt.Printf("Nearest to (3.8, 60.8): point %d at %.1f km\n", ind, dist/1000)
	}

	// Pick the spectra needed along the western edge of a grid
	g, err := grid.New(skeleton.Coordinates{Lon: []float64{4.0, 5.73}, Lat: []float64{60.53, 61.25}})
	if err != nil {
		log.Fatal(err)
	}
	if err := g.SetSpacing(grid.Spacing{NX: 10, NY: 10}); err != nil {
		log.Fatal(err)
	}
	if err := g.SetBoundary(grid.EdgesAsBoundary{Edges: []string{"W"}}); err != nil {
		log.Fatal(err)
	}

	inds, err := picker.NearestGridPoint{MaxDist: 50_000, Log: logrus.StandardLogger()}.Pick(g, points.PointSkeleton)
	if err != nil {
		log.Fatal(err)
	}
	lon, lat, err := points.LonLat()
	if err != nil {
		log.Fatal(err)
	}
	for _, i := range inds {
		fmt.Printf("  point %d: (%.2f, %.2f)\n", i, lon[i], lat[i])
	}
}
