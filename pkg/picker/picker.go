// Package picker selects which available spectral points are used as boundary
// conditions for a grid.
package picker

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/dnora/dnora/pkg/grid"
	"github.com/dnora/dnora/pkg/skeleton"
)

// Picker returns the indices of the available points to use for the boundary of
// g, sorted and without duplicates.
type Picker interface {
	Pick(g *grid.Grid, available *skeleton.PointSkeleton) ([]int, error)
}

// Trivial picks every available point.
type Trivial struct{}

// Pick implements Picker.
func (Trivial) Pick(_ *grid.Grid, available *skeleton.PointSkeleton) ([]int, error) {
	return available.Inds(), nil
}

// NearestGridPoint picks, for every boundary point of the grid, the closest
// available point. Distances are measured in projected meters.
type NearestGridPoint struct {
	// MaxDist rejects matches farther away, in meters. Zero accepts any match.
	MaxDist float64

	// Log receives one debug entry per boundary point. Defaults to the logrus
	// standard logger.
	Log logrus.FieldLogger
}

// Pick implements Picker.
func (p NearestGridPoint) Pick(g *grid.Grid, available *skeleton.PointSkeleton) ([]int, error) {
	log := p.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	bx, by, err := g.BoundaryPoints(skeleton.Cartesian)
	if err != nil {
		return nil, fmt.Errorf("boundary points of %s: %w", g.Name(), err)
	}
	idx, err := available.Index()
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", available.Name(), err)
	}
	ax, ay, err := available.XY()
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var inds []int
	for i := range bx {
		ind, dist, ok := idx.Nearest(bx[i], by[i])
		if !ok {
			break
		}
		fields := logrus.Fields{
			"grid_x":  bx[i],
			"grid_y":  by[i],
			"point":   ind,
			"point_x": ax[ind],
			"point_y": ay[ind],
			"dist_km": dist / 1000,
		}
		if p.MaxDist > 0 && dist > p.MaxDist {
			log.WithFields(fields).Debug("nearest spectral point too far, skipping")
			continue
		}
		log.WithFields(fields).Debug("picked spectral point")
		if !seen[ind] {
			seen[ind] = true
			inds = append(inds, ind)
		}
	}
	sort.Ints(inds)

	log.WithFields(logrus.Fields{
		"grid":            g.Name(),
		"boundary_points": len(bx),
		"available":       idx.Len(),
		"picked":          len(inds),
	}).Info("picked boundary spectra")
	return inds, nil
}
