package config

// This package contains the data structures
// used to keep the run configuration
// of the command.

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/grid"
	"github.com/dnora/dnora/pkg/skeleton"
)

// SpacingConf requests a grid resolution. At most one mode may be set; an
// empty section keeps the grid at its edges.
type SpacingConf struct {
	DLon float64 `toml:"dlon"`
	DLat float64 `toml:"dlat"`
	DX   float64 `toml:"dx"`
	DY   float64 `toml:"dy"`
	DM   float64 `toml:"dm"`
	NX   int     `toml:"nx"`
	NY   int     `toml:"ny"`
}

// Spacing converts the section to a grid.Spacing.
func (s SpacingConf) Spacing() grid.Spacing {
	return grid.Spacing{DLon: s.DLon, DLat: s.DLat, DX: s.DX, DY: s.DY, DM: s.DM, NX: s.NX, NY: s.NY}
}

// IsZero reports whether no spacing was requested.
func (s SpacingConf) IsZero() bool {
	return s == SpacingConf{}
}

// GridConf describes the area of the grid by its edges, either lon/lat or x/y.
type GridConf struct {
	Name    string      `toml:"name"`
	Lon     []float64   `toml:"lon"`
	Lat     []float64   `toml:"lat"`
	X       []float64   `toml:"x"`
	Y       []float64   `toml:"y"`
	Spacing SpacingConf `toml:"spacing"`
}

// BoundaryConf selects the boundary points of the grid.
type BoundaryConf struct {
	// Edges lists the edges (N, W, S, E) used as boundary.
	Edges []string `toml:"edges"`

	// Step marks every Step-th cell along an edge.
	Step int `toml:"step"`

	// MidPoint uses the middle cell as the only boundary point.
	MidPoint bool `toml:"midpoint"`
}

// Setter returns the boundary setter described by the section, or nil when
// no boundary was requested.
func (b BoundaryConf) Setter() grid.BoundarySetter {
	switch {
	case b.MidPoint:
		return grid.MidPointAsBoundary{}
	case len(b.Edges) > 0:
		return grid.EdgesAsBoundary{Edges: b.Edges, Step: b.Step}
	}
	return nil
}

// OutputConf contains the paths of files written by the command.
type OutputConf struct {
	// NetCDF is the grid file. Empty disables the output.
	NetCDF string `toml:"netcdf"`
}

// Configuration contains all configuration
// sub structures
type Configuration struct {
	// Projection is the UTM zone/band designator, e.g. "33W". Empty uses
	// geo.DefaultProjection.
	Projection string       `toml:"projection"`
	Grid       GridConf     `toml:"grid"`
	Boundary   BoundaryConf `toml:"boundary"`
	Output     OutputConf   `toml:"output"`
}

// Load reads the configuration from confFile. Relative output paths are
// resolved against the directory of confFile.
func Load(confFile string) (*Configuration, error) {
	var c Configuration
	md, err := toml.DecodeFile(confFile, &c)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s", confFile, strings.Join(keys, ", "))
	}

	confDir := filepath.Dir(confFile)
	if c.Output.NetCDF != "" && !filepath.IsAbs(c.Output.NetCDF) {
		c.Output.NetCDF = filepath.Join(confDir, c.Output.NetCDF)
	}
	if _, err := c.Proj(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}

// Proj returns the configured projection.
func (c *Configuration) Proj() (geo.Projection, error) {
	if c.Projection == "" {
		return geo.DefaultProjection(), nil
	}
	return geo.ParseProjection(c.Projection)
}

// Converter returns a converter for the configured projection.
func (c *Configuration) Converter() (*geo.Converter, error) {
	p, err := c.Proj()
	if err != nil {
		return nil, err
	}
	return geo.NewConverter(p)
}

// BuildGrid creates the configured grid, applies the spacing and sets the
// boundary mask.
func (c *Configuration) BuildGrid() (*grid.Grid, error) {
	conv, err := c.Converter()
	if err != nil {
		return nil, err
	}
	opts := []skeleton.Option{skeleton.WithConverter(conv)}
	if c.Grid.Name != "" {
		opts = append(opts, skeleton.WithName(c.Grid.Name))
	}

	g, err := grid.New(skeleton.Coordinates{X: c.Grid.X, Y: c.Grid.Y, Lon: c.Grid.Lon, Lat: c.Grid.Lat}, opts...)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	if !c.Grid.Spacing.IsZero() {
		if err := g.SetSpacing(c.Grid.Spacing.Spacing()); err != nil {
			return nil, fmt.Errorf("grid spacing: %w", err)
		}
	}
	if setter := c.Boundary.Setter(); setter != nil {
		if err := g.SetBoundary(setter); err != nil {
			return nil, fmt.Errorf("boundary: %w", err)
		}
	}
	return g, nil
}
