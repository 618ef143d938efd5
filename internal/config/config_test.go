package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/grid"
	"github.com/dnora/dnora/pkg/skeleton"
)

const skjerjehamn = `
projection = "33W"

[grid]
name = "Skjerjehamn250"
lon = [4.00, 5.73]
lat = [60.53, 61.25]

[grid.spacing]
dm = 1000.0

[boundary]
edges = ["N"]
step = 1

[output]
netcdf = "out/grid.nc"
`

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConf(t, skjerjehamn)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Skjerjehamn250", c.Grid.Name)
	assert.Equal(t, []float64{4.00, 5.73}, c.Grid.Lon)
	assert.Equal(t, 1000.0, c.Grid.Spacing.DM)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "out", "grid.nc"), c.Output.NetCDF)

	p, err := c.Proj()
	require.NoError(t, err)
	assert.Equal(t, geo.Projection{Zone: 33, Band: 'W'}, p)
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConf(t, "[grid]\nx = [0.0, 1000.0]\ny = [0.0, 1000.0]\n"))
	require.NoError(t, err)

	p, err := c.Proj()
	require.NoError(t, err)
	assert.Equal(t, geo.DefaultProjection(), p)
	assert.True(t, c.Grid.Spacing.IsZero())
	assert.Nil(t, c.Boundary.Setter())
	assert.Empty(t, c.Output.NetCDF)

	abs := filepath.Join(t.TempDir(), "abs.nc")
	c, err = Load(writeConf(t, "[output]\nnetcdf = \""+filepath.ToSlash(abs)+"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(abs), filepath.ToSlash(c.Output.NetCDF))
}

func TestLoadErrors(t *testing.T) {
	for name, content := range map[string]string{
		"syntax":      "[grid\n",
		"unknown key": "[grid]\nlon = [4.0, 5.0]\nlat = [60.0, 61.0]\nresolution = 3\n",
		"projection":  "projection = \"61Z\"\n",
	} {
		_, err := Load(writeConf(t, content))
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestBuildGrid(t *testing.T) {
	c, err := Load(writeConf(t, skjerjehamn))
	require.NoError(t, err)

	g, err := c.BuildGrid()
	require.NoError(t, err)
	assert.Equal(t, "Skjerjehamn250", g.Name())
	assert.Equal(t, []int{81, 94}, g.Size())

	bnd, err := g.GetMask(grid.BoundaryMask, false)
	require.NoError(t, err)
	require.NotNil(t, bnd)
	assert.Equal(t, 94, bnd.Count())
}

func TestBuildGridErrors(t *testing.T) {
	for name, content := range map[string]string{
		"no edges":     "[grid]\nname = \"empty\"\n",
		"both systems": "[grid]\nlon = [4.0, 5.0]\nlat = [60.0, 61.0]\nx = [0.0, 1.0]\ny = [0.0, 1.0]\n",
		"two spacings": "[grid]\nlon = [4.0, 5.0]\nlat = [60.0, 61.0]\n[grid.spacing]\ndm = 500.0\nnx = 4\nny = 4\n",
		"unknown edge": "[grid]\nlon = [4.0, 5.0]\nlat = [60.0, 61.0]\n[boundary]\nedges = [\"Q\"]\n",
	} {
		c, err := Load(writeConf(t, content))
		require.NoError(t, err, name)
		_, err = c.BuildGrid()
		assert.Error(t, err, name)
	}

	mid := &Configuration{Grid: GridConf{X: []float64{0, 2000}, Y: []float64{0, 2000}, Spacing: SpacingConf{NX: 3, NY: 3}}, Boundary: BoundaryConf{MidPoint: true}}
	g, err := mid.BuildGrid()
	require.NoError(t, err)
	x, y, err := g.BoundaryPoints(skeleton.Native)
	require.NoError(t, err)
	assert.Equal(t, []float64{1000}, x)
	assert.Equal(t, []float64{1000}, y)
}
