package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dnora/dnora/internal/config"
	"github.com/dnora/dnora/internal/ncio"
	"github.com/dnora/dnora/pkg/geo"
	"github.com/dnora/dnora/pkg/grid"
)

// Version is the version of dnora.
const Version = "0.1.0"

var (
	verbose    bool
	configFile string
	projection string
	workers    int

	lon, lat, x, y float64
)

// Log is the logger used by all commands.
var Log = logrus.StandardLogger()

func init() {
	Root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")

	gridCmd.Flags().StringVar(&configFile, "config", "", "run configuration file (TOML)")
	gridCmd.MarkFlagRequired("config")

	convertCmd.Flags().StringVar(&configFile, "config", "", "run configuration file (TOML) holding the projection")
	convertCmd.Flags().StringVar(&projection, "utm", "", "UTM zone and band, e.g. 33W; overrides --config")
	convertCmd.Flags().Float64Var(&lon, "lon", 0, "longitude to project")
	convertCmd.Flags().Float64Var(&lat, "lat", 0, "latitude to project")
	convertCmd.Flags().Float64Var(&x, "x", 0, "UTM easting to convert to lon/lat")
	convertCmd.Flags().Float64Var(&y, "y", 0, "UTM northing to convert to lon/lat")
	convertCmd.MarkFlagsRequiredTogether("lon", "lat")
	convertCmd.MarkFlagsRequiredTogether("x", "y")
	convertCmd.MarkFlagsMutuallyExclusive("lon", "x")
	convertCmd.MarkFlagsOneRequired("lon", "x")

	inspectCmd.Flags().IntVar(&workers, "workers", 0, "number of files read concurrently (default: number of CPUs)")

	Root.AddCommand(versionCmd, gridCmd, convertCmd, inspectCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "dnora",
	Short: "Wave model grids and boundary points.",
	Long: `dnora sets up the spatial side of spectral wave model runs: regular
grids in lon/lat or UTM coordinates, their sea and boundary masks, and the
conversion between both coordinate systems.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if verbose {
			Log.SetLevel(logrus.DebugLevel)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of dnora.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dnora v%s\n", Version)
	},
	DisableAutoGenTag: true,
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Create a model grid",
	Long: `grid creates the grid described in the configuration file, applies its
spacing and boundary settings, and writes it to NetCDF if an output file is
configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configFile)
		if err != nil {
			return err
		}
		return Grid(c, Log)
	},
	DisableAutoGenTag: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a point between lon/lat and UTM",
	Long: `convert projects --lon/--lat to UTM, or converts --x/--y back to lon/lat,
using the projection from --utm, from the configuration file, or the default
zone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := converter()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("lon") {
			px, py, err := conv.PointToProjected(lon, lat)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.3f %.3f\n", px, py)
			return nil
		}
		plon, plat, err := conv.PointToGeographic(x, y)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f\n", plon, plat)
		return nil
	},
	DisableAutoGenTag: true,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Summarize NetCDF files written by dnora",
	Long: `inspect reads the given NetCDF files concurrently and logs the
coordinates and variables of each. Files that can't be read are reported
and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Inspect(args, workers, Log)
	},
	DisableAutoGenTag: true,
}

func converter() (*geo.Converter, error) {
	switch {
	case projection != "":
		p, err := geo.ParseProjection(projection)
		if err != nil {
			return nil, err
		}
		return geo.NewConverter(p)
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		return c.Converter()
	}
	return geo.DefaultConverter(), nil
}

// Grid builds the configured grid and writes it to c.Output.NetCDF, if set.
func Grid(c *config.Configuration, log logrus.FieldLogger) error {
	g, err := c.BuildGrid()
	if err != nil {
		return err
	}

	fields := logrus.Fields{
		"grid":   g.Name(),
		"system": g.System().String(),
		"nx":     g.NX(),
		"ny":     g.NY(),
	}
	if b, err := g.GeoBounds(); err == nil {
		fields["lon"] = fmt.Sprintf("%.4f..%.4f", b.MinX, b.MaxX)
		fields["lat"] = fmt.Sprintf("%.4f..%.4f", b.MinY, b.MaxY)
	}
	if sea, err := g.Sea(); err == nil {
		fields["sea_points"] = sea.Count()
	}
	if bnd, err := g.GetMask(grid.BoundaryMask, false); err == nil {
		n := 0
		if bnd != nil {
			n = bnd.Count()
		}
		fields["boundary_points"] = n
	}
	if dx, err := g.NativeDX(); err == nil {
		fields["dx"] = dx
	}
	if dy, err := g.NativeDY(); err == nil {
		fields["dy"] = dy
	}
	log.WithFields(fields).Info("grid created")

	if c.Output.NetCDF == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Output.NetCDF), 0o755); err != nil {
		return err
	}
	if err := ncio.Write(c.Output.NetCDF, g.Snapshot()); err != nil {
		return err
	}
	log.WithField("file", c.Output.NetCDF).Info("grid written")
	return nil
}

// Inspect logs a summary of every store in paths. It fails if any file can't
// be read.
func Inspect(paths []string, workers int, log logrus.FieldLogger) error {
	opts := ncio.DefaultReadOptions()
	if workers > 0 {
		opts.Workers = workers
	}
	opts.Log = log
	opts.Progress = func(read, total int) {
		log.WithFields(logrus.Fields{"read": read, "total": total}).Debug("reading stores")
	}

	stores, errs := ncio.ReadAll(paths, opts)
	for _, s := range stores {
		coords := make([]string, 0)
		for _, c := range s.Coords() {
			coords = append(coords, fmt.Sprintf("%s(%d)", c.Name, c.Len()))
		}
		log.WithFields(logrus.Fields{
			"name":      s.Name(),
			"coords":    strings.Join(coords, " "),
			"variables": strings.Join(s.VariableNames(), " "),
		}).Info("store")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files could not be read", len(errs), len(paths))
	}
	return nil
}
