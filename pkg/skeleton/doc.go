// Package skeleton provides coordinate-bearing entities for wave-model grids and
// point sets.
//
// A skeleton is created from either projected (x, y) or geographic (lon, lat)
// coordinates. Whichever pair is given becomes the native system: it is stored
// as-is and every accessor of that pair returns the stored values exactly. The
// other pair is derived on request through a geo.Converter.
//
// # Topologies
//
// Two topologies are provided:
//
//	// Unstructured points, addressed by an integer index "inds"
//	points, err := skeleton.NewPointSkeleton(
//	    skeleton.Coordinates{X: []float64{0, 1, 2}, Y: []float64{0, 1, 2}},
//	)
//	points.Size() // [3]
//	points.Inds() // [0 1 2]
//
//	// A structured grid addressed by two independent axes
//	grid, err := skeleton.NewGriddedSkeleton(
//	    skeleton.Coordinates{Lon: []float64{4.0, 5.73}, Lat: []float64{60.53, 61.25}},
//	    skeleton.WithName("Sulafjorden"),
//	)
//	grid.Size() // [2 2], (ny, nx)
//
// # Coordinate Access
//
// X, Y, Lon and Lat return the requested representation regardless of the
// native system. NativeX and NativeY return the stored pair:
//
//	lon, err := points.Lon()   // converted, points are native x/y
//	x, err := points.NativeX() // stored values
//
// XY, LonLat and NativeXY return one value pair per point. On a grid that is
// the full mesh of ny*nx cells, y outer and x inner.
//
// # Masks
//
// Masks are registered by name with a default value and stored over the
// skeleton's spatial axes:
//
//	grid.RegisterMask(skeleton.MaskSpec{Name: "sea", Default: true})
//	mask, err := grid.GetMask("sea", true) // all true, nothing stored yet
//	err = grid.UpdateMask("sea", landSea)
//	lon, lat, err := grid.MaskedPoints("sea", skeleton.Spherical, "lat", false)
//
// # Dimensions
//
// Extra axes such as time, frequency and direction are attached with Extend or
// the WithDimensions option. Variables compiled on the skeleton are laid out
// over leading dimensions, then the spatial axes, then trailing dimensions.
package skeleton
