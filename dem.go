/*
Copyright © 2013 the InMAP authors.
This file is part of laharz.

laharz is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

laharz is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with laharz.  If not, see <http://www.gnu.org/licenses/>.
*/

package laharz

import (
	"math"

	"github.com/ctessum/sparse"
)

// NODATA_Z marks an out-of-domain elevation in the DEM.
const NODATA_Z = 99999.0

// V_MIN is the smallest volume the auto-volume search will accept.
const V_MIN = 32.0

// MAX_SWEEP bounds the number of iterations a single cross-section sweep
// is allowed before it is declared too long.
const MAX_SWEEP = 5000

// MAX_STEPS bounds the number of downstream steps a single walk is
// allowed to take.
const MAX_STEPS = 9e7

// Transform is the affine mapping between grid (row, col) indices and map
// (x, y) coordinates, following the common "upper-left origin" raster
// convention: Y decreases with increasing row, X increases with
// increasing column.
type Transform struct {
	// XLeft and YTop are the map coordinates of the upper-left corner of
	// the grid (cell [0,0]'s upper-left corner).
	XLeft, YTop float64

	// CellWidth is the DEM's uniform cell width, in map units.
	CellWidth float64
}

// CellDiagonal returns the length of a diagonal step across one cell,
// rounded to 2 decimal places, per spec.md's d = round(w*sqrt(2), 2).
func (t Transform) CellDiagonal() float64 {
	return math.Round(t.CellWidth*math.Sqrt2*100) / 100
}

// RowCol converts a map coordinate to a grid (row, col) index.
func (t Transform) RowCol(x, y float64) (row, col int) {
	row = int(math.Floor((t.YTop - y) / t.CellWidth))
	col = int(math.Floor((x - t.XLeft) / t.CellWidth))
	return row, col
}

// DEM is a filled digital elevation model: a 2-D grid of elevations with a
// uniform cell width. Nodata cells hold NODATA_Z.
type DEM struct {
	Transform
	data *sparse.DenseArray
}

// NewDEM creates a DEM of the given shape, initialized to NODATA_Z.
func NewDEM(nrows, ncols int, t Transform) *DEM {
	d := &DEM{Transform: t, data: sparse.ZerosDense(nrows, ncols)}
	for i := range d.data.Elements {
		d.data.Elements[i] = NODATA_Z
	}
	return d
}

// Shape returns the DEM's (nrows, ncols).
func (d *DEM) Shape() (nrows, ncols int) {
	s := d.data.GetShape()
	return s[0], s[1]
}

// inBounds reports whether (row, col) is within the grid.
func (d *DEM) inBounds(row, col int) bool {
	nrows, ncols := d.Shape()
	return row >= 0 && row < nrows && col >= 0 && col < ncols
}

// At returns the elevation at (row, col), or NODATA_Z if the cell is
// outside the grid (per spec.md §7's OutOfBounds handling: "the sweep
// treats the missing neighbor as NODATA_Z").
func (d *DEM) At(row, col int) float64 {
	if !d.inBounds(row, col) {
		return NODATA_Z
	}
	return d.data.Get(row, col)
}

// Set sets the elevation at (row, col). It is a no-op outside the grid.
func (d *DEM) Set(row, col int, z float64) {
	if !d.inBounds(row, col) {
		return
	}
	d.data.Set(z, row, col)
}

// D8 direction codes. 0 and 255 are sink and nodata respectively; any
// other value is invalid.
const (
	DirE  = 1
	DirSE = 2
	DirS  = 4
	DirSW = 8
	DirW  = 16
	DirNW = 32
	DirN  = 64
	DirNE = 128

	DirSink   = 0
	DirNodata = 255
)

// ValidD8 reports whether dir is one of the eight valid flow directions.
func ValidD8(dir int) bool {
	switch dir {
	case DirE, DirSE, DirS, DirSW, DirW, DirNW, DirN, DirNE:
		return true
	}
	return false
}

// D8Raster is an ESRI-encoded D8 flow-direction grid, the same shape and
// transform as its companion DEM.
type D8Raster struct {
	Transform
	data *sparse.DenseArrayInt
}

// NewD8Raster creates a D8Raster of the given shape, initialized to
// DirNodata.
func NewD8Raster(nrows, ncols int, t Transform) *D8Raster {
	r := &D8Raster{Transform: t, data: sparse.ZerosDenseInt(nrows, ncols)}
	for i := range r.data.Elements {
		r.data.Elements[i] = DirNodata
	}
	return r
}

// Shape returns the raster's (nrows, ncols).
func (r *D8Raster) Shape() (nrows, ncols int) {
	s := r.data.GetShape()
	return s[0], s[1]
}

func (r *D8Raster) inBounds(row, col int) bool {
	nrows, ncols := r.Shape()
	return row >= 0 && row < nrows && col >= 0 && col < ncols
}

// At returns the D8 code at (row, col), or DirNodata if the cell is
// outside the grid.
func (r *D8Raster) At(row, col int) int {
	if !r.inBounds(row, col) {
		return DirNodata
	}
	return r.data.Get(row, col)
}

// Set sets the D8 code at (row, col). It is a no-op outside the grid.
func (r *D8Raster) Set(row, col int, dir int) {
	if !r.inBounds(row, col) {
		return
	}
	r.data.Set(dir, row, col)
}

// CountNodataWindow counts how many cells in the size x size window
// centered on (row, col) hold DirNodata, treating out-of-grid cells as
// nodata. Used by the downstream walk's boundary heuristic.
func (r *D8Raster) CountNodataWindow(row, col, size int) int {
	half := size / 2
	n := 0
	for dr := -half; dr < size-half; dr++ {
		for dc := -half; dc < size-half; dc++ {
			if r.At(row+dr, col+dc) == DirNodata {
				n++
			}
		}
	}
	return n
}

// StartPoint is a lahar source point in map coordinates with an estimated
// flow volume in cubic map units (spec.md §4.2): the area budgets derived
// from it are compared directly against cell areas in squared map units.
type StartPoint struct {
	X, Y   float64
	Volume float64
}

// RowCol converts p's map coordinates to a grid index using t.
func (p StartPoint) RowCol(t Transform) (row, col int) {
	return t.RowCol(p.X, p.Y)
}
