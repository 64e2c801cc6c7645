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

import "github.com/ctessum/sparse"

// InundationRaster is the packed multi-level "onion" of nested
// inundation classes produced by a single Walk. Cell values start at 1
// (unflooded); a cell claimed at level i (0-indexed) holds i+2. Levels
// are nested: level 0 is the widest class and the highest level the
// tightest. Claiming a cell at a higher (tighter) level overwrites a
// claim at a lower level, never the reverse (spec.md §4.3).
type InundationRaster struct {
	data *sparse.DenseArrayInt

	// value[i] is the running count of cells currently claimed
	// exclusively at level i (i.e. holding raster value i+2).
	value []int
}

// NewInundationRaster creates an InundationRaster of the given shape with
// nLevels candidate levels, all cells initially unflooded (value 1).
func NewInundationRaster(nrows, ncols, nLevels int) *InundationRaster {
	r := &InundationRaster{
		data:  sparse.ZerosDenseInt(nrows, ncols),
		value: make([]int, nLevels),
	}
	for i := range r.data.Elements {
		r.data.Elements[i] = 1
	}
	return r
}

// Shape returns the raster's (nrows, ncols).
func (r *InundationRaster) Shape() (nrows, ncols int) {
	s := r.data.GetShape()
	return s[0], s[1]
}

func (r *InundationRaster) inBounds(row, col int) bool {
	nrows, ncols := r.Shape()
	return row >= 0 && row < nrows && col >= 0 && col < ncols
}

// At returns the raw raster value at (row, col): 1 if unflooded, or
// level+2 if claimed at the given (0-indexed) level.
func (r *InundationRaster) At(row, col int) int {
	if !r.inBounds(row, col) {
		return 1
	}
	return r.data.Get(row, col)
}

// NLevels returns the number of candidate levels this raster tracks.
func (r *InundationRaster) NLevels() int {
	return len(r.value)
}

// LevelCount returns the running cell count for level (0-indexed, level
// 0 being the widest class).
func (r *InundationRaster) LevelCount(level int) int {
	return r.value[level]
}

// Claim marks (row, col) as flooded by the given level (0-indexed). A
// claim at a higher (tighter) level than the cell's current one wins:
// the previous claimant's running count is decremented and the new
// claimant's is incremented. A claim at the same or a lower level is
// ignored. Claim is a no-op outside the grid.
//
// Grounded on pearpy's append_point2array: dem_value encodes the current
// claimant as dem_value-2, or "unclaimed" as dem_value==1.
func (r *InundationRaster) Claim(row, col, level int) {
	if !r.inBounds(row, col) {
		return
	}
	claimCode := level + 2
	current := r.data.Get(row, col)
	switch {
	case current == 1:
		r.data.Set(claimCode, row, col)
		r.value[level]++
	case current < claimCode:
		r.data.Set(claimCode, row, col)
		r.value[current-2]--
		r.value[level]++
	}
}

// PopLevel discards the tightest (highest-index) level: any cells
// claimed there become unflooded again, and the level's running count is
// dropped from tracking. It is used when a level's planimetric budget
// goes negative mid-walk (spec.md §4.5).
func (r *InundationRaster) PopLevel() {
	if len(r.value) == 0 {
		return
	}
	last := len(r.value) - 1
	claimCode := last + 2
	for i, v := range r.data.Elements {
		if v == claimCode {
			r.data.Elements[i] = 1
		}
	}
	r.value = r.value[:last]
}

// CumulativeArea returns the running planimetric area in map units^2
// accumulated by level and every tighter (higher-index) level nested
// inside it: sum(value[level:]) * cellWidth^2, matching pearpy's
// reversed-cumulative-sum accounting.
func (r *InundationRaster) CumulativeArea(level int, cellWidth float64) float64 {
	total := 0
	for i := level; i < len(r.value); i++ {
		total += r.value[i]
	}
	return float64(total) * cellWidth * cellWidth
}
