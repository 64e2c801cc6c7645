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

import "fmt"

// boundaryWindow and boundaryThreshold configure the walk's boundary
// heuristic: a step is declared out of DEM extent once at least
// boundaryThreshold of the D8 cells in a boundaryWindow x boundaryWindow
// window centered on the new cell are nodata.
const (
	boundaryWindow    = 10
	boundaryThreshold = 6
)

// WalkOutcome reports how a Walk terminated.
type WalkOutcome int

const (
	// Done means the planimetric budget of the widest level (index 0)
	// was fully spent: a normal, successful stop.
	Done WalkOutcome = iota
	// Sink means the walk reached a D8 sink or an invalid direction
	// code and stopped there.
	Sink
	// Boundary means the walk ran off the edge of the DEM's data extent
	// (or took MAX_STEPS steps) before the widest level's budget was
	// spent. AutoVolume retries with a smaller volume when that level's
	// Remaining entry is still positive.
	Boundary
)

// WalkResult is everything a completed Walk reports back to the
// auto-volume search (C6).
type WalkResult struct {
	Raster    *InundationRaster
	Remaining []float64 // per-level remaining planimetric budget, one entry per surviving level (index 0 = widest)
	Outcome   WalkOutcome
}

// Walk runs the downstream walk (C5) for a single source point: at each
// channel cell it sweeps the cross-section and the flanking directions
// via sweep, then checks the per-level planimetric budget,
// trimming or stopping as it is consumed, before advancing downstream.
//
// Grounded on pearpy's create_lahar_inundation.
func Walk(dem *DEM, d8 *D8Raster, start StartPoint, confidence float64) (*WalkResult, error) {
	nrows, ncols := dem.Shape()

	crossDesc, err := AreaBudget(start.Volume, confidence, CrossSectionRegression)
	if err != nil {
		return nil, fmt.Errorf("laharz: cross-section area budget: %w", err)
	}
	planDesc, err := AreaBudget(start.Volume, confidence, PlanimetricRegression)
	if err != nil {
		return nil, fmt.Errorf("laharz: planimetric area budget: %w", err)
	}
	nLevels := len(crossDesc)

	raster := NewInundationRaster(nrows, ncols, nLevels)

	row, col := start.RowCol(dem.Transform)
	if !dem.inBounds(row, col) {
		return nil, fmt.Errorf("laharz: start point (%g,%g): %w", start.X, start.Y, ErrOutOfBounds)
	}

	remaining := append([]float64(nil), planDesc...)
	dir := d8.At(row, col)

	for steps := 0; steps < MAX_STEPS; steps++ {
		if !ValidD8(dir) {
			return &WalkResult{Raster: raster, Remaining: remaining, Outcome: Sink}, nil
		}

		// Every direction swept at this step gets its own fresh copy of
		// the cross-section budget: pearpy's calc_cross_section restores
		// cross_area from cross_area_ori before returning, so the area
		// budget never carries over between directions within a step —
		// only the accumulated raster claims (value counters) do.
		freshBudget := func() sweepBudget {
			return sweepBudget(append([]float64(nil), crossDesc[:len(raster.value)]...))
		}

		if _, err = sweep(dem, raster, dem.Transform, dir, row, col, freshBudget()); err != nil {
			return nil, err
		}

		// h defaults to dir itself for a cardinal direction (pearpy's
		// cardinal_first.get(dir, (None, dir))): the secondary-flank
		// lookup below runs every step, not just on turns at a diagonal.
		h := dir
		if pair, ok := flankPrimary[dir]; ok {
			first, second := pair[0], pair[1]
			if _, err = sweep(dem, raster, dem.Transform, first, row, col, freshBudget()); err != nil {
				return nil, err
			}
			if _, err = sweep(dem, raster, dem.Transform, second, row, col, freshBudget()); err != nil {
				return nil, err
			}
			h = second
		}
		if pair, ok := flankSecondary[h]; ok {
			third, fourth := pair[0], pair[1]
			if _, err = sweep(dem, raster, dem.Transform, third, row, col, freshBudget()); err != nil {
				return nil, err
			}
			if _, err = sweep(dem, raster, dem.Transform, fourth, row, col, freshBudget()); err != nil {
				return nil, err
			}
		}

		if isDiagonal(dir) {
			off := checkerOffset[dir]
			if _, err = sweep(dem, raster, dem.Transform, dir, row+off.dr, col+off.dc, freshBudget()); err != nil {
				return nil, err
			}
		}

		// Planimetric accounting: cum[i] = w^2 * sum(value[j] for j>=i).
		for len(raster.value) > 0 {
			level := len(raster.value) - 1
			cum := raster.CumulativeArea(level, dem.CellWidth)
			remaining[level] = planDesc[level] - cum
			if level == 0 {
				break
			}
			if remaining[level] < 0 {
				raster.PopLevel()
				remaining = remaining[:level]
				continue
			}
			break
		}
		for level := range remaining {
			remaining[level] = planDesc[level] - raster.CumulativeArea(level, dem.CellWidth)
		}
		if remaining[0] < 0 {
			return &WalkResult{Raster: raster, Remaining: remaining, Outcome: Done}, nil
		}

		off := downstream[dir]
		row, col = row+off.dr, col+off.dc
		if d8.CountNodataWindow(row, col, boundaryWindow) >= boundaryThreshold {
			return &WalkResult{Raster: raster, Remaining: remaining, Outcome: Boundary}, nil
		}
		dir = d8.At(row, col)
		if dir == DirNodata {
			return &WalkResult{Raster: raster, Remaining: remaining, Outcome: Boundary}, nil
		}
	}
	return &WalkResult{Raster: raster, Remaining: remaining, Outcome: Boundary}, nil
}

// reversed returns a new slice with s's elements in reverse order.
func reversed(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
