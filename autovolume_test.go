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
	"errors"
	"testing"
)

func TestAutoVolumeBelowMinimumRejected(t *testing.T) {
	dem, d8 := flatChannelFixture()
	start := StartPoint{X: 15, Y: 95, Volume: 10}

	if _, err := AutoVolume(dem, d8, start, 90.0); err != ErrVolumeBelowMinimum {
		t.Errorf("AutoVolume with volume below V_MIN = %v, want ErrVolumeBelowMinimum", err)
	}
}

func TestAutoVolumeAcceptsFittingVolume(t *testing.T) {
	dem, d8 := flatChannelFixture()
	start := StartPoint{X: 15, Y: 95, Volume: 60}

	result, err := AutoVolume(dem, d8, start, 90.0)
	if err != nil {
		t.Fatalf("AutoVolume returned error: %v", err)
	}
	if result.Volume > start.Volume {
		t.Errorf("accepted volume %v should never exceed the requested volume %v", result.Volume, start.Volume)
	}
	if result.Volume < V_MIN {
		t.Errorf("accepted volume %v should never fall below V_MIN=%v", result.Volume, V_MIN)
	}
}

// TestAutoVolumeRetriesCrossSectionTooLong pins the fix to AutoVolume's
// error handling: before it, any error from Walk (including
// ErrCrossSectionTooLong) was returned immediately, so a single runaway
// cross-section would fail the whole point instead of being retried at a
// smaller volume like an ordinary over-budget Boundary outcome.
//
// The fixture is a single flat column of MAX_SWEEP+2 cells with the
// channel cell at its southern end. The eastward sweep's left pointer
// walks north up the column, claiming one equal-elevation cell per
// iteration without spending any cross-sectional budget, so the sweep
// reaches MAX_SWEEP iterations before it can reach the grid edge,
// regardless of which volume AutoVolume is currently trying.
// What this proves is that the retry loop keeps running (and keeps
// calling Walk, decrementing volume down to V_MIN) instead of bailing
// out fatally on the first attempt; it does not claim shrinking volume
// can resolve a cross-section that is genuinely too long.
func TestAutoVolumeRetriesCrossSectionTooLong(t *testing.T) {
	nrows := MAX_SWEEP + 2
	tr := Transform{XLeft: 0, YTop: float64(nrows), CellWidth: 1}
	dem := NewDEM(nrows, 3, tr)
	d8 := NewD8Raster(nrows, 3, tr)
	for row := 0; row < nrows; row++ {
		dem.Set(row, 1, 0) // flat column: the left pointer never spends budget
	}
	d8.Set(nrows-1, 1, DirE) // channel cell at the southern end

	x := tr.XLeft + 1*tr.CellWidth + 0.5
	y := tr.YTop - float64(nrows-1)*tr.CellWidth - 0.5
	start := StartPoint{X: x, Y: y, Volume: 90}

	_, err := AutoVolume(dem, d8, start, 90.0)
	if err == nil {
		t.Fatal("AutoVolume on a cross-section that never terminates should return an error, got nil")
	}
	if !errors.Is(err, ErrCrossSectionTooLong) {
		t.Errorf("AutoVolume error = %v, want it to wrap ErrCrossSectionTooLong", err)
	}
}

func TestAutoVolumeShrinksOverBudgetVolume(t *testing.T) {
	dem, d8 := flatChannelFixture()
	// A very large volume on a small 20x20 DEM is guaranteed to run off
	// the data extent before its planimetric budget is spent, so
	// AutoVolume must shrink it at least once.
	start := StartPoint{X: 15, Y: 95, Volume: 1e7}

	result, err := AutoVolume(dem, d8, start, 90.0)
	if err != nil {
		t.Fatalf("AutoVolume returned error: %v", err)
	}
	if result.Volume >= start.Volume {
		t.Errorf("AutoVolume should have shrunk the volume below %v, got %v", start.Volume, result.Volume)
	}
}
