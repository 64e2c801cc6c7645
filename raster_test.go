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

import "testing"

func TestInundationRasterClaim(t *testing.T) {
	r := NewInundationRaster(5, 5, 3)

	r.Claim(2, 2, 0)
	if got := r.At(2, 2); got != 2 {
		t.Errorf("At(2,2) = %d, want 2", got)
	}
	if r.LevelCount(0) != 1 {
		t.Errorf("LevelCount(0) = %d, want 1", r.LevelCount(0))
	}

	// A claim at a tighter (higher index) level wins.
	r.Claim(2, 2, 2)
	if got := r.At(2, 2); got != 4 {
		t.Errorf("At(2,2) = %d, want 4 after tighter claim", got)
	}
	if r.LevelCount(0) != 0 || r.LevelCount(2) != 1 {
		t.Errorf("level counts after overwrite = %d,%d, want 0,1", r.LevelCount(0), r.LevelCount(2))
	}

	// A claim at a wider (lower index) level does not win.
	r.Claim(2, 2, 1)
	if got := r.At(2, 2); got != 4 {
		t.Errorf("At(2,2) = %d, want 4 (unchanged by weaker claim)", got)
	}
}

func TestInundationRasterOutOfBounds(t *testing.T) {
	r := NewInundationRaster(3, 3, 2)
	r.Claim(-1, 0, 0)
	r.Claim(0, 10, 0)
	if r.LevelCount(0) != 0 {
		t.Errorf("out-of-bounds claims should be no-ops, got LevelCount(0) = %d", r.LevelCount(0))
	}
	if got := r.At(-1, 0); got != 1 {
		t.Errorf("At out of bounds = %d, want 1", got)
	}
}

func TestInundationRasterCumulativeArea(t *testing.T) {
	r := NewInundationRaster(10, 10, 3)
	r.Claim(0, 0, 0)
	r.Claim(0, 1, 1)
	r.Claim(0, 2, 2)

	cellWidth := 2.0
	if got, want := r.CumulativeArea(0, cellWidth), 3*cellWidth*cellWidth; got != want {
		t.Errorf("CumulativeArea(0) = %v, want %v", got, want)
	}
	if got, want := r.CumulativeArea(2, cellWidth), 1*cellWidth*cellWidth; got != want {
		t.Errorf("CumulativeArea(2) = %v, want %v", got, want)
	}
}

func TestInundationRasterPopLevel(t *testing.T) {
	r := NewInundationRaster(5, 5, 3)
	r.Claim(0, 0, 2)
	r.Claim(0, 1, 0)

	r.PopLevel()
	if r.NLevels() != 2 {
		t.Fatalf("NLevels() after PopLevel = %d, want 2", r.NLevels())
	}
	if got := r.At(0, 0); got != 1 {
		t.Errorf("popped level's cell should revert to unflooded, At(0,0) = %d", got)
	}
	if got := r.At(0, 1); got != 2 {
		t.Errorf("surviving level's cell should be untouched, At(0,1) = %d", got)
	}
}
