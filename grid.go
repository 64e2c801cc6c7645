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

// offset is a (row, col) step.
type offset struct{ dr, dc int }

// leftOf gives, for each D8 direction, the offset of the cell standing to
// the left of the channel cell when facing downstream.
var leftOf = map[int]offset{
	DirE:  {-1, 0},
	DirSE: {-1, 1},
	DirS:  {0, 1},
	DirSW: {1, 1},
	DirW:  {1, 0},
	DirNW: {1, -1},
	DirN:  {0, -1},
	DirNE: {-1, -1},
}

// step gives, for each D8 direction, the offset applied when stepping
// laterally (left or right) during a cross-section sweep.
var step = map[int]offset{
	DirE:  {-1, 0},
	DirSE: {-1, 1},
	DirS:  {0, 1},
	DirSW: {1, 1},
	DirW:  {1, 0},
	DirNW: {1, -1},
	DirN:  {0, -1},
	DirNE: {-1, -1},
}

// downstream gives, for each D8 direction, the offset applied when
// advancing the walk one cell further downstream.
var downstream = map[int]offset{
	DirE:  {0, 1},
	DirSE: {1, 1},
	DirS:  {1, 0},
	DirSW: {1, -1},
	DirW:  {0, -1},
	DirNW: {-1, -1},
	DirN:  {-1, 0},
	DirNE: {-1, 1},
}

// flankPrimary maps a diagonal direction to the pair of cardinal
// directions swept first to fill the "inside corner" of a turn.
var flankPrimary = map[int][2]int{
	DirNW: {DirW, DirN},
	DirNE: {DirN, DirE},
	DirSE: {DirE, DirS},
	DirSW: {DirS, DirW},
}

// flankSecondary maps the second of flankPrimary's cardinal directions to
// the pair of diagonal directions swept next.
var flankSecondary = map[int][2]int{
	DirE: {DirNE, DirSE},
	DirS: {DirSE, DirSW},
	DirW: {DirSW, DirNW},
	DirN: {DirNW, DirNE},
}

// checkerOffset gives, for each diagonal direction, the offset of the
// extra "checkerboard" cell swept to cover the corner a diagonal step
// would otherwise leave untouched.
var checkerOffset = map[int]offset{
	DirSW: {1, 0},
	DirNW: {0, -1},
	DirNE: {-1, 0},
	DirSE: {0, 1},
}

// isDiagonal reports whether dir is one of the four diagonal D8
// directions, which use the cell diagonal rather than the cell width as
// their cross-section dimension.
func isDiagonal(dir int) bool {
	switch dir {
	case DirSE, DirNW, DirNE, DirSW:
		return true
	}
	return false
}

// cellDimension returns the lateral cell dimension used when sweeping
// direction dir: the cell diagonal for diagonal directions, the cell
// width otherwise.
func cellDimension(t Transform, dir int) float64 {
	if isDiagonal(dir) {
		return t.CellDiagonal()
	}
	return t.CellWidth
}
