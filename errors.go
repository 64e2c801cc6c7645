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

import "errors"

// Sentinel errors returned by the core engine, some directly and some
// wrapped with fmt.Errorf and %w. Callers should use errors.Is to test
// for these.
var (
	// ErrInvalidDirection is returned when a sweep is asked to run in a
	// direction that is not one of the eight valid D8 flow directions.
	ErrInvalidDirection = errors.New("laharz: invalid D8 direction")

	// ErrOutOfBounds is returned when a requested operation's starting
	// cell lies outside the DEM or D8 raster.
	ErrOutOfBounds = errors.New("laharz: cell out of bounds")

	// ErrCrossSectionTooLong is returned when a cross-section sweep
	// exceeds MAX_SWEEP iterations without closing.
	ErrCrossSectionTooLong = errors.New("laharz: cross-section sweep too long")

	// ErrVolumeTooLarge names the over-budget condition. No function in
	// this package returns it: Walk reports that condition as the
	// Boundary outcome, and AutoVolume accepts its walk at V_MIN as the
	// result once shrinking reaches the floor.
	ErrVolumeTooLarge = errors.New("laharz: volume too large for DEM extent")

	// ErrVolumeBelowMinimum is returned by AutoVolume when the requested
	// volume is at or below V_MIN.
	ErrVolumeBelowMinimum = errors.New("laharz: volume below minimum")

	// ErrInvalidConfig is returned when a Walk configuration is
	// internally inconsistent (e.g. a confidence level with no matching
	// regression table entry).
	ErrInvalidConfig = errors.New("laharz: invalid configuration")
)
