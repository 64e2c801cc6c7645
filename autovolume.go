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
	"math"
)

// AutoVolumeResult is the outcome of an AutoVolume search: the accepted
// volume (which may be smaller than the one requested) and the Walk that
// produced it.
type AutoVolumeResult struct {
	Volume float64
	Walk   *WalkResult
}

// AutoVolume wraps Walk with a retry loop (C6) that shrinks an
// over-large input volume until the flow fits within the DEM, or until
// the volume bottoms out at V_MIN.
//
// Grounded on pearpy's _batch_lahar_inundation retry loop.
func AutoVolume(dem *DEM, d8 *D8Raster, start StartPoint, confidence float64) (*AutoVolumeResult, error) {
	if start.Volume <= V_MIN {
		return nil, ErrVolumeBelowMinimum
	}

	volume := start.Volume
	for {
		attempt := start
		attempt.Volume = volume

		result, err := Walk(dem, d8, attempt, confidence)
		if err != nil && !errors.Is(err, ErrCrossSectionTooLong) {
			return nil, err
		}

		// A cross-section that ran too long has no measured remaining
		// budget to size the retry from, so it shrinks by the same fixed
		// decrement used once the leftover budget is small (spec.md §4.6
		// step 2 / §7: CrossSectionTooLong is surfaced to this loop and
		// retried at a reduced volume, exactly like an over-budget walk).
		var leftover float64
		overBudget := err != nil
		if !overBudget {
			overBudget = result.Outcome == Boundary && result.Remaining[0] > 0
			if overBudget {
				leftover = result.Remaining[0]
			}
		}
		if !overBudget {
			return &AutoVolumeResult{Volume: volume, Walk: result}, nil
		}

		if leftover > 10000 {
			volume -= math.Floor(leftover / 10000 * 50)
		} else {
			volume -= 20
		}
		if volume <= V_MIN {
			volume = V_MIN
			attempt.Volume = volume
			result, err = Walk(dem, d8, attempt, confidence)
			if err != nil {
				return nil, err
			}
			return &AutoVolumeResult{Volume: volume, Walk: result}, nil
		}
	}
}
