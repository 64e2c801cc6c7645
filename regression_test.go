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
	"testing"
)

func TestCenterArea(t *testing.T) {
	// spec.md worked example: V=1000, A_x_center = round(1000^(2/3)*0.05) = 5,
	// A_p_center = round(1000^(2/3)*200) = 20000.
	if got, want := CrossSectionRegression.CenterArea(1000), 5.0; got != want {
		t.Errorf("CrossSectionRegression.CenterArea(1000) = %v, want %v", got, want)
	}
	if got, want := PlanimetricRegression.CenterArea(1000), 20000.0; got != want {
		t.Errorf("PlanimetricRegression.CenterArea(1000) = %v, want %v", got, want)
	}
}

func TestConfidenceBoundsUnknownLevel(t *testing.T) {
	_, _, err := CrossSectionRegression.ConfidenceBounds(1000, 42.0)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ConfidenceBounds with unsupported confidence = %v, want ErrInvalidConfig", err)
	}
}

func TestConfidenceBoundsOrdering(t *testing.T) {
	upper, lower, err := CrossSectionRegression.ConfidenceBounds(1000, 95.0)
	if err != nil {
		t.Fatalf("ConfidenceBounds returned error: %v", err)
	}
	if !(upper > lower) {
		t.Errorf("upper bound %v should exceed lower bound %v", upper, lower)
	}
	center := CrossSectionRegression.CenterArea(1000)
	if !(upper > center && lower < center) {
		t.Errorf("confidence bounds %v/%v should bracket the center estimate %v", upper, lower, center)
	}
}

func TestConfidenceBoundsWidenWithHigherConfidence(t *testing.T) {
	u90, l90, err := CrossSectionRegression.ConfidenceBounds(1000, 90.0)
	if err != nil {
		t.Fatalf("ConfidenceBounds(90) returned error: %v", err)
	}
	u99, l99, err := CrossSectionRegression.ConfidenceBounds(1000, 99.0)
	if err != nil {
		t.Fatalf("ConfidenceBounds(99) returned error: %v", err)
	}
	if !(u99 > u90 && l99 < l90) {
		t.Errorf("99%% interval (%v,%v) should be wider than 90%% interval (%v,%v)", u99, l99, u90, l90)
	}
}

func TestAreaBudgetSortedDescending(t *testing.T) {
	areas, err := AreaBudget(1000, 95.0, PlanimetricRegression)
	if err != nil {
		t.Fatalf("AreaBudget returned error: %v", err)
	}
	if len(areas) != 3 {
		t.Fatalf("AreaBudget returned %d areas, want 3", len(areas))
	}
	for i := 1; i < len(areas); i++ {
		if areas[i] > areas[i-1] {
			t.Errorf("AreaBudget areas not descending: %v", areas)
		}
	}
}

func TestAreaBudgetInvalidConfidence(t *testing.T) {
	_, err := AreaBudget(1000, 42.0, CrossSectionRegression)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("AreaBudget with unsupported confidence = %v, want ErrInvalidConfig", err)
	}
}

func TestConfidenceBoundsPerturbation(t *testing.T) {
	// spec.md §8: perturbing the t critical value by 1% should perturb
	// the resulting bounds by roughly 10^(0.01*SE_pred) — i.e. a small,
	// monotone, bounded effect, not a discontinuity.
	upperBefore, _, err := CrossSectionRegression.ConfidenceBounds(1000, 97.5)
	if err != nil {
		t.Fatalf("ConfidenceBounds returned error: %v", err)
	}

	saved := tCritical[7][5]
	tCritical[7][5] = saved * 1.01
	defer func() { tCritical[7][5] = saved }()

	upperAfter, _, err := CrossSectionRegression.ConfidenceBounds(1000, 97.5)
	if err != nil {
		t.Fatalf("ConfidenceBounds returned error: %v", err)
	}
	if upperAfter <= upperBefore {
		t.Errorf("increasing the t critical value should widen the upper bound: before=%v after=%v", upperBefore, upperAfter)
	}
	ratio := upperAfter / upperBefore
	if math.Abs(ratio-1) > 0.5 {
		t.Errorf("a 1%% perturbation in t should not massively swing the bound; ratio=%v", ratio)
	}
}
