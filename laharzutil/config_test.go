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

package laharzutil

import (
	"strings"
	"testing"

	"github.com/lahar-model/laharz"
)

func TestReadCoordinatesSortsAscending(t *testing.T) {
	in := "10,5,100\n2,9,200\n2,1,300\n"
	points, err := ReadCoordinates(strings.NewReader(in), -1)
	if err != nil {
		t.Fatal(err)
	}
	want := []laharz.StartPoint{
		{X: 2, Y: 1, Volume: 300},
		{X: 2, Y: 9, Volume: 200},
		{X: 10, Y: 5, Volume: 100},
	}
	if len(points) != len(want) {
		t.Fatalf("got %d points, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestReadCoordinatesVolumeOverride(t *testing.T) {
	in := "1,1,999\n2,2,888\n"
	points, err := ReadCoordinates(strings.NewReader(in), 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range points {
		if p.Volume != 50 {
			t.Errorf("expected overridden volume 50, got %v", p.Volume)
		}
	}
}

func TestReadCoordinatesMissingVolumeNoOverride(t *testing.T) {
	in := "1,1\n"
	if _, err := ReadCoordinates(strings.NewReader(in), -1); err == nil {
		t.Error("expected an error for a missing volume with no override configured")
	}
}

func TestReadCoordinatesSkipsBlankLines(t *testing.T) {
	in := "\n1,1,50\n\n# not a comma line is also skipped by this scanner\n2,2,60\n"
	points, err := ReadCoordinates(strings.NewReader(in), -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
}

func TestReadCoordinatesTooManyFields(t *testing.T) {
	if _, err := ReadCoordinates(strings.NewReader("1,1,1,1\n"), -1); err == nil {
		t.Error("expected an error for a 4-field coordinate line")
	}
}

func TestCheckConfidenceLevel(t *testing.T) {
	for _, level := range []float64{50, 70, 80, 90, 95, 97.5, 99} {
		if err := checkConfidenceLevel(level); err != nil {
			t.Errorf("checkConfidenceLevel(%v) = %v, want nil", level, err)
		}
	}
	if err := checkConfidenceLevel(42); err == nil {
		t.Error("checkConfidenceLevel(42) should be an error")
	}
}

func TestCheckOutputType(t *testing.T) {
	if err := checkOutputType("raster"); err != nil {
		t.Errorf("checkOutputType(raster) = %v, want nil", err)
	}
	if err := checkOutputType("vector"); err != nil {
		t.Errorf("checkOutputType(vector) = %v, want nil", err)
	}
	if err := checkOutputType("geojson"); err == nil {
		t.Error("checkOutputType(geojson) should be an error")
	}
}

func TestDemAndD8PathsFile(t *testing.T) {
	demPath, d8Path, err := demAndD8Paths("/data/volcanofill.tif")
	if err != nil {
		t.Fatal(err)
	}
	if demPath != "/data/volcanofill.tif" {
		t.Errorf("demPath = %q", demPath)
	}
	if d8Path != "/data/volcanodir.tif" {
		t.Errorf("d8Path = %q", d8Path)
	}
}

func TestDemAndD8PathsRejectsUnnamedInput(t *testing.T) {
	if _, _, err := demAndD8Paths("/data/volcano.tif"); err == nil {
		t.Error("expected an error for an input not named with a \"fill\" suffix")
	}
}
