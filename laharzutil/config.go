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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lahar-model/laharz"
)

// checkOutputDir fills in a default output directory (a "stream"
// subdirectory next to demFile) if one isn't specified, and ensures it
// exists.
func checkOutputDir(dir, demFile string) (string, error) {
	if dir == "" {
		dir = filepath.Join(filepath.Dir(demFile), "stream")
	}
	dir = os.ExpandEnv(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return dir, fmt.Errorf("laharzutil: creating OutputDir: %w", err)
	}
	return dir, nil
}

// checkLogFile expands environment variables in the log file path. An
// empty path stays empty, meaning no log file is written.
func checkLogFile(logFile, outputDir string) string {
	if logFile == "" {
		return ""
	}
	return os.ExpandEnv(logFile)
}

// checkConfidenceLevel ensures level is one of the levels the compiled
// regression tables support.
func checkConfidenceLevel(level float64) error {
	for _, c := range []float64{50.0, 70.0, 80.0, 90.0, 95.0, 97.5, 99.0} {
		if c == level {
			return nil
		}
	}
	return fmt.Errorf("laharzutil: confidence level %v: %w", level, laharz.ErrInvalidConfig)
}

// checkOutputType ensures t is one of the supported output formats.
func checkOutputType(t string) error {
	switch t {
	case "raster", "vector":
		return nil
	}
	return fmt.Errorf("laharzutil: OutputType must be \"raster\" or \"vector\", got %q", t)
}

// ReadCoordinates parses a coordinate file: UTF-8 text, one record per
// line, comma-separated "x,y[,volume]". Blank lines and lines without a
// comma are ignored. Records are sorted ascending lexicographically by
// (x, y) before being returned, matching pearpy's `sorted(dataset)`.
//
// overrideVolume, if >= 0, replaces the third column (or supplies the
// volume when a record omits it) for every record.
func ReadCoordinates(r io.Reader, overrideVolume float64) ([]laharz.StartPoint, error) {
	var points []laharz.StartPoint
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, ",") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) > 3 {
			return nil, fmt.Errorf("laharzutil: coordinate line %q: only 2D coordinates are accepted", line)
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("laharzutil: parsing x coordinate in %q: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("laharzutil: parsing y coordinate in %q: %w", line, err)
		}

		volume := overrideVolume
		if len(fields) == 3 {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("laharzutil: parsing volume in %q: %w", line, err)
			}
			if overrideVolume < 0 {
				volume = v
			}
		} else if overrideVolume < 0 {
			return nil, fmt.Errorf("laharzutil: coordinate line %q: no volume given and no Volume override configured", line)
		}

		points = append(points, laharz.StartPoint{X: x, Y: y, Volume: volume})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("laharzutil: reading coordinate file: %w", err)
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].X != points[j].X {
			return points[i].X < points[j].X
		}
		return points[i].Y < points[j].Y
	})
	return points, nil
}

// demAndD8Paths resolves the filled-DEM and D8 raster paths from a
// single input path, following pearpy's "<prefix>fill"/"<prefix>dir"
// naming convention (spec.md §6 supplemental filename convention).
func demAndD8Paths(input string) (demPath, d8Path string, err error) {
	info, statErr := os.Stat(input)
	if statErr == nil && info.IsDir() {
		base := filepath.Base(input)
		if !strings.HasSuffix(base, "fill") {
			return "", "", fmt.Errorf("laharzutil: %q is not named for a filled DEM; expected a \"...fill\" suffix", base)
		}
		prefix := strings.TrimSuffix(base, "fill")
		demPath = input
		d8Path = filepath.Join(filepath.Dir(input), prefix+"dir")
		return demPath, d8Path, nil
	}

	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	if !strings.HasSuffix(stem, "fill") {
		return "", "", fmt.Errorf("laharzutil: %q is not named for a filled DEM; expected a \"...fill%s\" suffix", filepath.Base(input), ext)
	}
	prefix := strings.TrimSuffix(stem, "fill")
	demPath = input
	d8Path = filepath.Join(filepath.Dir(input), prefix+"dir"+ext)
	return demPath, d8Path, nil
}
