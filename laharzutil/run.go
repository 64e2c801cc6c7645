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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lahar-model/laharz"
)

// Run executes the "run" subcommand: it loads the DEM and D8 rasters
// named by cfg, reads the coordinate file, computes an inundation
// raster for every source point, and writes one output file per point.
//
// Grounded on the teacher's inmaputil.Run orchestration of
// inmaputil.InitInMAPdata/InitInMAP/InMAP.Run followed by output
// writing; the shape here (resolve paths, load inputs, batch-process,
// write outputs, log progress) is the same pipeline, narrowed to
// laharz's single-pass, no-simulation-state domain.
func Run(cfg *Cfg) error {
	demFile := cfg.GetString("DEMFile")
	if demFile == "" {
		return fmt.Errorf("laharzutil: DEMFile must be specified")
	}
	demPath, d8Path, err := demAndD8Paths(demFile)
	if err != nil {
		return err
	}

	outputType := cfg.GetString("OutputType")
	if err := checkOutputType(outputType); err != nil {
		return err
	}
	confidence := cfg.GetFloat64("ConfidenceLevel")
	if err := checkConfidenceLevel(confidence); err != nil {
		return err
	}
	outputDir, err := checkOutputDir(cfg.GetString("OutputDir"), demPath)
	if err != nil {
		return err
	}
	logFile := checkLogFile(cfg.GetString("LogFile"), outputDir)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("laharzutil: opening LogFile: %w", err)
		}
		defer f.Close()
		cfg.Log.SetOutput(f)
	}

	transform := laharz.Transform{CellWidth: 1.0}
	if wf, err := ReadWorldFile(worldFilePath(demPath)); err == nil {
		transform = wf
	}
	cfg.Log.Infof("laharz: loading DEM from %s", demPath)
	dem, err := ReadDEM(demPath, transform)
	if err != nil {
		return err
	}
	cfg.Log.Infof("laharz: loading D8 raster from %s", d8Path)
	d8, err := ReadD8(d8Path, transform)
	if err != nil {
		return err
	}
	wkt := readSidecarWKT(demPath)

	coordFile := cfg.GetString("CoordinateFile")
	if coordFile == "" {
		return fmt.Errorf("laharzutil: CoordinateFile must be specified")
	}
	f, err := os.Open(coordFile)
	if err != nil {
		return fmt.Errorf("laharzutil: opening CoordinateFile: %w", err)
	}
	points, err := ReadCoordinates(f, cfg.GetFloat64("Volume"))
	f.Close()
	if err != nil {
		return err
	}
	cfg.Log.Infof("laharz: %d source point(s) loaded", len(points))

	numWorkers := cfg.GetInt("NumProcessors")
	progress := func(total, done int) {
		cfg.Log.Infof("laharz: %d/%d source points complete", done, total)
	}
	results := RunBatch(context.Background(), dem, d8, points, confidence, numWorkers, progress)

	for _, r := range results {
		if r.Skip {
			cfg.Log.Warnf("laharz: point %d (%g, %g) skipped: volume at or below V_MIN", r.Index, r.Point.X, r.Point.Y)
			continue
		}
		if r.Err != nil {
			cfg.Log.Errorf("laharz: point %d (%g, %g) failed: %v", r.Index, r.Point.X, r.Point.Y, r.Err)
			continue
		}

		base := filepath.Join(outputDir, fmt.Sprintf("stream_%d_%s", r.Index, trimTrailingZeros(r.Volume)))
		switch outputType {
		case "raster":
			if err := WriteRaster(base+".tif", r.Walk.Raster, transform, wkt); err != nil {
				cfg.Log.Errorf("laharz: writing output for point %d: %v", r.Index, err)
			}
		case "vector":
			if err := WriteVector(base+".shp", r.Walk.Raster, transform, wkt); err != nil {
				cfg.Log.Errorf("laharz: writing output for point %d: %v", r.Index, err)
			}
		}
	}
	return nil
}

// readSidecarWKT reads a .prj file alongside demPath, if one exists,
// passing an empty string through otherwise (WKT is optional).
func readSidecarWKT(demPath string) string {
	ext := filepath.Ext(demPath)
	prj := strings.TrimSuffix(demPath, ext) + ".prj"
	b, err := os.ReadFile(prj)
	if err != nil {
		return ""
	}
	return string(b)
}

// trimTrailingZeros formats v compactly for use in an output file name.
func trimTrailingZeros(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
