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
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/lahar-model/laharz"
)

// ReadDEM decodes a single-band TIFF at path into a *laharz.DEM, using t
// for the grid's affine transform (the package has no GeoTIFF tag
// reader, so the transform must be supplied or read separately from a
// .tfw sidecar via ReadWorldFile).
//
// Only the pixel formats golang.org/x/image/tiff decodes to image.Gray
// or image.Gray16 are supported; this is the documented compromise for
// GeoTIFF-shaped I/O without a GeoTIFF tag library in scope (DESIGN.md).
func ReadDEM(path string, t laharz.Transform) (*laharz.DEM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("laharzutil: opening DEM %s: %w", path, err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("laharzutil: decoding DEM %s: %w", path, err)
	}

	bounds := img.Bounds()
	dem := laharz.NewDEM(bounds.Dy(), bounds.Dx(), t)
	for row := 0; row < bounds.Dy(); row++ {
		for col := 0; col < bounds.Dx(); col++ {
			dem.Set(row, col, grayValue(img, bounds.Min.X+col, bounds.Min.Y+row))
		}
	}
	return dem, nil
}

// ReadD8 decodes a single-band TIFF at path into a *laharz.D8Raster.
func ReadD8(path string, t laharz.Transform) (*laharz.D8Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("laharzutil: opening D8 raster %s: %w", path, err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("laharzutil: decoding D8 raster %s: %w", path, err)
	}

	bounds := img.Bounds()
	d8 := laharz.NewD8Raster(bounds.Dy(), bounds.Dx(), t)
	for row := 0; row < bounds.Dy(); row++ {
		for col := 0; col < bounds.Dx(); col++ {
			d8.Set(row, col, int(grayValue(img, bounds.Min.X+col, bounds.Min.Y+row)))
		}
	}
	return d8, nil
}

// grayValue extracts a scalar sample from img at (x, y), supporting the
// Gray and Gray16 formats golang.org/x/image/tiff produces for
// single-band integer and low dynamic range float data.
func grayValue(img image.Image, x, y int) float64 {
	switch m := img.(type) {
	case *image.Gray16:
		return float64(m.Gray16At(x, y).Y)
	case *image.Gray:
		return float64(m.GrayAt(x, y).Y)
	default:
		r, _, _, _ := img.At(x, y).RGBA()
		return float64(r)
	}
}

// WriteRaster writes raster as a single-band 16-bit TIFF at path,
// alongside a .tfw world file and a .prj WKT sidecar carrying the
// georeferencing golang.org/x/image/tiff has no tags for.
func WriteRaster(path string, raster *laharz.InundationRaster, t laharz.Transform, wkt string) error {
	nrows, ncols := raster.Shape()
	img := image.NewGray16(image.Rect(0, 0, ncols, nrows))
	for row := 0; row < nrows; row++ {
		for col := 0; col < ncols; col++ {
			img.SetGray16(col, row, color.Gray16{Y: uint16(raster.At(row, col))})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("laharzutil: creating output raster %s: %w", path, err)
	}
	defer f.Close()
	if err := tiff.Encode(f, img, nil); err != nil {
		return fmt.Errorf("laharzutil: encoding output raster %s: %w", path, err)
	}

	if err := WriteWorldFile(worldFilePath(path), t); err != nil {
		return err
	}
	if wkt != "" {
		if err := os.WriteFile(prjPath(path), []byte(wkt), 0644); err != nil {
			return fmt.Errorf("laharzutil: writing %s: %w", prjPath(path), err)
		}
	}
	return nil
}

// WriteWorldFile writes an Esri world file describing t, the six-line
// affine transform sidecar a TIFF reader uses to georeference a raster
// lacking GeoTIFF tags.
func WriteWorldFile(path string, t laharz.Transform) error {
	content := fmt.Sprintf("%g\n0.0\n0.0\n%g\n%g\n%g\n",
		t.CellWidth, -t.CellWidth, t.XLeft+t.CellWidth/2, t.YTop-t.CellWidth/2)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("laharzutil: writing world file %s: %w", path, err)
	}
	return nil
}

// ReadWorldFile reads an Esri world file at path and returns the
// laharz.Transform it describes (the world file fully determines XLeft,
// YTop, and CellWidth; non-square pixels are not supported, matching
// laharz.Transform's single CellWidth field).
func ReadWorldFile(path string) (laharz.Transform, error) {
	f, err := os.Open(path)
	if err != nil {
		return laharz.Transform{}, fmt.Errorf("laharzutil: opening world file %s: %w", path, err)
	}
	defer f.Close()

	var lines []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(lines) < 6 {
		v, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return laharz.Transform{}, fmt.Errorf("laharzutil: parsing world file %s: %w", path, err)
		}
		lines = append(lines, v)
	}
	if len(lines) != 6 {
		return laharz.Transform{}, fmt.Errorf("laharzutil: world file %s must have 6 lines, got %d", path, len(lines))
	}

	cellWidth := lines[0]
	xCenter, yCenter := lines[4], lines[5]
	return laharz.Transform{
		XLeft:     xCenter - cellWidth/2,
		YTop:      yCenter + cellWidth/2,
		CellWidth: cellWidth,
	}, nil
}

func worldFilePath(rasterPath string) string {
	ext := filepath.Ext(rasterPath)
	return strings.TrimSuffix(rasterPath, ext) + ".tfw"
}

func prjPath(rasterPath string) string {
	ext := filepath.Ext(rasterPath)
	return strings.TrimSuffix(rasterPath, ext) + ".prj"
}
