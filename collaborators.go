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

import "context"

// HydrologyPreprocessor produces a filled DEM and its companion D8
// flow-direction raster from a raw elevation source. Pit filling, flow
// accumulation, and D8 derivation are out of scope for this package
// (spec.md's Non-goals); callers supply an implementation appropriate to
// their input data (e.g. wrapping a GDAL/TauDEM-style hydrology tool).
type HydrologyPreprocessor interface {
	// Preprocess returns a filled DEM and its matching D8Raster for the
	// raw elevation data at path.
	Preprocess(ctx context.Context, path string) (*DEM, *D8Raster, error)
}

// SourcePointFinder discovers candidate lahar source points (and their
// estimated volumes) from a DEM and auxiliary data such as crater
// outlines or prior deposit mapping. Out of scope for this package;
// callers supply points directly via a coordinate file or an
// implementation of this interface.
type SourcePointFinder interface {
	// FindSourcePoints returns candidate StartPoints for dem.
	FindSourcePoints(ctx context.Context, dem *DEM) ([]StartPoint, error)
}
