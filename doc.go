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

// Package laharz implements an energy-cone / LAHARZ-style lahar inundation
// engine: given a filled DEM, a D8 flow-direction raster, and a source
// point with an estimated flow volume, it predicts the ground footprint of
// a volcanic mudflow as a multi-level inundation raster.
//
// The package is organized around the downstream walk (Walk), which at
// each channel cell invokes a cross-section sweep (sweep) to flood cells
// laterally until a volume-derived area budget is exhausted, and tracks
// the overall planimetric budget in an InundationRaster. AutoVolume wraps
// Walk with a retry loop that shrinks an over-large input volume until the
// flow fits on the DEM.
//
// DEM hydrologic preconditioning (pit filling, D8 derivation, flow
// accumulation) and source-point discovery are out of scope; see
// collaborators.go for their interfaces.
package laharz
