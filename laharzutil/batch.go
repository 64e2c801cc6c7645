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

	"github.com/ctessum/requestcache"
	"github.com/lahar-model/laharz"
)

// Progress is called after each source point finishes, with the total
// number of points and the number completed so far (spec.md's
// supplemented progress_callback).
type Progress func(total, done int)

// pointResult is one source point's outcome from the batch driver (C7).
type pointResult struct {
	Index  int
	Point  laharz.StartPoint
	Volume float64
	Walk   *laharz.WalkResult
	Err    error
	Skip   bool
}

// batchRequest is what the requestcache.Cache processes: a single
// source point plus the read-only inputs it needs.
type batchRequest struct {
	dem        *laharz.DEM
	d8         *laharz.D8Raster
	confidence float64
	index      int
	point      laharz.StartPoint
}

// RunBatch processes every point concurrently via a requestcache.Cache,
// as permitted by spec.md §5 ("embarrassingly parallel across points,"
// no shared working raster between workers). Results are returned in
// the same order as points.
//
// Grounded on the teacher's sr.Reader.Source: a deduplicating
// requestcache.Cache fans work out to numWorkers goroutines and blocks
// the caller on (*requestcache.Request).Result.
func RunBatch(ctx context.Context, dem *laharz.DEM, d8 *laharz.D8Raster, points []laharz.StartPoint, confidence float64, numWorkers int, progress Progress) []pointResult {
	if numWorkers < 1 {
		numWorkers = 1
	}

	cache := requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
		r := request.(batchRequest)
		if r.point.Volume <= laharz.V_MIN {
			return pointResult{Index: r.index, Point: r.point, Skip: true}, nil
		}
		av, err := laharz.AutoVolume(r.dem, r.d8, r.point, r.confidence)
		if err != nil {
			return pointResult{Index: r.index, Point: r.point, Err: err}, nil
		}
		return pointResult{Index: r.index, Point: r.point, Volume: av.Volume, Walk: av.Walk}, nil
	}, numWorkers, requestcache.Deduplicate())

	requests := make([]*requestcache.Request, len(points))
	for i, p := range points {
		requests[i] = cache.NewRequest(ctx, batchRequest{
			dem: dem, d8: d8, confidence: confidence, index: i, point: p,
		}, fmt.Sprintf("point_%d", i))
	}

	results := make([]pointResult, len(points))
	for i, req := range requests {
		v, err := req.Result()
		if err != nil {
			results[i] = pointResult{Index: i, Point: points[i], Err: err}
		} else {
			results[i] = v.(pointResult)
		}
		if progress != nil {
			progress(len(points), i+1)
		}
	}
	return results
}
