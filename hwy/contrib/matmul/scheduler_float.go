// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import "github.com/ajroetker/tinyblas/hwy"

// floatJobGrid precomputes the tile-position bookkeeping the two-level
// scheduler needs: how many row-tiles (ytiles), how many RN-wide column
// tiles (xtiles), where the RN/RN-1 width boundary falls (jjRN), and how
// the column stripes are sized (NB_BN / SIZE_BN / jjBN).
type floatJobGrid struct {
	shape tileShape
	m, n  int
	nth   int

	ytiles int
	xtiles int
	jjRN   int // number of full-RN tiles; remaining xtiles-jjRN are RN-1 wide

	nbBN   int // number of column stripes
	sizeBN int // width (in tile positions) of the first jjBN stripes
	jjBN   int // number of stripes with width sizeBN; rest have sizeBN-1

	nbJob int
}

func newFloatJobGrid(shape tileShape, m, n, nth int) floatJobGrid {
	g := floatJobGrid{shape: shape, m: m, n: n, nth: nth}
	g.ytiles = m / (shape.RM * shape.BM)
	g.xtiles = (n + shape.RN - 1) / shape.RN
	g.jjRN = g.xtiles - (g.xtiles*shape.RN - n)

	bn := shape.StripeBN
	g.nbBN = max(1, (g.xtiles+bn/2)/bn) // round(xtiles/BN)
	if g.nbBN == 0 {
		g.nbBN = 1
	}
	g.sizeBN = (g.xtiles + g.nbBN - 1) / g.nbBN
	g.jjBN = g.nbBN - (g.nbBN*g.sizeBN - g.xtiles)

	g.nbJob = g.ytiles * g.nbBN
	return g
}

// colOffset maps a tile position p in [0, xtiles] to its real column
// offset, accounting for the RN/RN-1 width boundary at jjRN.
func (g floatJobGrid) colOffset(p int) int {
	if p <= g.jjRN {
		return p * g.shape.RN
	}
	return g.jjRN*g.shape.RN + (p-g.jjRN)*(g.shape.RN-1)
}

// stripeBounds returns the [jr0, jrN) tile-position range owned by stripe
// jb, in tile-position units (not yet translated to column offsets).
func (g floatJobGrid) stripeBounds(jb int) (jr0, jrN int) {
	if jb < g.jjBN {
		jr0 = jb * g.sizeBN
		jrN = jr0 + g.sizeBN
	} else {
		jr0 = g.jjBN*g.sizeBN + (jb-g.jjBN)*(g.sizeBN-1)
		jrN = jr0 + (g.sizeBN - 1)
	}
	return
}

// RunFloat drives the floating-point tile engine across the full (m, n)
// output grid using the two-level scheduler from §4.6: each of params.Nth
// participants claims jobs from the shared atomic counter between an
// opening and a closing barrier.
func RunFloat[TA, TB hwy.Floats](params Params, m, n, k int, shape tileShape, a FloatView[TA], b FloatView[TB], c []float32, ldc int) {
	assertPrecondition(params.Ith < params.Nth, "ith=%d >= nth=%d", params.Ith, params.Nth)
	assertPrecondition(params.Coord != nil, "RunFloat requires a Coordinator")

	grid := newFloatJobGrid(shape, m, n, params.Nth)
	assertInternal(grid.ytiles > 0, "ytiles degenerated to 0 for m=%d RM=%d BM=%d", m, shape.RM, shape.BM)

	if params.Ith == 0 {
		params.Coord.Counter.Set(int64(params.Nth))
	}
	params.Coord.Open.Wait()

	processJob := func(j int) {
		ii := (j % grid.ytiles) * shape.RM * shape.BM
		jb := j / grid.ytiles
		jr0, jrN := grid.stripeBounds(jb)

		for bi := 0; bi < shape.BM*shape.RM; bi += shape.RM {
			for p := jr0; p < jrN; p++ {
				width := shape.RN
				if p >= grid.jjRN {
					width = shape.RN - 1
				}
				if width <= 0 {
					continue
				}
				jj := grid.colOffset(p)
				gemmBloc(a, b, c, ldc, k, ii+bi, jj, shape.RM, width)
			}
		}
	}

	job := int64(params.Ith)
	for job < int64(grid.nbJob) {
		processJob(int(job))
		job = params.Coord.Counter.Add(1)
	}

	params.Coord.Close.Wait()
}
