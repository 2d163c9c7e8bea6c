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

// quantUnit is the coarsest row/column granularity the flat partitioner
// hands to mnpack; mnpack itself refines down to the (mc,nc) table.
const quantUnit = 4

// RunQuant partitions the (m,n) grid flatly across params.Nth workers: no
// barrier, no shared counter. Each worker claims duty = ceil(tiles/nth)
// contiguous unit-tiles starting at duty*ith and runs mnpack over each
// assigned unit-tile. Imbalance between workers is accepted because block
// decoding, not scheduling overhead, dominates the quantised path's cost.
func RunQuant(params Params, m, n, k int, a, b QuantView, c []float32, ldc int, has32Regs bool) {
	assertPrecondition(params.Ith < params.Nth, "ith=%d >= nth=%d", params.Ith, params.Nth)

	kBlocks := k / BlockSize
	ytiles := (m + quantUnit - 1) / quantUnit
	xtiles := (n + quantUnit - 1) / quantUnit
	tiles := ytiles * xtiles
	if tiles == 0 {
		return
	}

	duty := (tiles + params.Nth - 1) / params.Nth
	start := duty * params.Ith
	end := min(start+duty, tiles)

	for t := start; t < end; t++ {
		ty, tx := t/xtiles, t%xtiles
		m0 := ty * quantUnit
		n0 := tx * quantUnit
		m1 := min(m0+quantUnit, m)
		n1 := min(n0+quantUnit, n)
		mnpack(a, b, c, ldc, kBlocks, m0, m1, n0, n1, has32Regs)
	}
}
