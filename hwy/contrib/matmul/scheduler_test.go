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

import (
	"testing"

	"github.com/ajroetker/tinyblas/hwy/contrib/workerpool"
)

// TestFloatSchedulerCoversEveryCell instruments gemmBloc's output writes
// indirectly: every C cell within [0,m)x[0,n) must end up equal to k (all
// inputs are 1), proving the job-iteration protocol covers the full grid
// regardless of worker count. k is 16 so it is a multiple of the float32
// lane count on every SIMD level, as gemmBloc requires.
func TestFloatSchedulerCoversEveryCell(t *testing.T) {
	if registerCount() == 0 {
		t.Skip("no SIMD on this build target")
	}
	const m, n, k = 16, 10, 16
	a := make([]float32, m*k)
	b := make([]float32, n*k)
	for i := range a {
		a[i] = 1
	}
	for i := range b {
		b[i] = 1
	}

	for _, nth := range []int{1, 3, 5} {
		c := make([]float32, m*n)
		shape, ok := chooseTileShape(m, nth)
		if !ok {
			t.Skip("no tile shape for this m/ISA combination")
		}
		shape.RN = chooseColumnTile(n, shape.RN)

		pool := workerpool.New(nth)
		coord := workerpool.NewCoordinator(nth)
		pool.Spawn(nth, func(ith int) {
			params := Params{Ith: ith, Nth: nth, Coord: coord}
			av := FloatView[float32]{Data: a, LD: k}
			bv := FloatView[float32]{Data: b, LD: k}
			RunFloat(params, m, n, k, shape, av, bv, c, m)
		})
		pool.Close()

		for i, v := range c {
			if v != float32(k) {
				t.Fatalf("nth=%d: cell %d uncovered or miscomputed: got %v want %v", nth, i, v, k)
			}
		}
	}
}

func TestMnpackLookupCollapsesOn16Registers(t *testing.T) {
	mc, nc := mnpackLookup(0x44, false)
	if mc != 4 || nc != 2 {
		t.Fatalf("0x44 on 16 registers = (%d,%d), want (4,2)", mc, nc)
	}
	mc, nc = mnpackLookup(0x44, true)
	if mc != 4 || nc != 4 {
		t.Fatalf("0x44 on 32 registers = (%d,%d), want (4,4)", mc, nc)
	}
}

func TestMnpackCoversFullQuantGrid(t *testing.T) {
	const m, n, kBlocks = 11, 9, 1
	a := QuantView{Data: make([]byte, m*Q8_0BlockBytes), LD: 1, BlockBytes: Q8_0BlockBytes, Decode: DecodeQ8}
	b := QuantView{Data: make([]byte, n*Q8_0BlockBytes), LD: 1, BlockBytes: Q8_0BlockBytes, Decode: DecodeQ8}
	for i := range m {
		blk := a.block(i, 0)
		encodeDelta(blk, 1.0)
		for l := range 32 {
			blk[2+l] = 1
		}
	}
	for j := range n {
		blk := b.block(j, 0)
		encodeDelta(blk, 1.0)
		for l := range 32 {
			blk[2+l] = 1
		}
	}

	c := make([]float32, m*n)
	mnpack(a, b, c, m, kBlocks, 0, m, 0, n, true)

	for i := range m {
		for j := range n {
			if got := c[m*j+i]; got != 32 {
				t.Fatalf("cell (%d,%d) = %v, want 32 (uncovered or miscomputed)", i, j, got)
			}
		}
	}
}

func TestRunQuantFlatPartitionCoversGrid(t *testing.T) {
	const m, n, k = 13, 7, 32
	a := QuantView{Data: make([]byte, m*Q8_0BlockBytes), LD: 1, BlockBytes: Q8_0BlockBytes, Decode: DecodeQ8}
	b := QuantView{Data: make([]byte, n*Q8_0BlockBytes), LD: 1, BlockBytes: Q8_0BlockBytes, Decode: DecodeQ8}
	for i := range m {
		blk := a.block(i, 0)
		encodeDelta(blk, 1.0)
		for l := range 32 {
			blk[2+l] = 1
		}
	}
	for j := range n {
		blk := b.block(j, 0)
		encodeDelta(blk, 1.0)
		for l := range 32 {
			blk[2+l] = 1
		}
	}

	const nth = 4
	c := make([]float32, m*n)
	for ith := range nth {
		RunQuant(Params{Ith: ith, Nth: nth}, m, n, k, a, b, c, m, true)
	}
	for i := range m {
		for j := range n {
			if got := c[m*j+i]; got != 32 {
				t.Fatalf("cell (%d,%d) = %v, want 32", i, j, got)
			}
		}
	}
}
