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

// FloatView describes one floating-point operand: m (or n) rows of k
// columns, row i starting at Data[LD*i : LD*i+k], the fastest-varying index
// being the column.
type FloatView[T hwy.Floats] struct {
	Data []T
	LD   int
}

func (v FloatView[T]) row(i int) []T { return v.Data[v.LD*i:] }

// registerCount reports the vector-register file size the tile-shape table
// branches on: 32 on AVX-512 and NEON, 16 on AVX2, 0 when no SIMD is live
// (the caller is expected to have already rejected the path in that case).
func registerCount() int {
	switch hwy.CurrentLevel() {
	case hwy.DispatchAVX512, hwy.DispatchNEON:
		return 32
	case hwy.DispatchAVX2:
		return 16
	default:
		return 0
	}
}

// tileShape is one row of the RM/RN/BM selection table.
type tileShape struct {
	RM, RN, BM int
	StripeBN   int
}

// chooseTileShape walks the §4.4 table in order and returns the first
// matching row. ok is false when no row matches, meaning the floating
// engine cannot service this shape on the current ISA.
func chooseTileShape(m, nth int) (tileShape, bool) {
	regs := registerCount()
	switch {
	case regs == 32 && m%16 == 0 && m/16 >= nth:
		return tileShape{4, 6, 4, 12}, true
	case regs == 32 && m%8 == 0:
		return tileShape{4, 6, 2, 12}, true
	case regs == 32 && m%4 == 0:
		return tileShape{4, 6, 1, 12}, true
	case regs == 16 && m%16 == 0 && m/16 >= nth:
		return tileShape{4, 3, 4, 24}, true
	case regs == 16 && m%8 == 0:
		return tileShape{4, 3, 2, 24}, true
	case regs == 16 && m%4 == 0:
		return tileShape{4, 3, 1, 24}, true
	default:
		return tileShape{}, false
	}
}

// chooseColumnTile implements the recursive RN fallback: given n, pick
// SIZE_N = ceil(n / ceil(n/RN)); if it undershoots RN, retry with RN-1. RN
// reaching 0 is an internal consistency violation — the table above never
// hands out an RN that can't eventually cover n >= 1.
func chooseColumnTile(n, rn int) int {
	for rn > 0 {
		numTiles := (n + rn - 1) / rn
		sizeN := (n + numTiles - 1) / numTiles
		if sizeN >= rn {
			return rn
		}
		rn--
	}
	assertInternal(false, "column tile fallback exhausted RN for n=%d", n)
	return 0
}

// gemmBloc computes the RM x RN block of C with top-left corner (ii, jj),
// accumulating over k in steps of KN lanes widened to float32. Per §4.4, the
// k-loop fuses each widened load into an RM x RN array of accumulator
// vectors via MulAdd and only reduces lanes to a scalar once, after the
// reduction completes. When RM <= RN the outer loop loads RM left-hand
// vectors and performs RM fused-multiply-adds per right-hand vector,
// shifting register pressure to the larger dimension; otherwise the loop
// nest is swapped. k is guaranteed a multiple of KN by the caller, so every
// widened load spans exactly KN lanes and the accumulator vectors never
// change width across iterations.
func gemmBloc[TA, TB hwy.Floats](a FloatView[TA], b FloatView[TB], c []float32, ldc, k, ii, jj, rm, rn int) {
	kn := hwy.MaxLanes[float32]()
	assertInternal(kn > 0, "zero-width float lane count")

	acc := make([][]hwy.Vec[float32], rm)
	for i := range acc {
		acc[i] = make([]hwy.Vec[float32], rn)
		for j := range acc[i] {
			acc[i][j] = hwy.Zero[float32]()
		}
	}

	if rm <= rn {
		aVecs := make([]hwy.Vec[float32], rm)
		for l := 0; l < k; l += kn {
			for i := range rm {
				aVecs[i] = hwy.LoadWiden(a.row(ii + i)[l : l+kn])
			}
			for j := range rn {
				bv := hwy.LoadWiden(b.row(jj + j)[l : l+kn])
				for i := range rm {
					acc[i][j] = hwy.MulAdd(aVecs[i], bv, acc[i][j])
				}
			}
		}
	} else {
		bVecs := make([]hwy.Vec[float32], rn)
		for l := 0; l < k; l += kn {
			for j := range rn {
				bVecs[j] = hwy.LoadWiden(b.row(jj + j)[l : l+kn])
			}
			for i := range rm {
				av := hwy.LoadWiden(a.row(ii + i)[l : l+kn])
				for j := range rn {
					acc[i][j] = hwy.MulAdd(av, bVecs[j], acc[i][j])
				}
			}
		}
	}

	for j := range rn {
		for i := range rm {
			c[ldc*(jj+j)+(ii+i)] = hwy.ReduceSum(acc[i][j])
		}
	}
}
