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

// QuantView describes one block-quantised operand: LD blocks per row, each
// BlockBytes long, decoded through Decode into a 32-lane signed byte
// vector. Row i's blocks start at Data[(LD*i)*BlockBytes:].
type QuantView struct {
	Data       []byte
	LD         int // blocks per row
	BlockBytes int
	Decode     func(blk []byte, out *[32]int8)
}

func (v QuantView) block(row, blk int) []byte {
	off := (v.LD*row + blk) * v.BlockBytes
	return v.Data[off : off+v.BlockBytes]
}

func (v QuantView) delta(row, blk int) float32 {
	return blockDelta(v.block(row, blk))
}

// mnpackShape maps the (min(m-m0,4), min(n-n0,4)) key to the (mc, nc) tile
// chosen for the bulk rectangle, per §4.5's table.
var mnpackShape = map[int][2]int{
	0x44: {4, 4},
	0x43: {4, 3},
	0x34: {3, 4},
	0x33: {3, 3},
	0x42: {4, 2},
	0x24: {2, 4},
	0x32: {3, 2},
	0x23: {2, 3},
	0x41: {4, 1},
	0x14: {1, 4},
	0x22: {2, 2},
	0x31: {3, 1},
	0x13: {1, 3},
	0x21: {2, 1},
	0x12: {1, 2},
	0x11: {1, 1},
}

// sixteenRegisterCollapse is applied on platforms with only 16 vector
// registers: 0x44/0x43/0x42 collapse to (4,2) and 0x34/0x24 to (2,4).
var sixteenRegisterCollapse = map[int][2]int{
	0x44: {4, 2},
	0x43: {4, 2},
	0x42: {4, 2},
	0x34: {2, 4},
	0x24: {2, 4},
}

func mnpackLookup(key int, has32Regs bool) (mc, nc int) {
	if !has32Regs {
		if shape, ok := sixteenRegisterCollapse[key]; ok {
			return shape[0], shape[1]
		}
	}
	shape, ok := mnpackShape[key]
	assertInternal(ok, "mnpack: no shape for key 0x%02x", key)
	return shape[0], shape[1]
}

// gemmTile computes the mc x nc block of C at (m0, n0) for the quantised
// path: Cv[j][i] += f32(A.delta*B.delta) * updot(sign(A,A), sign(B,A)),
// accumulated over kBlocks block units and written once at the end.
func gemmTile(a, b QuantView, c []float32, ldc, kBlocks, m0, n0, mc, nc int) {
	acc := make([][]float32, mc)
	for i := range acc {
		acc[i] = make([]float32, nc)
	}

	var au, as, bu, bs [32]int8
	for l := 0; l < kBlocks; l++ {
		for i := range mc {
			ablk := a.block(m0+i, l)
			a.Decode(ablk, &au)
			SignFold(&au, &au, &as) // abs(A), non-negative by construction
			ad := a.delta(m0+i, l)

			for j := range nc {
				bblk := b.block(n0+j, l)
				b.Decode(bblk, &bu)
				SignFold(&bu, &au, &bs) // copy_sign(B, A)
				bd := b.delta(n0+j, l)

				partials := Updot(&as, &bs)
				var dot float32
				for _, p := range partials {
					dot += p
				}
				acc[i][j] += ad * bd * dot
			}
		}
	}

	for j := range nc {
		for i := range mc {
			c[ldc*(n0+j)+(m0+i)] = acc[i][j]
		}
	}
}

// gemm4xN and gemmMx4 are the 4-wide-fast variants named in §4.5: in a
// SIMD-intrinsic implementation the four per-block deltas for the fixed
// dimension would be packed into one 64-bit word and converted to four f32
// lanes in a single half-to-float conversion. That is purely a throughput
// optimisation over gemmTile's per-element conversion; the arithmetic
// result is identical, so both delegate to the generic kernel.
func gemm4xN(a, b QuantView, c []float32, ldc, kBlocks, m0, n0, nc int) {
	gemmTile(a, b, c, ldc, kBlocks, m0, n0, 4, nc)
}

func gemmMx4(a, b QuantView, c []float32, ldc, kBlocks, m0, n0, mc int) {
	gemmTile(a, b, c, ldc, kBlocks, m0, n0, mc, 4)
}

// mnpack recursively partitions the [m0,m)x[n0,n) region: pick (mc, nc)
// from the key table keyed off min(m-m0,4)<<4 | min(n-n0,4), dispatch one
// rectangle of floor((m-m0)/mc)*mc x floor((n-n0)/nc)*nc using the widest
// available tile shape, then recurse on the two remaining L-shaped strips
// until the region is empty.
func mnpack(a, b QuantView, c []float32, ldc, kBlocks, m0, m, n0, n int, has32Regs bool) {
	if m0 >= m || n0 >= n {
		return
	}
	key := min(m-m0, 4)<<4 | min(n-n0, 4)
	mc, nc := mnpackLookup(key, has32Regs)

	mBlk := ((m - m0) / mc) * mc
	nBlk := ((n - n0) / nc) * nc
	assertInternal(mBlk > 0 && nBlk > 0, "mnpack: degenerate tile at m0=%d n0=%d mc=%d nc=%d", m0, n0, mc, nc)

	for i := m0; i < m0+mBlk; i += mc {
		for j := n0; j < n0+nBlk; j += nc {
			switch {
			case mc == 4 && nc != 4:
				gemm4xN(a, b, c, ldc, kBlocks, i, j, nc)
			case nc == 4 && mc != 4:
				gemmMx4(a, b, c, ldc, kBlocks, i, j, mc)
			default:
				gemmTile(a, b, c, ldc, kBlocks, i, j, mc, nc)
			}
		}
	}

	mnpack(a, b, c, ldc, kBlocks, m0+mBlk, m, n0, n, has32Regs)
	mnpack(a, b, c, ldc, kBlocks, m0, m0+mBlk, n0+nBlk, n, has32Regs)
}
