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

// MatMul is the sole public entry point: it validates shapes, picks a
// kernel family by (Atype, Btype, Ctype) together with the statically
// known CPU features, and either runs a handwritten kernel to completion
// and returns true, or returns false without writing a single cell of C.
// A false return is a contract, not an error: the caller must fall back to
// a generic implementation it supplies itself.
//
// a and b hold the left/right operand data as one of []float32, []hwy.Float16,
// []hwy.BFloat16 for the dense paths, or []byte (the raw little-endian block
// stream) for the quantised paths; the concrete type must match atype/btype.
// lda and ldb are in elements for dense paths, in blocks for quantised paths.
func MatMul(params Params, m, n, k int, a any, lda int, b any, ldb int, c []float32, ldc int, atype, btype, ctype DType) bool {
	assertPrecondition(params.Nth > 0, "nth=%d must be positive", params.Nth)
	assertPrecondition(params.Ith < params.Nth, "ith=%d >= nth=%d", params.Ith, params.Nth)
	assertPrecondition(m >= 0 && n >= 0 && k >= 0, "negative dimension m=%d n=%d k=%d", m, n, k)

	if ctype != F32 {
		return false
	}
	if !hwy.HasSIMD() && n < 2 && hwy.GemvGuardEnv() {
		return false
	}

	switch atype {
	case F32:
		if btype != F32 {
			return false
		}
		return dispatchFloat(params, m, n, k, asFloatView[float32](a, lda), asFloatView[float32](b, ldb), c, ldc)

	case BF16:
		if btype != BF16 {
			return false
		}
		return dispatchFloat(params, m, n, k, asFloatView[hwy.BFloat16](a, lda), asFloatView[hwy.BFloat16](b, ldb), c, ldc)

	case F16:
		switch btype {
		case F16:
			return dispatchFloat(params, m, n, k, asFloatView[hwy.Float16](a, lda), asFloatView[hwy.Float16](b, ldb), c, ldc)
		case F32:
			if hwy.CurrentLevel() != hwy.DispatchNEON {
				return false
			}
			return dispatchFloat(params, m, n, k, asFloatView[hwy.Float16](a, lda), asFloatView[float32](b, ldb), c, ldc)
		default:
			return false
		}

	case Q8_0, Q4_0, Q5_0, IQ4NL:
		if btype != Q8_0 {
			return false
		}
		return dispatchQuant(params, m, n, k, atype, a.([]byte), lda, b.([]byte), ldb, c, ldc)

	default:
		return false
	}
}

func asFloatView[T hwy.Floats](data any, ld int) FloatView[T] {
	return FloatView[T]{Data: data.([]T), LD: ld}
}

// dispatchFloat validates the floating-engine preconditions (§4.4's
// preflight) and, if a tile shape is available for this (m, nth, ISA)
// combination, runs the two-level scheduler.
func dispatchFloat[TA, TB hwy.Floats](params Params, m, n, k int, a FloatView[TA], b FloatView[TB], c []float32, ldc int) bool {
	validateShape(m, n, k, a.LD, b.LD, ldc, 1)

	kn := hwy.MaxLanes[float32]()
	if kn == 0 || k%kn != 0 {
		return false
	}
	shape, ok := chooseTileShape(m, params.Nth)
	if !ok {
		return false
	}
	shape.RN = chooseColumnTile(n, shape.RN)
	if shape.RN == 0 {
		return false
	}

	RunFloat(params, m, n, k, shape, a, b, c, ldc)
	return true
}

// quantDecoders maps each quantised Atype to its block size and decode
// function, per §3's block-layout table.
var quantDecoders = map[DType]struct {
	blockBytes int
	decode     func(blk []byte, out *[32]int8)
}{
	Q8_0:  {Q8_0BlockBytes, DecodeQ8},
	Q4_0:  {Q4_0BlockBytes, DecodeQ4},
	Q5_0:  {Q5_0BlockBytes, DecodeQ5},
	IQ4NL: {IQ4NLBlockBytes, DecodeIQ4NL},
}

func dispatchQuant(params Params, m, n, k int, atype DType, aData []byte, lda int, bData []byte, ldb int, c []float32, ldc int) bool {
	if !hwy.HasSIMD() {
		return false
	}
	assertPrecondition(k%BlockSize == 0, "k=%d not a multiple of block size %d", k, BlockSize)
	validateShape(m, n, k, lda, ldb, ldc, BlockSize)

	ad, ok := quantDecoders[atype]
	assertInternal(ok, "dispatchQuant: no decoder registered for %s", atype)

	a := QuantView{Data: aData, LD: lda, BlockBytes: ad.blockBytes, Decode: ad.decode}
	b := QuantView{Data: bData, LD: ldb, BlockBytes: Q8_0BlockBytes, Decode: DecodeQ8}

	RunQuant(params, m, n, k, a, b, c, ldc, registerCount() == 32)
	return true
}
