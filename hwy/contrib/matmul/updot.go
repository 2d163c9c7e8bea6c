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

// updotImpl is selected once at package init from the statically known CPU
// feature set, mirroring the compile-time tier selection the spec
// describes. There is no runtime re-probing.
var updotImpl func(u, s *[32]int8) [8]float32

func init() {
	switch {
	case hwy.HasVNNI():
		updotImpl = updotVNNI
	case hwy.HasAVXVNNI():
		updotImpl = updotAVXVNNI
	default:
		updotImpl = updotFallback
	}
}

// Updot computes the 32-lane u8xi8 dot product, accumulating four products
// per output lane into 8 f32 partial sums. u is treated as unsigned, s as
// signed — callers must pre-sign-fold through SignFold so that u is
// non-negative before calling, or the VNNI tiers' saturation semantics and
// the scalar fallback would disagree.
func Updot(u, s *[32]int8) [8]float32 {
	return updotImpl(u, s)
}

// updotVNNI emulates a dpbusd-style dot: for byte lanes [4i, 4i+4) compute
// sum(uint8(u[j]) * int32(s[j])) into partial sum i.
func updotVNNI(u, s *[32]int8) [8]float32 {
	var out [8]float32
	for i := range 8 {
		var acc int32
		for j := 4 * i; j < 4*i+4; j++ {
			acc += int32(uint8(u[j])) * int32(s[j])
		}
		out[i] = float32(acc)
	}
	return out
}

// updotAVXVNNI is the alternate-mnemonic tier; identical arithmetic to
// updotVNNI, kept as a distinct function so the init-time selection reflects
// the spec's three named tiers rather than collapsing two of them.
func updotAVXVNNI(u, s *[32]int8) [8]float32 {
	return updotVNNI(u, s)
}

// updotFallback widens u*s to i16 pairwise, horizontally adds adjacent i16
// pairs into i32, then casts to f32 — the path taken when no VNNI-family
// instruction is available. With u pre-sign-folded non-negative, this is
// exact integer arithmetic and bit-identical to the VNNI tiers.
func updotFallback(u, s *[32]int8) [8]float32 {
	var widened [32]int32
	for j := range 32 {
		widened[j] = int32(uint8(u[j])) * int32(s[j])
	}
	var out [8]float32
	for i := range 8 {
		var acc int32
		for j := 4 * i; j < 4*i+4; j += 2 {
			acc += widened[j] + widened[j+1]
		}
		out[i] = float32(acc)
	}
	return out
}

// SignFold applies AVX sign_epi8 semantics lanewise: zero where y == 0,
// negate x where y < 0, pass x through where y > 0. Callers use this to
// pre-sign-fold the unsigned operand of Updot through sign(A, A) so that
// operand is guaranteed non-negative.
func SignFold(x, y *[32]int8, out *[32]int8) {
	for i := range 32 {
		switch {
		case y[i] > 0:
			out[i] = x[i]
		case y[i] < 0:
			out[i] = -x[i]
		default:
			out[i] = 0
		}
	}
}
