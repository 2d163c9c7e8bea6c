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

// Package matmul implements the transposed-left-operand matmul engine:
// C = Aᵀ·B for dense f32/f16/bf16 and block-quantised q8_0/q4_0/q5_0/iq4_nl
// left operands against a q8_0 right operand. The output is always f32.
//
// The sole public entry point is MatMul. It returns false whenever no
// handwritten kernel matches the requested dtype combination, shape, or
// enabled ISA — the caller must then fall back to a generic implementation
// outside this package.
package matmul

import (
	"fmt"

	"github.com/ajroetker/tinyblas/hwy/contrib/workerpool"
)

// DType tags the element or block-quantisation kind of an operand.
type DType int

const (
	F32 DType = iota
	F16
	BF16
	Q8_0
	Q4_0
	Q5_0
	IQ4NL
)

func (d DType) String() string {
	switch d {
	case F32:
		return "f32"
	case F16:
		return "f16"
	case BF16:
		return "bf16"
	case Q8_0:
		return "q8_0"
	case Q4_0:
		return "q4_0"
	case Q5_0:
		return "q5_0"
	case IQ4NL:
		return "iq4_nl"
	default:
		return "unknown"
	}
}

// IsQuantized reports whether d is one of the block-quantised left-operand
// encodings.
func (d DType) IsQuantized() bool {
	switch d {
	case Q8_0, Q4_0, Q5_0, IQ4NL:
		return true
	default:
		return false
	}
}

// Params bundles the per-call thread identity and the coordination handle
// borrowed from the host pool. It is the Go analogue of the spec's
// "params bundles (ith, nth, threadpool-handle)".
type Params struct {
	Ith   int
	Nth   int
	Coord *workerpool.Coordinator
}

// assertPrecondition panics on a caller bug: invalid shape, aliasing, or an
// out-of-range thread identity. Per the design these are debug-time
// assertions, not recoverable errors — release behaviour is undefined, but
// Go has no way to compile out an assertion, so this always panics rather
// than silently corrupting memory.
func assertPrecondition(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("matmul: precondition violation: "+format, args...))
	}
}

// assertInternal panics on an internal consistency failure: an invariant
// the partitioner or a tile-shape table was supposed to guarantee. This
// indicates a bug in this package, never in the caller.
func assertInternal(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("matmul: internal consistency violation: "+format, args...))
	}
}

// validateShape validates the common dimension and leading-dimension invariants
// from the data model: lda >= k, ldb >= k, ldc >= m, and all dimensions
// non-negative. kUnit lets quantised callers pass k in scalars while lda/ldb
// are expressed in blocks (kUnit = 32).
func validateShape(m, n, k, lda, ldb, ldc, kUnit int) {
	assertPrecondition(m >= 0 && n >= 0 && k >= 0, "negative dimension m=%d n=%d k=%d", m, n, k)
	kInUnits := k / kUnit
	assertPrecondition(lda >= kInUnits, "lda=%d < k/kUnit=%d", lda, kInUnits)
	assertPrecondition(ldb >= kInUnits, "ldb=%d < k/kUnit=%d", ldb, kInUnits)
	assertPrecondition(ldc >= m, "ldc=%d < m=%d", ldc, m)
}
