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

package hwy

import (
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel represents the current SIMD instruction set in use.
// Selection happens once, at package init() time, from compile-time
// (GOARCH) and init-time (CPU feature probe) facts — never re-probed
// mid-call, per the "no dynamic ISA probing at runtime" non-goal.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota
	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2
	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512
	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON
)

func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel and currentWidth are set by init() in dispatch_amd64.go,
// dispatch_arm64.go or dispatch_other.go, whichever matches GOARCH.
var currentLevel DispatchLevel
var currentWidth int // SIMD register width in bytes; 16 in scalar mode.

// CurrentLevel returns the SIMD instruction set selected at init time.
func CurrentLevel() DispatchLevel { return currentLevel }

// CurrentWidth returns the SIMD register width in bytes (16 for
// SSE2/NEON-equivalent, 32 for AVX2, 64 for AVX-512).
func CurrentWidth() int { return currentWidth }

// HasSIMD returns true if hardware SIMD acceleration is in use.
func HasSIMD() bool { return currentLevel != DispatchScalar }

// noSimdEnv checks the TINYBLAS_NO_SIMD environment variable, which forces
// scalar fallback regardless of detected CPU features. Mirrors the
// teacher's HWY_NO_SIMD toggle in hwy/dispatch.go.
func noSimdEnv() bool {
	val := os.Getenv("TINYBLAS_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// GemvGuardEnv reports whether the dispatcher's n<2 gemv guard (§4.7) is
// enabled. TINYBLAS_GEMV_GUARD set to a false value (e.g. 0) disables it;
// unset, truthy or unparsable values keep the guard, matching the
// conservative choice spec.md's open question leaves to the implementer.
func GemvGuardEnv() bool {
	val := os.Getenv("TINYBLAS_GEMV_GUARD")
	if val == "" {
		return true
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return true
	}
	return b
}

// MaxLanes returns the maximum number of lanes for type T at the current
// SIMD width, e.g. 8 float32 lanes at AVX2 (32-byte) width.
func MaxLanes[T Lanes]() int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	if elementSize == 0 {
		return 0
	}
	return currentWidth / elementSize
}
