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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// CPU feature flags. The VNNI flags are consulted by the updot dispatch
// (hwy/contrib/matmul); hasF16C and hasAVX512BF16 are exposed through
// HasF16C/HasBF16Dot and are not consulted by the floating dispatcher.
var (
	hasF16C       bool // set from the AVX and FMA bits; F16C itself is not probed
	hasAVX512BF16 bool // AVX-512 BF16 dot products (Cooper Lake+)
	hasAVX512VNNI bool // dedicated VNNI dpbusd instruction (Cascade Lake+)
	hasAVXVNNI    bool // AVX-VNNI: VNNI without requiring AVX-512 (Alder Lake+)
)

func init() {
	if noSimdEnv() {
		currentLevel = DispatchScalar
		currentWidth = 16
		return
	}

	switch {
	case cpu.X86.HasAVX512 && cpu.X86.HasAVX512F:
		currentLevel = DispatchAVX512
		currentWidth = 64
	case cpu.X86.HasAVX2:
		currentLevel = DispatchAVX2
		currentWidth = 32
	default:
		currentLevel = DispatchScalar
		currentWidth = 16
	}

	if cpu.X86.HasAVX {
		hasF16C = cpu.X86.HasFMA
	}
	hasAVX512BF16 = cpu.X86.HasAVX512 && cpu.X86.HasAVX512BF16
	hasAVX512VNNI = cpu.X86.HasAVX512 && cpu.X86.HasAVX512VNNI
	hasAVXVNNI = cpu.X86.HasAVXVNNI
}

// HasF16C returns true if the CPU reports both AVX and FMA, which this
// package takes as the indicator for F16C float16<->float32 conversion.
func HasF16C() bool { return hasF16C }

// HasBF16Dot returns true if the CPU has a native bf16 dot-product path.
func HasBF16Dot() bool { return hasAVX512BF16 }

// HasVNNI returns true if the dedicated VNNI (dpbusd) instruction is available.
func HasVNNI() bool { return hasAVX512VNNI }

// HasAVXVNNI returns true if the AVX-VNNI (non-AVX-512) mnemonic is available.
func HasAVXVNNI() bool { return hasAVXVNNI }
