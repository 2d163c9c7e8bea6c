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

//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	if noSimdEnv() {
		currentLevel = DispatchScalar
		currentWidth = 16
		return
	}
	// NEON is mandatory on arm64; there is no runtime "absent" case to
	// fall back from, only the compile-time choice of using it or not.
	currentLevel = DispatchNEON
	currentWidth = 16
	_ = cpu.ARM64.HasASIMD
}

// HasF16C is always false on arm64 in this build: f16 is handled via NEON's
// native half-precision load/store, not an F16C-style conversion unit.
func HasF16C() bool { return false }

// HasBF16Dot always returns false on arm64: the bf16 feature bit is not
// probed (see cpuHasBF16).
func HasBF16Dot() bool { return cpuHasBF16() }

// HasVNNI is an x86-only concept; arm64 has no VNNI, only NEON dot (sdot/udot).
func HasVNNI() bool { return false }

// HasAVXVNNI is an x86-only concept.
func HasAVXVNNI() bool { return false }

func cpuHasBF16() bool {
	// No CPU feature bit is read here; bf16 dot support is always reported
	// as absent.
	return false
}
