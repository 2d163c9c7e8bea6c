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

//go:build !amd64 && !arm64

package hwy

func init() {
	currentLevel = DispatchScalar
	currentWidth = 16
}

// HasF16C is always false off amd64.
func HasF16C() bool { return false }

// HasBF16Dot is always false outside the amd64/arm64 dot-capable paths.
func HasBF16Dot() bool { return false }

// HasVNNI is an x86-only concept.
func HasVNNI() bool { return false }

// HasAVXVNNI is an x86-only concept.
func HasAVXVNNI() bool { return false }
