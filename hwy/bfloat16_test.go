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
	"math"
	"testing"
)

func TestBFloat16TruncationIsIdentityOnZeroLowBits(t *testing.T) {
	// A float32 whose low 16 mantissa bits are already zero survives the
	// promote/demote round trip exactly.
	bits := uint32(0x3F800000) // 1.0
	f := math.Float32frombits(bits)
	b := NewBFloat16(f)
	if b.Float32() != f {
		t.Fatalf("expected exact round trip for %v, got %v", f, b.Float32())
	}
}

func TestBFloat16RoundTripApprox(t *testing.T) {
	values := []float32{3.14159, -2.71828, 1e30, -1e-30}
	for _, v := range values {
		b := NewBFloat16(v)
		got := b.Float32()
		if math.Abs(float64((got-v)/v)) > 0.02 {
			t.Errorf("round trip %v -> %v exceeds bf16 precision budget", v, got)
		}
	}
}

func TestBFloat16NaN(t *testing.T) {
	b := NewBFloat16(float32(math.NaN()))
	if !b.IsNaN() {
		t.Errorf("expected NaN to remain NaN after bf16 conversion")
	}
}
