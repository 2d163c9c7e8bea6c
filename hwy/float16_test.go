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

func TestFloat16RoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, 2, -2, 100.25, -100.25, 65504, -65504}
	for _, v := range values {
		h := NewFloat16(v)
		got := h.Float32()
		if math.Abs(float64(got-v)) > 1e-2 {
			t.Errorf("round trip %v -> %v, want ~%v", v, got, v)
		}
	}
}

func TestFloat16Specials(t *testing.T) {
	if !NewFloat16(float32(math.Inf(1))).IsNaN() && NewFloat16(float32(math.Inf(1))) != Float16Inf {
		t.Errorf("+Inf did not convert to Float16Inf")
	}
	if !Float16FromBits(0x7E00).IsNaN() {
		t.Errorf("canonical NaN bit pattern not recognised as NaN")
	}
	if Float16Zero.Float32() != 0 {
		t.Errorf("Float16Zero did not convert to 0")
	}
}

func TestFloat16Underflow(t *testing.T) {
	h := NewFloat16(1e-10)
	if h.Float32() != 0 {
		t.Errorf("value far below denormal range should flush to zero, got %v", h.Float32())
	}
}
