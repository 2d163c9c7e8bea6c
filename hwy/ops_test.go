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

import "testing"

func TestLoadStoreRoundTrip(t *testing.T) {
	src := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	v := Load(src)
	dst := make([]float32, len(src))
	Store(v, dst)
	for i := range src[:v.NumLanes()] {
		if dst[i] != src[i] {
			t.Fatalf("lane %d: got %v want %v", i, dst[i], src[i])
		}
	}
}

func TestMulAddMatchesScalar(t *testing.T) {
	a := Set[float32](2)
	b := Set[float32](3)
	c := Set[float32](4)
	got := ReduceSum(MulAdd(a, b, c))
	want := float32(a.NumLanes()) * (2*3 + 4)
	if got != want {
		t.Fatalf("MulAdd/ReduceSum = %v, want %v", got, want)
	}
}

func TestReduceSumZero(t *testing.T) {
	z := Zero[float32]()
	if ReduceSum(z) != 0 {
		t.Fatalf("ReduceSum of zero vector should be 0")
	}
}

func TestLoadWidenF16(t *testing.T) {
	src := []Float16{NewFloat16(1), NewFloat16(2), NewFloat16(3)}
	v := LoadWiden(src)
	for i, s := range src {
		if i >= v.NumLanes() {
			break
		}
		got := v.Data()[i]
		want := s.Float32()
		if got != want {
			t.Fatalf("widen lane %d: got %v want %v", i, got, want)
		}
	}
}

func TestLoadWidenBF16(t *testing.T) {
	src := []BFloat16{NewBFloat16(1), NewBFloat16(-2)}
	v := LoadWiden(src)
	for i, s := range src {
		if i >= v.NumLanes() {
			break
		}
		if v.Data()[i] != s.Float32() {
			t.Fatalf("widen lane %d mismatch", i)
		}
	}
}

func TestAddSubMulLanes(t *testing.T) {
	a := Set[float32](6)
	b := Set[float32](2)
	if got := ReduceSum(Add(a, b)); got != 8*float32(a.NumLanes()) {
		t.Fatalf("Add: got %v", got)
	}
	if got := ReduceSum(Sub(a, b)); got != 4*float32(a.NumLanes()) {
		t.Fatalf("Sub: got %v", got)
	}
	if got := ReduceSum(Mul(a, b)); got != 12*float32(a.NumLanes()) {
		t.Fatalf("Mul: got %v", got)
	}
}
