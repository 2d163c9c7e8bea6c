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

// Package hwy provides a portable arithmetic vocabulary over SIMD-width
// vectors: typed load/store, add/sub/mul/fused-multiply-add, horizontal
// reduction, and half-precision widening. Operations are instantiated per
// element type via Go generics; the implementations in ops.go are pure Go
// and are used at every dispatch level, which only sets the lane count
// reported by MaxLanes (see dispatch.go).
package hwy

// Float16Types is a constraint for half-precision float types. These types
// use uint16 storage but represent floating-point values and do not
// support Go's native arithmetic operators.
type Float16Types interface {
	Float16 | BFloat16
}

// FloatsNative is a constraint for Go-native floating-point types.
type FloatsNative interface {
	~float32 | ~float64
}

// Floats is a constraint for all floating-point types the vocabulary
// supports, including half-precision.
type Floats interface {
	Float16 | BFloat16 | ~float32 | ~float64
}

// SignedInts is a constraint for signed integer lane types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer lane types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer lane types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in a Vec.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable vector handle. It wraps a slice directly at every
// dispatch level; there is no register-backed variant.
//
// Vec values should not be constructed directly; use Load, Set, or Zero.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector. Intended
// for tests; hot-path code should use Store.
func (v Vec[T]) Data() []T {
	return v.data
}

// Store writes the vector's data to dst. Method form of the Store function.
func (v Vec[T]) Store(dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}
