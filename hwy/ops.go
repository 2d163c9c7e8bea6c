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

// This file provides pure Go implementations of the arithmetic vocabulary
// (spec §4.1): typed load/store, add/sub/mul/fused-multiply-add, and
// horizontal reduction. Each is generic over the lane type T, which Go
// monomorphises per instantiation the way the teacher's own ops_base.go
// does — the tile engines in hwy/contrib/matmul never branch on dtype
// inside their k-loops, only at instantiation (one gemmBloc[T] per element
// type the dispatcher selects).

// Load creates a vector by reading up to MaxLanes[T]() elements from src.
func Load[T Lanes](src []T) Vec[T] {
	n := min(len(src), MaxLanes[T]())
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// Store writes v's lanes into dst.
func Store[T Lanes](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Set creates a vector with every lane set to value.
func Set[T Lanes](value T) Vec[T] {
	n := MaxLanes[T]()
	data := make([]T, n)
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Zero creates a vector with every lane set to the zero value.
func Zero[T Lanes]() Vec[T] {
	return Vec[T]{data: make([]T, MaxLanes[T]())}
}

// Add performs lanewise addition.
func Add[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := range n {
		result[i] = addLane(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

// Sub performs lanewise subtraction.
func Sub[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := range n {
		result[i] = subLane(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

// Mul performs lanewise multiplication.
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := range n {
		result[i] = mulLane(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

// MulAdd computes a*b+c lanewise. Float16/BFloat16 lanes are promoted to
// float32, computed as a*b+c and demoted once; float32/float64 lanes use the
// native expression a*b + c, which the Go compiler may or may not fuse into
// a single FMA instruction depending on the target.
func MulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	n := min(len(a.data), min(len(b.data), len(c.data)))
	result := make([]T, n)
	for i := range n {
		result[i] = maddLane(a.data[i], b.data[i], c.data[i])
	}
	return Vec[T]{data: result}
}

// ReduceSum horizontally sums all lanes of v to a scalar. Used only after
// a full k-reduction completes, per spec §4.1.
func ReduceSum[T Lanes](v Vec[T]) T {
	var sum T
	for _, x := range v.data {
		sum = addLane(sum, x)
	}
	return sum
}

func addLane[T Lanes](a, b T) T {
	switch av := any(a).(type) {
	case Float16:
		return any(Float32ToFloat16(av.Float32() + any(b).(Float16).Float32())).(T)
	case BFloat16:
		return any(Float32ToBFloat16(av.Float32() + any(b).(BFloat16).Float32())).(T)
	case float32:
		return any(av + any(b).(float32)).(T)
	case float64:
		return any(av + any(b).(float64)).(T)
	case int8:
		return any(av + any(b).(int8)).(T)
	case int16:
		return any(av + any(b).(int16)).(T)
	case int32:
		return any(av + any(b).(int32)).(T)
	case int64:
		return any(av + any(b).(int64)).(T)
	case uint8:
		return any(av + any(b).(uint8)).(T)
	case uint16:
		return any(av + any(b).(uint16)).(T)
	case uint32:
		return any(av + any(b).(uint32)).(T)
	case uint64:
		return any(av + any(b).(uint64)).(T)
	default:
		return a
	}
}

func subLane[T Lanes](a, b T) T {
	switch av := any(a).(type) {
	case Float16:
		return any(Float32ToFloat16(av.Float32() - any(b).(Float16).Float32())).(T)
	case BFloat16:
		return any(Float32ToBFloat16(av.Float32() - any(b).(BFloat16).Float32())).(T)
	case float32:
		return any(av - any(b).(float32)).(T)
	case float64:
		return any(av - any(b).(float64)).(T)
	case int8:
		return any(av - any(b).(int8)).(T)
	case int16:
		return any(av - any(b).(int16)).(T)
	case int32:
		return any(av - any(b).(int32)).(T)
	case int64:
		return any(av - any(b).(int64)).(T)
	case uint8:
		return any(av - any(b).(uint8)).(T)
	case uint16:
		return any(av - any(b).(uint16)).(T)
	case uint32:
		return any(av - any(b).(uint32)).(T)
	case uint64:
		return any(av - any(b).(uint64)).(T)
	default:
		return a
	}
}

func mulLane[T Lanes](a, b T) T {
	switch av := any(a).(type) {
	case Float16:
		return any(Float32ToFloat16(av.Float32() * any(b).(Float16).Float32())).(T)
	case BFloat16:
		return any(Float32ToBFloat16(av.Float32() * any(b).(BFloat16).Float32())).(T)
	case float32:
		return any(av * any(b).(float32)).(T)
	case float64:
		return any(av * any(b).(float64)).(T)
	case int8:
		return any(av * any(b).(int8)).(T)
	case int16:
		return any(av * any(b).(int16)).(T)
	case int32:
		return any(av * any(b).(int32)).(T)
	case int64:
		return any(av * any(b).(int64)).(T)
	case uint8:
		return any(av * any(b).(uint8)).(T)
	case uint16:
		return any(av * any(b).(uint16)).(T)
	case uint32:
		return any(av * any(b).(uint32)).(T)
	case uint64:
		return any(av * any(b).(uint64)).(T)
	default:
		return a
	}
}

func maddLane[T Floats](a, b, c T) T {
	switch av := any(a).(type) {
	case Float16:
		bf := any(b).(Float16).Float32()
		cf := any(c).(Float16).Float32()
		return any(Float32ToFloat16(av.Float32()*bf + cf)).(T)
	case BFloat16:
		bf := any(b).(BFloat16).Float32()
		cf := any(c).(BFloat16).Float32()
		return any(Float32ToBFloat16(av.Float32()*bf + cf)).(T)
	case float32:
		return any(av*any(b).(float32) + any(c).(float32)).(T)
	case float64:
		return any(av*any(b).(float64) + any(c).(float64)).(T)
	default:
		return a
	}
}

// LoadWiden loads up to MaxLanes[float32]() elements from src, widening
// each to float32 regardless of its native storage width. This realises
// spec §4.1's load<V>(fp16*)/load<V>(bf16*): the widened layout matches the
// f32 lane layout of the accumulator vector type used throughout the
// floating tile engine.
func LoadWiden[S Floats](src []S) Vec[float32] {
	n := min(len(src), MaxLanes[float32]())
	data := make([]float32, n)
	for i := 0; i < n; i++ {
		data[i] = widenToF32(src[i])
	}
	return Vec[float32]{data: data}
}

func widenToF32[S Floats](v S) float32 {
	switch x := any(v).(type) {
	case float32:
		return x
	case float64:
		return float32(x)
	case Float16:
		return x.Float32()
	case BFloat16:
		return x.Float32()
	default:
		return 0
	}
}
