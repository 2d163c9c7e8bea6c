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

// Package hwy provides portable SIMD-width vector operations with
// init-time CPU dispatch. It is trimmed to the operations
// hwy/contrib/matmul's tile engines call: typed load/store, arithmetic,
// fused-multiply-add, horizontal reduction, and Float16/BFloat16 widening.
//
//	a := hwy.Load(rowA)
//	b := hwy.Load(rowB)
//	acc = hwy.MulAdd(a, b, acc)
//	sum := hwy.ReduceSum(acc)
package hwy
