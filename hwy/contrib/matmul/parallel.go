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

package matmul

import (
	"sync/atomic"

	"github.com/ajroetker/tinyblas/hwy/contrib/workerpool"
)

// Run materialises the nth native threads that §5 assumes the host already
// supplies: it spawns nth participants on pool, each calling MatMul with
// its own Ith and a Coordinator shared across the call. MatMul itself never
// spawns goroutines — Run is the ergonomic edge a caller who only has a
// persistent pool, not a hand-rolled thread team, reaches for instead.
func Run(pool *workerpool.Pool, nth, m, n, k int, a any, lda int, b any, ldb int, c []float32, ldc int, atype, btype, ctype DType) bool {
	coord := workerpool.NewCoordinator(nth)

	var ok atomic.Bool
	ok.Store(true)
	pool.Spawn(nth, func(ith int) {
		params := Params{Ith: ith, Nth: nth, Coord: coord}
		if !MatMul(params, m, n, k, a, lda, b, ldb, c, ldc, atype, btype, ctype) {
			ok.Store(false)
		}
	})
	return ok.Load()
}
