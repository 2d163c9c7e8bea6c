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

package workerpool

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversAllIndices(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	const n = 997 // prime, forces uneven chunking
	var seen [n]atomic.Bool
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			seen[i].Store(true)
		}
	})
	for i := range n {
		if !seen[i].Load() {
			t.Fatalf("index %d never visited", i)
		}
	}
}

func TestSpawnRunsEveryIth(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	const nth = 16
	var seen [nth]atomic.Bool
	pool.Spawn(nth, func(ith int) {
		seen[ith].Store(true)
	})
	for i := range nth {
		if !seen[i].Load() {
			t.Fatalf("ith %d never ran", i)
		}
	}
}

func TestSpawnSingleThreadRunsInline(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var ran bool
	pool.Spawn(1, func(ith int) {
		if ith != 0 {
			t.Fatalf("expected ith 0, got %d", ith)
		}
		ran = true
	})
	if !ran {
		t.Fatalf("single-thread Spawn did not run")
	}
}

func TestBarrierReleasesAllParticipants(t *testing.T) {
	const nth = 8
	b := NewBarrier(nth)
	var before, after atomic.Int32

	pool := New(nth)
	defer pool.Close()
	pool.Spawn(nth, func(ith int) {
		before.Add(1)
		b.Wait()
		after.Add(1)
	})
	if before.Load() != nth || after.Load() != nth {
		t.Fatalf("barrier did not release all participants: before=%d after=%d", before.Load(), after.Load())
	}
}

func TestChunkCounterSetThenAddIsSequential(t *testing.T) {
	var c ChunkCounter
	c.Set(10)
	got := c.Add(5)
	if got != 10 {
		t.Fatalf("Add should return pre-add value: got %d want 10", got)
	}
	if c.Add(0) != 15 {
		t.Fatalf("counter should now read 15, got %d", c.Add(0))
	}
}

func TestChunkCounterDistributesUniqueJobIDs(t *testing.T) {
	const nth = 16
	var c ChunkCounter
	c.Set(0)

	ids := make([]int64, nth)
	pool := New(nth)
	defer pool.Close()
	pool.Spawn(nth, func(ith int) {
		ids[ith] = c.Add(1)
	})

	seen := make(map[int64]bool, nth)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate job id %d handed to two participants", id)
		}
		seen[id] = true
	}
}

func TestNewCoordinatorAllocatesIndependentBarriers(t *testing.T) {
	c := NewCoordinator(4)
	if c.Open == c.Close {
		t.Fatalf("opening and closing barriers must be distinct")
	}
	if c.Nth != 4 {
		t.Fatalf("Nth = %d, want 4", c.Nth)
	}
}
