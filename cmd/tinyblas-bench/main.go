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

package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajroetker/tinyblas/hwy"
	"github.com/ajroetker/tinyblas/hwy/contrib/matmul"
	"github.com/ajroetker/tinyblas/hwy/contrib/workerpool"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tinyblas-bench",
		Short: "Benchmark the tinyblas matmul dispatcher over synthetic shapes",
	}

	var m, n, k, nth int
	var dtype string
	var repeat int

	gemmCmd := &cobra.Command{
		Use:   "gemm",
		Short: "Run MatMul over a synthetic (m, n, k) shape and report achieved GFLOP/s",
		RunE: func(cmd *cobra.Command, args []string) error {
			atype, btype, err := parseDType(dtype)
			if err != nil {
				return err
			}

			pool := workerpool.New(nth)
			defer pool.Close()

			a, lda, b, ldb := synthesizeOperands(atype, btype, m, n, k)
			c := make([]float32, m*n)

			var elapsed time.Duration
			var ok bool
			for i := 0; i < repeat; i++ {
				start := time.Now()
				ok = matmul.Run(pool, nth, m, n, k, a, lda, b, ldb, c, m, atype, btype, matmul.F32)
				elapsed += time.Since(start)
			}
			if !ok {
				return fmt.Errorf("no kernel available for %s x %s on this target (ISA=%s); the caller must use a generic fallback", atype, btype, hwy.CurrentLevel())
			}

			flops := 2.0 * float64(m) * float64(n) * float64(k) * float64(repeat)
			gflops := flops / elapsed.Seconds() / 1e9
			fmt.Printf("shape m=%d n=%d k=%d nth=%d dtype=%s/%s isa=%s\n", m, n, k, nth, atype, btype, hwy.CurrentLevel())
			fmt.Printf("%d run(s): %v total, %.3f GFLOP/s\n", repeat, elapsed, gflops)
			return nil
		},
	}
	gemmCmd.Flags().IntVar(&m, "m", 256, "rows of A / rows of C")
	gemmCmd.Flags().IntVar(&n, "n", 256, "rows of B / cols of C")
	gemmCmd.Flags().IntVar(&k, "k", 256, "reduction dimension")
	gemmCmd.Flags().IntVar(&nth, "workers", runtime.GOMAXPROCS(0), "number of worker threads")
	gemmCmd.Flags().StringVar(&dtype, "dtype", "f32", "f32, f16, bf16, q8_0, q4_0, q5_0, or iq4_nl")
	gemmCmd.Flags().IntVar(&repeat, "repeat", 5, "number of timed repetitions")

	isaCmd := &cobra.Command{
		Use:   "isa",
		Short: "Print the statically detected ISA level, register width and SIMD flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("level:     %s\n", hwy.CurrentLevel())
			fmt.Printf("width:     %d bytes\n", hwy.CurrentWidth())
			fmt.Printf("has_simd:  %v\n", hwy.HasSIMD())
			return nil
		},
	}

	rootCmd.AddCommand(gemmCmd, isaCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseDType(s string) (a, b matmul.DType, err error) {
	switch s {
	case "f32":
		return matmul.F32, matmul.F32, nil
	case "f16":
		return matmul.F16, matmul.F16, nil
	case "bf16":
		return matmul.BF16, matmul.BF16, nil
	case "q8_0":
		return matmul.Q8_0, matmul.Q8_0, nil
	case "q4_0":
		return matmul.Q4_0, matmul.Q8_0, nil
	case "q5_0":
		return matmul.Q5_0, matmul.Q8_0, nil
	case "iq4_nl":
		return matmul.IQ4NL, matmul.Q8_0, nil
	default:
		return 0, 0, fmt.Errorf("unknown dtype %q", s)
	}
}

// synthesizeOperands builds random operand buffers in the layout MatMul
// expects: dense types get m*k / n*k element slices with lda=ldb=k;
// quantised types get byte streams with lda/ldb in blocks.
func synthesizeOperands(atype, btype matmul.DType, m, n, k int) (a any, lda int, b any, ldb int) {
	rng := rand.New(rand.NewSource(1))

	if !atype.IsQuantized() {
		lda, ldb = k, k
		switch atype {
		case matmul.F32:
			af := make([]float32, m*k)
			bf := make([]float32, n*k)
			for i := range af {
				af[i] = rng.Float32()*2 - 1
			}
			for i := range bf {
				bf[i] = rng.Float32()*2 - 1
			}
			return af, lda, bf, ldb
		case matmul.F16:
			af := make([]hwy.Float16, m*k)
			bf := make([]hwy.Float16, n*k)
			for i := range af {
				af[i] = hwy.NewFloat16(rng.Float32()*2 - 1)
			}
			for i := range bf {
				bf[i] = hwy.NewFloat16(rng.Float32()*2 - 1)
			}
			return af, lda, bf, ldb
		default: // bf16
			af := make([]hwy.BFloat16, m*k)
			bf := make([]hwy.BFloat16, n*k)
			for i := range af {
				af[i] = hwy.NewBFloat16(rng.Float32()*2 - 1)
			}
			for i := range bf {
				bf[i] = hwy.NewBFloat16(rng.Float32()*2 - 1)
			}
			return af, lda, bf, ldb
		}
	}

	blocksPerRow := k / matmul.BlockSize
	aBlockBytes := quantBlockBytes(atype)
	ab := make([]byte, m*blocksPerRow*aBlockBytes)
	bb := make([]byte, n*blocksPerRow*matmul.Q8_0BlockBytes)
	fillRandomBlocks(rng, ab, aBlockBytes)
	fillRandomBlocks(rng, bb, matmul.Q8_0BlockBytes)
	return ab, blocksPerRow, bb, blocksPerRow
}

func quantBlockBytes(t matmul.DType) int {
	switch t {
	case matmul.Q8_0:
		return matmul.Q8_0BlockBytes
	case matmul.Q4_0:
		return matmul.Q4_0BlockBytes
	case matmul.Q5_0:
		return matmul.Q5_0BlockBytes
	case matmul.IQ4NL:
		return matmul.IQ4NLBlockBytes
	default:
		return 0
	}
}

func fillRandomBlocks(rng *rand.Rand, data []byte, blockBytes int) {
	for off := 0; off+blockBytes <= len(data); off += blockBytes {
		delta := hwy.NewFloat16(rng.Float32()*2 - 1)
		data[off] = byte(delta.Bits())
		data[off+1] = byte(delta.Bits() >> 8)
		rng.Read(data[off+2 : off+blockBytes])
	}
}
