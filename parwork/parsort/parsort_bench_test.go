// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parsort

import (
	"math/rand"
	"runtime"
	"slices"
	"testing"

	"github.com/ajroetker/go-parwork/parwork"
)

var benchSizes = []int{1000, 10000, 100000, 1000000}

func benchName(n int) string {
	switch {
	case n >= 1000000:
		return "1M"
	case n >= 100000:
		return "100K"
	case n >= 10000:
		return "10K"
	default:
		return "1K"
	}
}

func BenchmarkParallelSort(b *testing.B) {
	pool := parwork.New(runtime.GOMAXPROCS(0))
	defer pool.Shutdown()

	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			rng := rand.New(rand.NewSource(42))
			src := randInts(rng, size)
			data := make([]int, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				copy(data, src)
				b.StartTimer()
				if err := Sort(data, pool, DefaultThreshold); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStdlibSort(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			rng := rand.New(rand.NewSource(42))
			src := randInts(rng, size)
			data := make([]int, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				copy(data, src)
				b.StartTimer()
				slices.Sort(data)
			}
		})
	}
}
