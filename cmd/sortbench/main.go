// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

// Command sortbench generates a random sequence, sorts it through a
// parwork pool, and reports timings against the standard library.
//
// Usage:
//
//	sortbench -n 1000000 -workers 8 -threshold 64
//	sortbench -n 100000 -runs 5 -verbose
//
// Every run is verified: the output must be sorted and a permutation of
// the input.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/ajroetker/go-parwork/parwork"
	"github.com/ajroetker/go-parwork/parwork/parsort"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	n         = flag.Int("n", 1_000_000, "number of elements to sort")
	workers   = flag.Int("workers", runtime.GOMAXPROCS(0), "pool worker count")
	threshold = flag.Int("threshold", parsort.DefaultThreshold, "sequential cutoff size")
	seed      = flag.Int64("seed", 42, "random seed for input generation")
	runs      = flag.Int("runs", 3, "number of timed runs")
	verbose   = flag.Bool("verbose", false, "enable pool debug logging")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sortbench:", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer l.Sync()
		logger = l
	}

	rng := rand.New(rand.NewSource(*seed))
	src := make([]int, *n)
	for i := range src {
		src[i] = rng.Int()
	}

	// Sequential baseline doubles as the verification reference.
	reference := slices.Clone(src)
	seqStart := time.Now()
	slices.Sort(reference)
	seqElapsed := time.Since(seqStart)

	pool := parwork.New(*workers, parwork.WithLogger(logger))
	defer pool.Shutdown()

	fmt.Printf("sorting %d ints: %d workers, threshold %d\n",
		*n, pool.NumWorkers(), *threshold)
	fmt.Printf("stdlib sequential: %v\n", seqElapsed)

	data := make([]int, *n)
	var best time.Duration
	for attempt := 1; attempt <= *runs; attempt++ {
		copy(data, src)

		start := time.Now()
		if err := parsort.Sort(data, pool, *threshold); err != nil {
			return err
		}
		elapsed := time.Since(start)

		if err := verify(data, reference); err != nil {
			return fmt.Errorf("run %d: %w", attempt, err)
		}
		if best == 0 || elapsed < best {
			best = elapsed
		}
		fmt.Printf("run %d: %v\n", attempt, elapsed)
	}

	st := pool.Stats()
	fmt.Printf("best: %v (%.2fx stdlib)\n",
		best, float64(seqElapsed)/float64(best))
	fmt.Printf("pool %s: submitted=%d executed=%d stolen=%d refilled=%d\n",
		st.ID, st.Submitted, st.Executed, st.Stolen, st.Refilled)
	return nil
}

// verify runs the sortedness and permutation checks concurrently.
func verify(data, reference []int) error {
	var g errgroup.Group
	g.Go(func() error {
		if !slices.IsSorted(data) {
			return fmt.Errorf("output is not sorted")
		}
		return nil
	})
	g.Go(func() error {
		if !slices.Equal(data, reference) {
			return fmt.Errorf("output is not a permutation of the input")
		}
		return nil
	})
	return g.Wait()
}
