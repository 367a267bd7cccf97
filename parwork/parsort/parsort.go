// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parsort

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/ajroetker/go-parwork/parwork"
)

// Sorting errors.
var (
	// ErrInvalidThreshold is returned when the sequential threshold is
	// below one.
	ErrInvalidThreshold = errors.New("parsort: threshold must be >= 1")

	// ErrNilPool is returned when no pool is supplied.
	ErrNilPool = errors.New("parsort: nil pool")

	// ErrUnsortable is returned by SortRange for bounds that do not
	// describe a subrange of the sequence.
	ErrUnsortable = errors.New("parsort: range out of bounds")
)

// DefaultThreshold is a reasonable sequential cutoff: below it, insertion
// sort beats the cost of scheduling a task.
const DefaultThreshold = 64

// Sort sorts data in place in ascending order, spawning subrange sorts
// onto pool. It returns only once the sequence is fully sorted, or with
// the first failure among the spawned tasks once all of them have
// drained. threshold is the subrange size at or below which sorting
// proceeds sequentially; it must be at least 1.
func Sort[T cmp.Ordered](data []T, pool *parwork.Pool, threshold int) error {
	return SortRange(data, 0, len(data)-1, pool, threshold)
}

// SortRange sorts data[lo..hi] (inclusive bounds) in place. lo >= hi is a
// no-op; bounds outside the sequence fail with ErrUnsortable.
func SortRange[T cmp.Ordered](data []T, lo, hi int, pool *parwork.Pool, threshold int) error {
	if pool == nil {
		return ErrNilPool
	}
	if threshold < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	if lo < 0 || hi >= len(data) || lo > hi+1 {
		return fmt.Errorf("%w: [%d, %d] in sequence of length %d",
			ErrUnsortable, lo, hi, len(data))
	}
	if lo >= hi {
		return nil
	}

	g := parwork.NewGroup(pool)
	// The top-level invocation runs on the calling goroutine; only its
	// recursive descendants go through the pool.
	sortRange(data, lo, hi, g, threshold)
	return g.Join()
}

// sortRange sorts data[lo..hi] inclusive. Instead of recursing on both
// sides of each partition, it hands the smaller side to the pool and
// continues on the larger side itself, so no task ever blocks waiting for
// a child and the sort completes with any number of workers.
func sortRange[T cmp.Ordered](data []T, lo, hi int, g *parwork.Group, threshold int) {
	for hi-lo+1 > threshold {
		j, i := partition(data, lo, hi)
		if j-lo < hi-i {
			spawn(data, lo, j, g, threshold)
			lo = i
		} else {
			spawn(data, i, hi, g, threshold)
			hi = j
		}
	}
	insertionSort(data, lo, hi)
}

// spawn submits data[lo..hi] as an independent sort task, registered with
// g before submission. Trivial ranges are skipped. If the pool refuses the
// task (shutdown mid-sort), the group has already recorded the failure;
// the range is sorted inline so no subrange is left untouched.
func spawn[T cmp.Ordered](data []T, lo, hi int, g *parwork.Group, threshold int) {
	if lo >= hi {
		return
	}
	err := g.Go(func() error {
		sortRange(data, lo, hi, g, threshold)
		return nil
	})
	if err != nil {
		sortRange(data, lo, hi, g, threshold)
	}
}

// partition applies Hoare's scheme to data[lo..hi] around the middle
// element. It returns (j, i) with i > j such that data[lo..j] <= pivot
// <= data[i..hi]; at most one element sits between the two subranges and
// it is already in its final position. The subranges are disjoint, which
// is what makes sorting them concurrently safe.
func partition[T cmp.Ordered](data []T, lo, hi int) (int, int) {
	pivot := data[lo+(hi-lo)/2]
	i, j := lo, hi
	for i <= j {
		for data[i] < pivot {
			i++
		}
		for data[j] > pivot {
			j--
		}
		if i <= j {
			data[i], data[j] = data[j], data[i]
			i++
			j--
		}
	}
	return j, i
}

// insertionSort sorts data[lo..hi] inclusive.
func insertionSort[T cmp.Ordered](data []T, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		key := data[i]
		j := i - 1
		for j >= lo && data[j] > key {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
}
