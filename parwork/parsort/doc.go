// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

// Package parsort provides an in-place parallel quicksort built on a
// parwork.Pool.
//
// # Algorithm
//
// The sort partitions with Hoare's scheme (two inward-moving cursors
// swapping out-of-order pairs around the middle element) and recurses in
// parallel: at each level the smaller side of the partition is submitted
// to the pool as an independent task while the current goroutine keeps
// sorting the larger side. Subranges at or below the threshold are
// finished with insertion sort.
//
// Tasks never wait on their children, so the sort makes progress and
// completes with any pool size, including a single worker. Completion of
// the whole task graph is observed through a single parwork.Group: the
// caller blocks on it once, after the top-level invocation returns.
//
// # Example Usage
//
//	pool := parwork.New(runtime.GOMAXPROCS(0))
//	defer pool.Shutdown()
//
//	data := loadValues()
//	if err := parsort.Sort(data, pool, parsort.DefaultThreshold); err != nil {
//	    return err
//	}
//
// The sequential threshold trades scheduling overhead against
// parallelism: a range of exactly threshold elements is sorted in place
// without touching the pool.
package parsort
