// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

// Package parwork provides a persistent, fixed-size worker pool with a
// shared FIFO queue, per-worker deques, and opportunistic work stealing.
// A Pool is created once and reused across many operations, eliminating
// per-call goroutine spawn overhead.
//
// Tasks are zero-argument callables submitted with Submit, which returns a
// Handle for retrieving the eventual result or failure. Tasks may submit
// further tasks into the same pool; the Group primitive joins on a
// dynamically growing set of such child tasks.
//
// # Scheduling
//
// Each worker repeatedly takes work in this order: the front of its own
// deque, then the shared FIFO queue, then the back of another worker's
// deque. When a worker takes from the shared queue it also moves a small
// batch of queued tasks onto its own deque, which is what gives thieves
// something to steal. Workers with nothing to do park on a condition
// variable rather than spinning.
//
// Usage:
//
//	pool := parwork.New(runtime.GOMAXPROCS(0))
//	defer pool.Shutdown()
//
//	h, err := pool.Submit(func() (any, error) {
//	    return compute(), nil
//	})
//	if err != nil {
//	    return err
//	}
//	v, err := h.Result()
package parwork
