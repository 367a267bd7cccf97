// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parwork

import "sync/atomic"

// poolCounters tracks pool activity. All fields are updated atomically by
// workers and submitters.
type poolCounters struct {
	submitted atomic.Uint64
	rejected  atomic.Uint64
	executed  atomic.Uint64
	stolen    atomic.Uint64
	refilled  atomic.Uint64
	panicked  atomic.Uint64
}

// PoolStats is a point-in-time snapshot of a pool's state and counters.
type PoolStats struct {
	// ID is the pool's instance identifier.
	ID string
	// Workers is the number of worker goroutines.
	Workers int
	// State is the lifecycle state: running, stopping, or stopped.
	State string
	// QueueLen is the current length of the shared queue.
	QueueLen int

	// Submitted counts tasks accepted by Submit.
	Submitted uint64
	// Rejected counts submissions refused after shutdown began.
	Rejected uint64
	// Executed counts tasks run to completion, including failed ones.
	Executed uint64
	// Stolen counts tasks taken from another worker's deque.
	Stolen uint64
	// Refilled counts tasks moved from the shared queue onto local deques.
	Refilled uint64
	// Panicked counts tasks whose body panicked.
	Panicked uint64
}

// Stats returns a snapshot of the pool's counters and current state.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	state := p.state.String()
	queueLen := len(p.global)
	p.mu.Unlock()

	return PoolStats{
		ID:        p.id,
		Workers:   p.workers,
		State:     state,
		QueueLen:  queueLen,
		Submitted: p.stats.submitted.Load(),
		Rejected:  p.stats.rejected.Load(),
		Executed:  p.stats.executed.Load(),
		Stolen:    p.stats.stolen.Load(),
		Refilled:  p.stats.refilled.Load(),
		Panicked:  p.stats.panicked.Load(),
	}
}
