// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parwork

import "sync"

// deque is a double-ended task queue. The owning worker pops from the
// front; stealing workers take from the back, so the two ends contend
// only when a single task remains. Uses a mutex for correctness; steals
// are infrequent relative to local pops.
type deque struct {
	mu    sync.Mutex
	tasks []*task
}

// pushBack appends tasks to the back (thief end).
func (d *deque) pushBack(ts ...*task) {
	d.mu.Lock()
	d.tasks = append(d.tasks, ts...)
	d.mu.Unlock()
}

// popFront removes and returns the task at the front (owner end).
func (d *deque) popFront() (*task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.tasks) == 0 {
		return nil, false
	}
	t := d.tasks[0]
	d.tasks[0] = nil
	d.tasks = d.tasks[1:]
	return t, true
}

// stealBack removes and returns the task at the back (thief end).
func (d *deque) stealBack() (*task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.tasks) == 0 {
		return nil, false
	}
	n := len(d.tasks) - 1
	t := d.tasks[n]
	d.tasks[n] = nil
	d.tasks = d.tasks[:n]
	return t, true
}

// size returns the current number of queued tasks.
func (d *deque) size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}
