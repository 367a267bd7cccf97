// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parwork

import "sync"

// Group joins on a dynamically growing set of child tasks. It tracks the
// number of outstanding children and records the first failure among them;
// Join blocks until the count returns to zero.
//
// The counter must be raised (Add, or Go which does it internally) before
// the corresponding child can possibly finish, so the count can only reach
// zero once every registered child has completed. The decrement, the zero
// check, and the completion broadcast happen in a single critical section,
// so there is no window in which a second "last child" can fire.
type Group struct {
	pool *Pool

	mu      sync.Mutex
	cond    *sync.Cond
	pending int
	err     error
}

// NewGroup creates a Group whose Go method submits through p.
func NewGroup(p *Pool) *Group {
	g := &Group{pool: p}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Add raises the outstanding-children count by n. It must be called before
// the children it accounts for are started.
func (g *Group) Add(n int) {
	g.mu.Lock()
	g.pending += n
	g.mu.Unlock()
}

// Done lowers the count by one, recording err as the group's failure if it
// is the first. The last Done wakes every Join caller.
func (g *Group) Done(err error) {
	g.mu.Lock()
	if err != nil && g.err == nil {
		g.err = err
	}
	g.pending--
	if g.pending < 0 {
		g.mu.Unlock()
		panic("parwork: Group.Done called more times than Add")
	}
	if g.pending == 0 {
		g.cond.Broadcast()
	}
	g.mu.Unlock()
}

// Go registers one child and submits fn to the group's pool. The child is
// always accounted for: fn's error (or panic) reaches the group through a
// deferred Done, and a failed submission records its error and releases
// the registration immediately, so Join can never hang on it.
//
// The returned error reports submission failure only; execution failures
// surface through Join.
func (g *Group) Go(fn func() error) error {
	g.Add(1)
	_, err := g.pool.Submit(func() (any, error) {
		var err error
		defer func() {
			if r := recover(); r != nil {
				g.Done(&TaskError{Reason: "task panicked", Recovered: r})
				// Re-raise for the pool, which delivers the panic to
				// the task's Handle and keeps the worker alive.
				panic(r)
			}
			g.Done(err)
		}()
		err = fn()
		return nil, err
	})
	if err != nil {
		g.Done(err)
		return err
	}
	return nil
}

// Join blocks until every registered child has completed and returns the
// first failure among them, if any. A Group with no outstanding children
// returns immediately.
func (g *Group) Join() error {
	g.mu.Lock()
	for g.pending > 0 {
		g.cond.Wait()
	}
	err := g.err
	g.mu.Unlock()
	return err
}

// Pending returns the current number of outstanding children.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}
