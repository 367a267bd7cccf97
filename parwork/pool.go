// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parwork

import (
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// poolState is the pool lifecycle. It moves through the states exactly
// once: running -> stopping (Shutdown called) -> stopped (workers exited).
type poolState uint32

const (
	stateRunning poolState = iota
	stateStopping
	stateStopped
)

func (s poolState) String() string {
	switch s {
	case stateRunning:
		return "running"
	case stateStopping:
		return "stopping"
	default:
		return "stopped"
	}
}

// defaultRefillBatch is how many extra tasks a worker moves from the
// shared queue onto its own deque per take. Small enough to keep the
// shared queue as the fairness backstop, large enough that thieves find
// work.
const defaultRefillBatch = 4

// Pool is a fixed-size worker pool. Workers are spawned once at creation
// and persist until Shutdown.
type Pool struct {
	id      string
	workers int
	refill  int
	log     *zap.Logger

	// mu guards the shared queue, the lifecycle state, and parking.
	mu     sync.Mutex
	cond   *sync.Cond
	global []*task
	state  poolState

	deques []*deque
	wg     sync.WaitGroup

	stats poolCounters
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithLogger sets the pool's logger. The default is a no-op logger; the
// pool is silent unless asked.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// WithRefillBatch sets how many extra tasks a worker moves from the shared
// queue onto its own deque when it takes work there. Zero disables local
// refill, leaving the pool with a single shared queue and nothing to steal.
func WithRefillBatch(n int) Option {
	return func(p *Pool) {
		if n >= 0 {
			p.refill = n
		}
	}
}

// New creates a pool with the given number of workers, all started
// immediately. If workers < 1, GOMAXPROCS is used.
func New(workers int, opts ...Option) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		id:      uuid.NewString()[:8],
		workers: workers,
		refill:  defaultRefillBatch,
		log:     zap.NewNop(),
	}
	p.cond = sync.NewCond(&p.mu)
	p.deques = make([]*deque, workers)
	for i := range p.deques {
		p.deques[i] = &deque{}
	}
	for _, o := range opts {
		o(p)
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	p.log.Debug("pool started",
		zap.String("pool", p.id), zap.Int("workers", workers))
	return p
}

// NumWorkers returns the number of worker goroutines.
func (p *Pool) NumWorkers() int { return p.workers }

// ID returns the pool's instance identifier, as used in its log fields.
func (p *Pool) ID() string { return p.id }

// Submit enqueues fn for execution by some worker and returns a Handle for
// its result. Submit never blocks and is safe to call from any goroutine,
// including from inside a running task. Once Shutdown has begun it fails
// with ErrPoolClosed and the task is not enqueued.
func (p *Pool) Submit(fn func() (any, error)) (*Handle, error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	h := newHandle()
	p.mu.Lock()
	if p.state != stateRunning {
		p.mu.Unlock()
		p.stats.rejected.Add(1)
		return nil, ErrPoolClosed
	}
	p.global = append(p.global, &task{fn: fn, h: h})
	p.stats.submitted.Add(1)
	p.cond.Signal()
	p.mu.Unlock()
	return h, nil
}

// Shutdown stops the pool: no further submissions are accepted, every
// already-accepted task still runs, and Shutdown returns once all workers
// have exited. It is idempotent and safe to call concurrently.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.state != stateRunning {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.state = stateStopping
	queued := len(p.global)
	p.cond.Broadcast()
	p.mu.Unlock()

	p.log.Info("pool shutting down",
		zap.String("pool", p.id), zap.Int("queued", queued))
	p.wg.Wait()

	p.mu.Lock()
	p.state = stateStopped
	p.mu.Unlock()
	p.log.Info("pool stopped",
		zap.String("pool", p.id),
		zap.Uint64("executed", p.stats.executed.Load()))
}

// worker is the main loop of one worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.deques[id]
	for {
		t := p.next(id, own)
		if t == nil {
			p.log.Debug("worker exiting",
				zap.String("pool", p.id), zap.Int("worker", id))
			return
		}
		p.run(id, t)
	}
}

// next returns the next task for worker id, trying its own deque, then the
// shared queue, then a steal, and parking when all three come up empty.
// Returns nil when the pool is stopping and no work remains anywhere.
func (p *Pool) next(id int, own *deque) *task {
	for {
		if t, ok := own.popFront(); ok {
			return t
		}
		if t, ok := p.takeGlobal(own); ok {
			return t
		}
		if t, ok := p.steal(id); ok {
			return t
		}

		p.mu.Lock()
		if len(p.global) > 0 {
			p.mu.Unlock()
			continue
		}
		if p.state != stateRunning {
			p.mu.Unlock()
			// The shared queue is drained, but refilled batches may
			// still sit in local deques. Sweep once more before exit.
			if t, ok := own.popFront(); ok {
				return t
			}
			if t, ok := p.steal(id); ok {
				return t
			}
			return nil
		}
		p.cond.Wait()
		p.mu.Unlock()
	}
}

// takeGlobal pops the oldest shared-queue task and, in the same critical
// section, moves up to refill additional tasks onto the caller's own
// deque. The refill is what populates local deques: external submissions
// always land on the shared queue, so without it stealing would never
// find anything.
func (p *Pool) takeGlobal(own *deque) (*task, bool) {
	p.mu.Lock()
	if len(p.global) == 0 {
		p.mu.Unlock()
		return nil, false
	}
	t := p.global[0]
	p.global[0] = nil
	p.global = p.global[1:]

	if n := min(p.refill, len(p.global)); n > 0 {
		own.pushBack(p.global[:n]...)
		for i := 0; i < n; i++ {
			p.global[i] = nil
		}
		p.global = p.global[n:]
		p.stats.refilled.Add(uint64(n))
		// Give parked peers a chance to steal the batch.
		p.cond.Signal()
	}
	p.mu.Unlock()
	return t, true
}

// steal scans the other workers' deques, nearest index first, and takes
// one task from the back of the first non-empty one.
func (p *Pool) steal(id int) (*task, bool) {
	for k := 1; k < p.workers; k++ {
		victim := p.deques[(id+k)%p.workers]
		if t, ok := victim.stealBack(); ok {
			p.stats.stolen.Add(1)
			return t, true
		}
	}
	return nil, false
}

// run executes one task, delivering its result or failure through the
// task's Handle. A panicking task is captured; the worker survives.
func (p *Pool) run(id int, t *task) {
	defer func() {
		p.stats.executed.Add(1)
		if r := recover(); r != nil {
			p.stats.panicked.Add(1)
			p.log.Warn("task panicked",
				zap.String("pool", p.id),
				zap.Int("worker", id),
				zap.Any("recovered", r))
			t.h.complete(nil, &TaskError{Reason: "task panicked", Recovered: r})
		}
	}()
	v, err := t.fn()
	t.h.complete(v, err)
}
