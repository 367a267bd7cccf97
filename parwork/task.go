// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parwork

import "fmt"

// task boxes a deferred callable together with the Handle its result is
// delivered through. A task lives on exactly one queue until exactly one
// worker removes and executes it.
type task struct {
	fn func() (any, error)
	h  *Handle
}

// Handle is a future for a single submitted task. Its result or failure
// becomes available once the task has executed.
type Handle struct {
	done chan struct{}
	val  any
	err  error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// complete delivers the task's outcome and fires the done signal.
// Called exactly once, by the worker that executed the task.
func (h *Handle) complete(val any, err error) {
	h.val = val
	h.err = err
	close(h.done)
}

// Done returns a channel that is closed when the task has finished,
// for select-style waiting.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the task has finished, ignoring its outcome.
func (h *Handle) Wait() {
	<-h.done
}

// Result blocks until the task has finished and returns its value, or the
// error it failed with. A recovered panic surfaces as a *TaskError.
func (h *Handle) Result() (any, error) {
	<-h.done
	return h.val, h.err
}

// Await blocks on h and returns its value as T. Methods cannot introduce
// type parameters, so typed retrieval is a free function.
func Await[T any](h *Handle) (T, error) {
	var zero T
	v, err := h.Result()
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("parwork: task result is %T, not %T", v, zero)
	}
	return typed, nil
}

// SubmitTyped submits a task whose result has a concrete type, pairing
// with Await for retrieval without a manual type assertion.
func SubmitTyped[T any](p *Pool, fn func() (T, error)) (*Handle, error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	return p.Submit(func() (any, error) {
		return fn()
	})
}
