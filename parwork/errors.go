// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parwork

import (
	"errors"
	"fmt"
)

// Pool errors.
var (
	// ErrPoolClosed is returned by Submit once Shutdown has begun. A
	// rejected task is never enqueued and never runs.
	ErrPoolClosed = errors.New("parwork: pool closed")

	// ErrNilTask is returned when Submit is called with a nil function.
	ErrNilTask = errors.New("parwork: nil task")
)

// TaskError wraps a failure raised inside a task body, including recovered
// panics. It is delivered through the task's Handle; the worker that ran
// the task survives.
type TaskError struct {
	// Reason describes how the task failed.
	Reason string
	// Recovered holds the value recovered from a panic, or nil if the
	// task returned an error normally.
	Recovered any
}

func (e *TaskError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("parwork: %s: %v", e.Reason, e.Recovered)
	}
	return "parwork: " + e.Reason
}
