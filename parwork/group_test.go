// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parwork

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupJoinEmpty(t *testing.T) {
	pool := New(2)
	defer pool.Shutdown()

	g := NewGroup(pool)
	require.NoError(t, g.Join())
}

func TestGroupJoinsAllChildren(t *testing.T) {
	pool := New(4)
	defer pool.Shutdown()

	g := NewGroup(pool)
	var ran atomic.Int64
	for i := 0; i < 100; i++ {
		require.NoError(t, g.Go(func() error {
			ran.Add(1)
			return nil
		}))
	}
	require.NoError(t, g.Join())
	assert.EqualValues(t, 100, ran.Load())
	assert.Zero(t, g.Pending())
}

func TestGroupRecursiveChildren(t *testing.T) {
	pool := New(4)
	defer pool.Shutdown()

	// Children spawn grandchildren into the same group; Join must cover
	// the transitive set.
	g := NewGroup(pool)
	var ran atomic.Int64
	for i := 0; i < 8; i++ {
		require.NoError(t, g.Go(func() error {
			ran.Add(1)
			return g.Go(func() error {
				ran.Add(1)
				return nil
			})
		}))
	}
	require.NoError(t, g.Join())
	assert.EqualValues(t, 16, ran.Load())
}

func TestGroupFirstErrorWins(t *testing.T) {
	pool := New(4)
	defer pool.Shutdown()

	errA := errors.New("a failed")
	errB := errors.New("b failed")

	g := NewGroup(pool)
	require.NoError(t, g.Go(func() error { return errA }))
	require.NoError(t, g.Go(func() error { return errB }))
	require.NoError(t, g.Go(func() error { return nil }))

	err := g.Join()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errA) || errors.Is(err, errB),
		"Join returned %v, want one of the child failures", err)
}

func TestGroupPanicStillJoins(t *testing.T) {
	pool := New(2)
	defer pool.Shutdown()

	g := NewGroup(pool)
	require.NoError(t, g.Go(func() error {
		panic("child blew up")
	}))

	err := g.Join()
	var te *TaskError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "child blew up", te.Recovered)
}

func TestGroupGoAfterShutdown(t *testing.T) {
	pool := New(2)
	pool.Shutdown()

	g := NewGroup(pool)
	err := g.Go(func() error { return nil })
	require.ErrorIs(t, err, ErrPoolClosed)

	// The failed submission is recorded and released; Join must not hang.
	require.ErrorIs(t, g.Join(), ErrPoolClosed)
	assert.Zero(t, g.Pending())
}

func TestGroupAddDone(t *testing.T) {
	pool := New(2)
	defer pool.Shutdown()

	g := NewGroup(pool)
	g.Add(2)
	assert.Equal(t, 2, g.Pending())

	done := make(chan struct{})
	go func() {
		g.Done(nil)
		g.Done(nil)
		close(done)
	}()
	require.NoError(t, g.Join())
	<-done
}

func TestGroupDoneWithoutAddPanics(t *testing.T) {
	pool := New(1)
	defer pool.Shutdown()

	g := NewGroup(pool)
	assert.Panics(t, func() { g.Done(nil) })
}
