// Copyright 2026 The go-parwork Authors. SPDX-License-Identifier: Apache-2.0

package parwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDequeEmpty(t *testing.T) {
	d := &deque{}

	_, ok := d.popFront()
	assert.False(t, ok)
	_, ok = d.stealBack()
	assert.False(t, ok)
	assert.Zero(t, d.size())
}

func TestDequeEndDiscipline(t *testing.T) {
	d := &deque{}
	a := &task{}
	b := &task{}
	c := &task{}
	d.pushBack(a, b, c)
	require.Equal(t, 3, d.size())

	// Owner takes the oldest task from the front.
	got, ok := d.popFront()
	require.True(t, ok)
	assert.Same(t, a, got)

	// A thief takes the newest task from the back.
	got, ok = d.stealBack()
	require.True(t, ok)
	assert.Same(t, c, got)

	got, ok = d.popFront()
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Zero(t, d.size())
}
