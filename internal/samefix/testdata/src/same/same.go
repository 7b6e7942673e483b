package same

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ x, y int }

func values(t *testing.T, p, q *point, v point, err error, xs []int) {
	assert.Same(t, p, q)
	assert.Same(t, v, v)               // want `Same compares pointers, but v has type point`
	require.NotSame(t, p, 2)           // want `NotSame compares pointers, but 2 has type int`
	assert.Samef(t, p, v, "msg %d", 1) // want `Samef compares pointers, but v has type point`
	require.NotSamef(t, xs, q, "msg")  // want `NotSamef compares pointers, but xs has type \[\]int`
	assert.Same(t, err, err)
	assert.Same(t, nil, p)

	a := assert.New(t)
	a.Same(v, p) // want `Same compares pointers, but v has type point`
	a.Same(p, q)
}

func generic[T any](t *testing.T, x, y T) {
	assert.Same(t, x, y)
}
