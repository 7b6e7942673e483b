package coll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct{ name string }

type ids []int64

func shapes(t *testing.T, xs []int, ys []int64, fs []float64, m map[string]int, ch chan user,
	arr [2]int, ptr *[2]int, us []user, u user, v any, n int, s string) {
	assert.Len(t, xs, 2)
	assert.Len(t, m, 1)
	assert.Len(t, s, 3)
	assert.Len(t, ch, 0)
	assert.Len(t, ptr, 2)
	assert.Len(t, v, 1)
	assert.Len(t, nil, 0)
	assert.Len(t, u, 1)        // want `Len expects a collection, but u has type user`
	require.Lenf(t, n, 1, "m") // want `Lenf expects a collection, but n has type int`
	assert.IsIncreasing(t, xs)
	assert.IsIncreasing(t, 5) // want `IsIncreasing expects a collection, but 5 has type int`

	assert.ElementsMatch(t, xs, []int{1, 2})
	assert.ElementsMatch(t, xs, ys) // want `ElementsMatch compares int elements with int64 elements`
	require.Subset(t, arr, xs)
	assert.Subset(t, m, []string{"a"})
	assert.NotSubset(t, ys, ids{1})
	assert.ElementsMatch(t, us, u) // want `ElementsMatch expects a collection, but u has type user`
	assert.ElementsMatch(t, []any{1}, xs)
	assert.InDeltaSlice(t, xs, fs, 0.1)
	assert.InDeltaSlice(t, us, fs, 0.1) // want `InDeltaSlice compares user elements with float64 elements`

	assert.Contains(t, xs, 3)
	assert.Contains(t, ys, 3) // want `Contains looks for 3 of type int among int64 elements`
	assert.Contains(t, ys, int64(3))
	assert.NotContains(t, m, "k")
	assert.NotContains(t, m, 1) // want `NotContains looks for 1 of type int among string elements`
	assert.Contains(t, s, "x")
	require.Containsf(t, s, u, "m") // want `Containsf looks for u of type user among string elements`
	assert.Contains(t, []any{1}, u)
	assert.Contains(t, xs, v)
	assert.Contains(t, n, 1) // want `Contains expects a collection, but n has type int`
	assert.Equal(t, n, xs)

	a := assert.New(t)
	a.Len(u, 1) // want `Len expects a collection, but u has type user`
	a.Contains(ys, int64(1))
}

func generic[T any](t *testing.T, xs []T, x T) {
	assert.Contains(t, xs, x)
	assert.Len(t, x, 1)
}
