package app

import "github.com/stretchr/testify/assert"

type point struct{ x, y int }

// Check is a helper shared by tests.
func Check(t assert.TestingT, p point) {
	assert.Same(t, p, p)
}
