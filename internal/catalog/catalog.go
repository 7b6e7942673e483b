// Package catalog lists the testify assertions the analyzers know
// about, grouped by the shape of the arguments they expect.
package catalog

import (
	"slices"
	"strings"
)

// Import paths of the testify assertion packages.
const (
	AssertPkg  = "github.com/stretchr/testify/assert"
	RequirePkg = "github.com/stretchr/testify/require"
)

// IsAssertionPackage reports whether path is a testify assertion
// package.
func IsAssertionPackage(path string) bool {
	return path == AssertPkg || path == RequirePkg
}

// Shape is the argument layout an assertion expects.
type Shape string

// Shape constants.
const (
	// ShapeNone is an assertion without a collection argument.
	ShapeNone Shape = "none"

	// OneCollection assertions take one collection
	// (e.g., assert.Len(t, list, 3)).
	OneCollection Shape = "one_collection"

	// TwoCollection assertions compare two collections
	// (e.g., assert.ElementsMatch(t, want, got)).
	TwoCollection Shape = "two_collection"

	// CollectionPlusItem assertions take a collection and an element
	// (e.g., assert.Contains(t, list, item)).
	CollectionPlusItem Shape = "collection_plus_item"
)

var shapes = map[Shape][]string{
	OneCollection: {
		"IsIncreasing", "IsDecreasing", "IsNonIncreasing", "IsNonDecreasing",
		"Len",
	},
	TwoCollection: {
		"ElementsMatch", "NotElementsMatch",
		"Subset", "NotSubset",
		"InDeltaSlice", "InEpsilonSlice",
	},
	CollectionPlusItem: {
		"Contains", "NotContains",
	},
}

// sameToEqual maps each same-reference assertion to its equal-value
// counterpart.
var sameToEqual = map[string]string{
	"Same":     "Equal",
	"NotSame":  "NotEqual",
	"Samef":    "Equalf",
	"NotSamef": "NotEqualf",
}

// Names returns the assertion names of shape s, including the
// printf-style "f" variants, sorted.
func Names(s Shape) []string {
	base := shapes[s]
	out := make([]string, 0, 2*len(base))
	for _, n := range base {
		out = append(out, n, n+"f")
	}
	slices.Sort(out)
	return out
}

// Lookup returns the shape of the named assertion.
func Lookup(name string) (Shape, bool) {
	base := strings.TrimSuffix(name, "f")
	for s, names := range shapes {
		if slices.Contains(names, name) || slices.Contains(names, base) {
			return s, true
		}
	}
	return ShapeNone, false
}

// EqualCounterpart returns the equal-value assertion that replaces a
// same-reference assertion.
func EqualCounterpart(name string) (string, bool) {
	eq, ok := sameToEqual[name]
	return eq, ok
}

// SameNames returns the same-reference assertion names, sorted.
func SameNames() []string {
	out := make([]string, 0, len(sameToEqual))
	for n := range sameToEqual {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
