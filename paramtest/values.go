package paramtest

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// ValueSource is the set of values for one parameter of RunValues.
type ValueSource struct {
	vals []any
}

// Values lists the values one parameter takes.
func Values(vals ...any) ValueSource {
	return ValueSource{vals: vals}
}

// RunValues calls fn with every combination of the sources' values.
// The i-th source binds to the i-th parameter after *testing.T; fn
// must have exactly one parameter per source.
func RunValues(t *testing.T, fn any, sources ...ValueSource) {
	t.Helper()
	fv, ft, err := testFunc(fn)
	if err != nil {
		t.Fatalf("paramtest.RunValues: %v", err)
	}
	if ft.IsVariadic() || ft.NumIn()-1 != len(sources) {
		t.Fatalf("paramtest.RunValues: %d sources for %v", len(sources), ft)
	}

	bound := make([][]reflect.Value, len(sources))
	for i, src := range sources {
		for j, v := range src.vals {
			rv, err := Coerce(v, ft.In(i+1), ValuesFlags)
			if err != nil {
				t.Fatalf("paramtest.RunValues: source %d value %d: %v", i, j, err)
			}
			bound[i] = append(bound[i], rv)
		}
	}

	for _, combo := range product(bound) {
		t.Run(comboName(combo), func(t *testing.T) {
			fv.Call(append([]reflect.Value{reflect.ValueOf(t)}, combo...))
		})
	}
}

// product returns the cartesian product of sets, varying the last set
// fastest. An empty set yields no combinations.
func product(sets [][]reflect.Value) [][]reflect.Value {
	out := [][]reflect.Value{nil}
	for _, set := range sets {
		next := make([][]reflect.Value, 0, len(out)*len(set))
		for _, prefix := range out {
			for _, v := range set {
				row := make([]reflect.Value, len(prefix), len(prefix)+1)
				copy(row, prefix)
				next = append(next, append(row, v))
			}
		}
		out = next
	}
	return out
}

func comboName(vals []reflect.Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		if v.Kind() == reflect.Pointer && !v.IsNil() {
			v = v.Elem()
		}
		parts[i] = fmt.Sprint(v.Interface())
	}
	return strings.Join(parts, ",")
}
