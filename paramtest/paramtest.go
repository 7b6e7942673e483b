// Package paramtest runs table-driven tests whose cases are argument
// lists bound to a test function's parameters.
//
//	func TestAbs(t *testing.T) {
//		paramtest.Run(t, func(t *testing.T, in int16) int16 {
//			return abs(in)
//		},
//			paramtest.Case(-3).Returns(3),
//			paramtest.Case(7).Returns(7),
//		)
//	}
//
// Arguments are coerced to the parameter types at run time (see
// Coerce). The assay analyzers check the same bindings statically.
package paramtest

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// CaseData is one row of arguments for Run.
type CaseData struct {
	name      string
	args      []any
	want      any
	hasReturn bool
}

// Case returns a case that passes args, in order, to the test
// function's parameters after the leading *testing.T.
func Case(args ...any) CaseData {
	return CaseData{args: args}
}

// Returns sets the value the test function must return.
func (c CaseData) Returns(v any) CaseData {
	c.want = v
	c.hasReturn = true
	return c
}

// Named sets the subtest name. By default the name is built from the
// arguments.
func (c CaseData) Named(name string) CaseData {
	c.name = name
	return c
}

func (c CaseData) subtestName() string {
	if c.name != "" {
		return c.name
	}
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, ",")
}

var testingT = reflect.TypeFor[*testing.T]()

// Run calls fn once per case in a subtest. fn must be a function whose
// first parameter is *testing.T. A variadic last parameter absorbs the
// remaining arguments. A case with Returns requires fn to have exactly
// one result.
func Run(t *testing.T, fn any, cases ...CaseData) {
	t.Helper()
	fv, ft, err := testFunc(fn)
	if err != nil {
		t.Fatalf("paramtest.Run: %v", err)
	}
	for _, c := range cases {
		t.Run(c.subtestName(), func(t *testing.T) {
			t.Helper()
			in, err := bindCase(ft, c.args)
			if err != nil {
				t.Fatalf("binding case: %v", err)
			}
			out := fv.Call(append([]reflect.Value{reflect.ValueOf(t)}, in...))
			if !c.hasReturn {
				return
			}
			if len(out) != 1 {
				t.Fatalf("Returns needs a function with one result, %v has %d", ft, len(out))
			}
			want, err := Coerce(c.want, ft.Out(0), ReturnsFlags)
			if err != nil {
				t.Fatalf("binding expected result: %v", err)
			}
			if !equal(out[0], want) {
				t.Errorf("got %v, want %v", out[0], want)
			}
		})
	}
}

func testFunc(fn any) (reflect.Value, reflect.Type, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return reflect.Value{}, nil, fmt.Errorf("%T is not a function", fn)
	}
	ft := fv.Type()
	if ft.NumIn() == 0 || ft.In(0) != testingT {
		return reflect.Value{}, nil, fmt.Errorf("%v must take *testing.T first", ft)
	}
	return fv, ft, nil
}

// bindCase coerces args to the parameters of ft after the first.
func bindCase(ft reflect.Type, args []any) ([]reflect.Value, error) {
	params := ft.NumIn() - 1
	switch {
	case ft.IsVariadic() && len(args) < params-1:
		return nil, fmt.Errorf("%d arguments for at least %d parameters", len(args), params-1)
	case !ft.IsVariadic() && len(args) != params:
		return nil, fmt.Errorf("%d arguments for %d parameters", len(args), params)
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(ft, i+1)
		v, err := Coerce(a, pt, CaseFlags)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

// paramType is the type the i-th argument binds to, accounting for a
// variadic last parameter.
func paramType(ft reflect.Type, i int) reflect.Type {
	last := ft.NumIn() - 1
	if ft.IsVariadic() && i >= last {
		return ft.In(last).Elem()
	}
	return ft.In(i)
}

// equal compares results, using value equality for decimals and times
// rather than representation equality.
func equal(got, want reflect.Value) bool {
	switch g := got.Interface().(type) {
	case apd.Decimal:
		w := want.Interface().(apd.Decimal)
		return g.Cmp(&w) == 0
	case time.Time:
		return g.Equal(want.Interface().(time.Time))
	}
	return reflect.DeepEqual(got.Interface(), want.Interface())
}
