package paramtest

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/unbound-force/assay/internal/compat"
	"github.com/unbound-force/assay/internal/convert"
	"github.com/unbound-force/assay/internal/typedesc"
)

// Flags are the conversion policies applied when binding a value.
type Flags = compat.Flags

// Binding policies of the public entry points. The assay analyzers
// check call sites with the same flags.
var (
	CaseFlags    = Flags{AllowImplicit: true, AllowEnumUnderlying: true}
	ReturnsFlags = Flags{AllowImplicit: true}
	ValuesFlags  = Flags{AllowEnumUnderlying: true}
)

// Conversion failures wrap one of these, or one of the convert
// package's errors.
var (
	ErrNilValue = errors.New("nil does not bind to a value type")
	ErrNoRule   = errors.New("no conversion applies")
)

// Coerce converts v to type to, trying in order: nil binding,
// assignability, built-in widening (when allowed), the narrowing
// table, and finally a registered value converter. A pointer target
// *T receives a pointer to the coerced T.
func Coerce(v any, to reflect.Type, flags Flags) (reflect.Value, error) {
	out, err := coerce(v, to, flags)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("cannot bind %T(%v) to %v: %w", v, v, to, err)
	}
	return out, nil
}

func coerce(v any, to reflect.Type, flags Flags) (reflect.Value, error) {
	if to == nil {
		return reflect.Value{}, ErrNoRule
	}
	if v == nil {
		if nilable(to) {
			return reflect.Zero(to), nil
		}
		return reflect.Value{}, ErrNilValue
	}

	target := to
	val := reflect.ValueOf(v)
	pointer := to.Kind() == reflect.Pointer
	if pointer {
		target = to.Elem()
		if val.Kind() == reflect.Pointer {
			if val.IsNil() {
				return reflect.Zero(to), nil
			}
			val = val.Elem()
		}
	}

	eff := target
	if flags.AllowEnumUnderlying {
		eff = underlying(eff)
		if u := underlying(val.Type()); u != val.Type() {
			val = val.Convert(u)
		}
	}

	r, err := bind(val, eff, flags)
	if err != nil {
		return reflect.Value{}, err
	}
	if r.Type() != target {
		if !r.Type().ConvertibleTo(target) {
			return reflect.Value{}, ErrNoRule
		}
		r = r.Convert(target)
	}
	if !pointer {
		return r, nil
	}
	p := reflect.New(target)
	p.Elem().Set(r)
	return p, nil
}

// bind converts val to eff, an already unwrapped target.
func bind(val reflect.Value, eff reflect.Type, flags Flags) (reflect.Value, error) {
	at := val.Type()
	if at.AssignableTo(eff) {
		out := reflect.New(eff).Elem()
		out.Set(val)
		return out, nil
	}
	if flags.AllowImplicit && isBasic(at) && isBasic(eff) && convert.Widens(at.Kind(), eff.Kind()) {
		return val.Convert(eff), nil
	}

	out, matched, err := compat.Narrow(typedesc.KindOfReflect(eff), typedesc.KindOfReflect(at), val.Interface())
	if matched {
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(out), nil
	}

	c := convert.Default().Lookup(eff)
	if c == nil || !c.CanConvertFrom(at) {
		return reflect.Value{}, ErrNoRule
	}
	got, err := c.ConvertFrom(val.Interface())
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(got), nil
}

// underlying maps an enum type to its predeclared integer type.
func underlying(t reflect.Type) reflect.Type {
	if typedesc.KindOfReflect(t) != typedesc.KindEnum {
		return t
	}
	if b, ok := typedesc.BasicType(t.Kind()); ok {
		return b
	}
	return t
}

func isBasic(t reflect.Type) bool {
	b, ok := typedesc.BasicType(t.Kind())
	return ok && b == t
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}
