// Package constval resolves call arguments to compile-time constants
// and their static types.
package constval

import (
	"go/ast"
	"go/constant"
	"go/types"

	"github.com/unbound-force/assay/internal/typedesc"
)

// Argument is what the oracle knows about one argument expression.
type Argument struct {
	// Type is the static type. It is nil only for the untyped nil
	// literal, which has no type.
	Type typedesc.Type

	// Value is the constant as a Go value of the static type's basic
	// kind. For a non-constant argument it is the nil placeholder.
	Value any

	// Constant reports whether Value is a compile-time constant.
	Constant bool
}

// IsNull reports whether the argument is the nil literal.
func (a Argument) IsNull() bool {
	return a.Type == nil
}

// Const returns a constant argument of type t.
func Const(t typedesc.Type, v any) Argument {
	return Argument{Type: t, Value: v, Constant: true}
}

// NonConst returns a non-constant argument of type t.
func NonConst(t typedesc.Type) Argument {
	return Argument{Type: t}
}

// Null returns the nil literal argument.
func Null() Argument {
	return Argument{}
}

// Evaluate resolves expr using the type-checker's recorded facts. It
// returns false when expr has no recorded type or an invalid one.
func Evaluate(info *types.Info, expr ast.Expr, loc typedesc.AssemblyLocator) (Argument, bool) {
	if info == nil || expr == nil {
		return Argument{}, false
	}
	tv, ok := info.Types[expr]
	if !ok {
		return Argument{}, false
	}
	if tv.IsNil() {
		return Null(), true
	}

	t := typedesc.FromGo(tv.Type, loc)
	if t == nil {
		return Argument{}, false
	}
	if tv.Value == nil {
		return NonConst(t), true
	}

	v, ok := Materialize(tv.Value, tv.Type)
	if !ok {
		return NonConst(t), true
	}
	return Const(t, v), true
}

// Materialize converts a constant to the Go value a variable of type
// t would hold, using t's underlying basic kind. Complex constants and
// values that do not fit report false.
func Materialize(val constant.Value, t types.Type) (any, bool) {
	if val == nil || t == nil {
		return nil, false
	}
	b, ok := types.Default(t).Underlying().(*types.Basic)
	if !ok {
		return nil, false
	}

	switch b.Kind() {
	case types.Bool:
		if val.Kind() != constant.Bool {
			return nil, false
		}
		return constant.BoolVal(val), true
	case types.String:
		if val.Kind() != constant.String {
			return nil, false
		}
		return constant.StringVal(val), true
	case types.Float32:
		f, _ := constant.Float64Val(constant.ToFloat(val))
		return float32(f), true
	case types.Float64:
		f, _ := constant.Float64Val(constant.ToFloat(val))
		return f, true
	}

	if b.Info()&types.IsUnsigned != 0 {
		u, exact := constant.Uint64Val(constant.ToInt(val))
		if !exact {
			return nil, false
		}
		switch b.Kind() {
		case types.Uint:
			return uint(u), true
		case types.Uint8:
			return uint8(u), true
		case types.Uint16:
			return uint16(u), true
		case types.Uint32:
			return uint32(u), true
		case types.Uint64:
			return u, true
		case types.Uintptr:
			return uintptr(u), true
		}
		return nil, false
	}

	if b.Info()&types.IsInteger != 0 {
		i, exact := constant.Int64Val(constant.ToInt(val))
		if !exact {
			return nil, false
		}
		switch b.Kind() {
		case types.Int:
			return int(i), true
		case types.Int8:
			return int8(i), true
		case types.Int16:
			return int16(i), true
		case types.Int32:
			return int32(i), true
		case types.Int64:
			return i, true
		}
	}
	return nil, false
}
