package typedesc

import (
	"go/types"
	"reflect"

	"golang.org/x/mod/module"

	"github.com/unbound-force/assay/internal/convert"
)

// Well-known named types with a special kind.
const (
	DecimalPkg  = "github.com/cockroachdb/apd/v3"
	DecimalName = "Decimal"
	TimePkg     = "time"
	TimeName    = "Time"
)

// goType adapts a go/types type to the Type interface.
type goType struct {
	t   types.Type
	loc AssemblyLocator
}

// FromGo adapts t. Aliases are resolved and untyped constants take
// their default type. Invalid types and the untyped nil type yield
// nil, the indeterminate descriptor. A nil loc uses BuildInfoIndex.
func FromGo(t types.Type, loc AssemblyLocator) Type {
	if t == nil {
		return nil
	}
	t = types.Default(types.Unalias(t))
	if b, ok := t.(*types.Basic); ok {
		if b.Kind() == types.Invalid || b.Kind() == types.UntypedNil {
			return nil
		}
	}
	if loc == nil {
		loc = BuildInfoIndex()
	}
	return &goType{t: t, loc: loc}
}

// GoType returns the go/types type behind t, if t came from FromGo.
func GoType(t Type) (types.Type, bool) {
	g, ok := t.(*goType)
	if !ok {
		return nil, false
	}
	return g.t, true
}

func (g *goType) Name() string {
	switch t := g.t.(type) {
	case *types.Basic:
		// byte and rune name their canonical kinds.
		return types.Typ[t.Kind()].Name()
	case *types.Named:
		return t.Obj().Name()
	}
	return ""
}

func (g *goType) Kind() Kind {
	switch t := g.t.(type) {
	case *types.Basic:
		return basicKind(t.Kind())
	case *types.Pointer:
		return KindNullable
	case *types.Named:
		if pkg := t.Obj().Pkg(); pkg != nil {
			switch {
			case pkg.Path() == TimePkg && t.Obj().Name() == TimeName:
				return KindDateTime
			case pkg.Path() == DecimalPkg && t.Obj().Name() == DecimalName:
				return KindDecimal
			}
		}
		if b, ok := t.Underlying().(*types.Basic); ok && b.Info()&types.IsInteger != 0 {
			return KindEnum
		}
	}
	return KindNone
}

func basicKind(k types.BasicKind) Kind {
	switch k {
	case types.Int:
		return KindInt
	case types.Int8:
		return KindInt8
	case types.Int16:
		return KindInt16
	case types.Int64:
		return KindInt64
	case types.Uint8:
		return KindUint8
	case types.Float64:
		return KindFloat64
	case types.String:
		return KindString
	}
	return KindNone
}

func (g *goType) Elem() Type {
	if p, ok := g.t.(*types.Pointer); ok {
		return FromGo(p.Elem(), g.loc)
	}
	return nil
}

func (g *goType) EnumUnderlying() Type {
	if g.Kind() != KindEnum {
		return nil
	}
	return FromGo(g.t.Underlying(), g.loc)
}

func (g *goType) IsReference() bool {
	switch u := g.t.Underlying().(type) {
	case *types.Slice, *types.Map, *types.Chan, *types.Signature, *types.Interface:
		return true
	case *types.Basic:
		return u.Kind() == types.UnsafePointer
	}
	return false
}

func (g *goType) Namespace() []string {
	if n, ok := g.t.(*types.Named); ok && n.Obj().Pkg() != nil {
		return []string{n.Obj().Pkg().Path()}
	}
	return nil
}

func (g *goType) Assembly() module.Version {
	if n, ok := g.t.(*types.Named); ok && n.Obj().Pkg() != nil {
		return g.loc.Locate(n.Obj().Pkg().Path())
	}
	return Std()
}

// Fallback is the core type of a type parameter whose constraint pins
// exactly one type, and nil for everything else.
func (g *goType) Fallback() Type {
	tp, ok := g.t.(*types.TypeParam)
	if !ok {
		return nil
	}
	iface, ok := tp.Constraint().Underlying().(*types.Interface)
	if !ok || iface.NumEmbeddeds() != 1 {
		return nil
	}
	switch e := iface.EmbeddedType(0).(type) {
	case *types.Union:
		if e.Len() == 1 {
			return FromGo(e.Term(0).Type(), g.loc)
		}
	case *types.Interface:
	default:
		return FromGo(e, g.loc)
	}
	return nil
}

func (g *goType) AssignableTo(target Type) bool {
	tt, ok := GoType(target)
	if !ok {
		return false
	}
	return types.AssignableTo(g.t, tt)
}

func (g *goType) ImplicitlyConvertibleTo(target Type) bool {
	tt, ok := GoType(target)
	if !ok {
		return false
	}
	from, ok := g.t.(*types.Basic)
	if !ok {
		return false
	}
	to, ok := tt.(*types.Basic)
	if !ok {
		return false
	}
	fk, fok := reflectKinds[from.Kind()]
	tk, tok := reflectKinds[to.Kind()]
	return fok && tok && convert.Widens(fk, tk)
}

func (g *goType) String() string {
	return types.TypeString(g.t, nil)
}

var reflectKinds = map[types.BasicKind]reflect.Kind{
	types.Bool:       reflect.Bool,
	types.Int:        reflect.Int,
	types.Int8:       reflect.Int8,
	types.Int16:      reflect.Int16,
	types.Int32:      reflect.Int32,
	types.Int64:      reflect.Int64,
	types.Uint:       reflect.Uint,
	types.Uint8:      reflect.Uint8,
	types.Uint16:     reflect.Uint16,
	types.Uint32:     reflect.Uint32,
	types.Uint64:     reflect.Uint64,
	types.Uintptr:    reflect.Uintptr,
	types.Float32:    reflect.Float32,
	types.Float64:    reflect.Float64,
	types.Complex64:  reflect.Complex64,
	types.Complex128: reflect.Complex128,
	types.String:     reflect.String,
}

// ReflectKind maps a go/types basic kind to its reflect kind.
func ReflectKind(k types.BasicKind) (reflect.Kind, bool) {
	rk, ok := reflectKinds[k]
	return rk, ok
}
