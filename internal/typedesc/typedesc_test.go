package typedesc_test

import (
	"go/token"
	"go/types"
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mod/module"

	"github.com/unbound-force/assay/internal/typedesc"
)

func TestModuleIndex_Locate(t *testing.T) {
	ix := typedesc.NewModuleIndex(
		module.Version{Path: "example.com/app", Version: "v0.1.0"},
		module.Version{Path: "example.com/app/tools", Version: "v0.3.0"},
		module.Version{Path: "example.com/app", Version: "v0.2.0"},
		module.Version{Path: "github.com/google/uuid", Version: "v1.6.0"},
	)

	assert.Equal(t, "example.com/app@v0.2.0", ix.Locate("example.com/app/geo").String())
	assert.Equal(t, "example.com/app/tools@v0.3.0", ix.Locate("example.com/app/tools/lint").String())
	assert.Equal(t, "github.com/google/uuid@v1.6.0", ix.Locate("github.com/google/uuid").String())
	assert.Equal(t, typedesc.Std(), ix.Locate("net/http"))
	assert.Equal(t, module.Version{Path: "example.org/other"}, ix.Locate("example.org/other"))

	// "example.com/application" is not inside "example.com/app".
	assert.Equal(t, module.Version{Path: "example.com/application"}, ix.Locate("example.com/application"))

	mods := ix.Modules()
	require.Len(t, mods, 3)
	assert.Equal(t, "example.com/app/tools", mods[0].Path)
}

func TestIsStdPackage(t *testing.T) {
	assert.True(t, typedesc.IsStdPackage("time"))
	assert.True(t, typedesc.IsStdPackage("net/netip"))
	assert.True(t, typedesc.IsStdPackage(""))
	assert.False(t, typedesc.IsStdPackage("github.com/google/uuid"))
	assert.False(t, typedesc.IsStdPackage("example.com/app"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "datetime", typedesc.KindDateTime.String())
	assert.Equal(t, "Kind(99)", typedesc.Kind(99).String())
}

type color int
type label string

func TestKindOfReflect(t *testing.T) {
	tests := []struct {
		rt   reflect.Type
		want typedesc.Kind
	}{
		{reflect.TypeFor[int](), typedesc.KindInt},
		{reflect.TypeFor[int8](), typedesc.KindInt8},
		{reflect.TypeFor[int16](), typedesc.KindInt16},
		{reflect.TypeFor[int32](), typedesc.KindNone},
		{reflect.TypeFor[int64](), typedesc.KindInt64},
		{reflect.TypeFor[byte](), typedesc.KindUint8},
		{reflect.TypeFor[float64](), typedesc.KindFloat64},
		{reflect.TypeFor[string](), typedesc.KindString},
		{reflect.TypeFor[time.Time](), typedesc.KindDateTime},
		{reflect.TypeFor[apd.Decimal](), typedesc.KindDecimal},
		{reflect.TypeFor[*int](), typedesc.KindNullable},
		{reflect.TypeFor[color](), typedesc.KindEnum},
		{reflect.TypeFor[time.Duration](), typedesc.KindEnum},
		{reflect.TypeFor[label](), typedesc.KindNone},
		{reflect.TypeFor[netip.Addr](), typedesc.KindNone},
		{nil, typedesc.KindNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typedesc.KindOfReflect(tt.rt), "%v", tt.rt)
	}
}

// universe is a hand-built go/types world: package time with Time and
// Duration, apd with Decimal, and an app package with an enum.
type universe struct {
	time, duration, decimal, color, point types.Type
	loc                                   *typedesc.ModuleIndex
}

func newUniverse() *universe {
	named := func(pkg *types.Package, name string, underlying types.Type) *types.Named {
		obj := types.NewTypeName(token.NoPos, pkg, name, nil)
		n := types.NewNamed(obj, underlying, nil)
		pkg.Scope().Insert(obj)
		return n
	}
	timePkg := types.NewPackage("time", "time")
	apdPkg := types.NewPackage(typedesc.DecimalPkg, "apd")
	app := types.NewPackage("example.com/app/paint", "paint")

	return &universe{
		time:     named(timePkg, "Time", types.NewStruct(nil, nil)),
		duration: named(timePkg, "Duration", types.Typ[types.Int64]),
		decimal:  named(apdPkg, "Decimal", types.NewStruct(nil, nil)),
		color:    named(app, "Color", types.Typ[types.Int]),
		point:    named(app, "Point", types.NewStruct(nil, nil)),
		loc: typedesc.NewModuleIndex(
			module.Version{Path: typedesc.DecimalPkg, Version: "v3.2.1"},
			module.Version{Path: "example.com/app", Version: "v0.1.0"},
		),
	}
}

func TestFromGo_Kinds(t *testing.T) {
	u := newUniverse()
	tests := []struct {
		t    types.Type
		want typedesc.Kind
	}{
		{types.Typ[types.Int], typedesc.KindInt},
		{types.Typ[types.UntypedInt], typedesc.KindInt},
		{types.Typ[types.UntypedFloat], typedesc.KindFloat64},
		{types.Typ[types.UntypedString], typedesc.KindString},
		{types.Universe.Lookup("byte").Type(), typedesc.KindUint8},
		{types.Typ[types.Int32], typedesc.KindNone},
		{u.time, typedesc.KindDateTime},
		{u.decimal, typedesc.KindDecimal},
		{u.duration, typedesc.KindEnum},
		{u.color, typedesc.KindEnum},
		{u.point, typedesc.KindNone},
		{types.NewPointer(types.Typ[types.Int16]), typedesc.KindNullable},
	}
	for _, tt := range tests {
		d := typedesc.FromGo(tt.t, u.loc)
		require.NotNil(t, d, "%v", tt.t)
		assert.Equal(t, tt.want, d.Kind(), "%v", tt.t)
	}

	assert.Nil(t, typedesc.FromGo(types.Typ[types.UntypedNil], u.loc))
	assert.Nil(t, typedesc.FromGo(types.Typ[types.Invalid], u.loc))
	assert.Nil(t, typedesc.FromGo(nil, u.loc))
}

func TestFromGo_Structure(t *testing.T) {
	u := newUniverse()

	ptr := typedesc.FromGo(types.NewPointer(u.color), u.loc)
	require.True(t, typedesc.IsNullable(ptr))
	assert.Equal(t, "Color", ptr.Elem().Name())
	assert.Equal(t, []string{"example.com/app/paint"}, ptr.Elem().Namespace())
	assert.Equal(t, "example.com/app@v0.1.0", ptr.Elem().Assembly().String())

	under := typedesc.FromGo(u.color, u.loc).EnumUnderlying()
	require.NotNil(t, under)
	assert.Equal(t, typedesc.KindInt, under.Kind())

	dec := typedesc.FromGo(u.decimal, u.loc)
	assert.Equal(t, "github.com/cockroachdb/apd/v3@v3.2.1", dec.Assembly().String())

	b := typedesc.FromGo(types.Universe.Lookup("byte").Type(), u.loc)
	assert.Equal(t, "uint8", b.Name())
	assert.Equal(t, typedesc.Std(), b.Assembly())
	assert.Nil(t, b.Namespace())
}

func TestFromGo_IsReference(t *testing.T) {
	u := newUniverse()
	for _, rt := range []types.Type{
		types.NewSlice(types.Typ[types.Int]),
		types.NewMap(types.Typ[types.String], types.Typ[types.Int]),
		types.NewChan(types.SendRecv, types.Typ[types.Int]),
		types.NewInterfaceType(nil, nil),
		types.NewSignatureType(nil, nil, nil, nil, nil, false),
		types.Typ[types.UnsafePointer],
	} {
		assert.True(t, typedesc.FromGo(rt, u.loc).IsReference(), "%v", rt)
	}
	for _, vt := range []types.Type{types.Typ[types.Int], u.point, types.NewPointer(u.point)} {
		assert.False(t, typedesc.FromGo(vt, u.loc).IsReference(), "%v", vt)
	}
}

func TestFromGo_Assignability(t *testing.T) {
	u := newUniverse()
	from := func(t types.Type) typedesc.Type { return typedesc.FromGo(t, u.loc) }

	anyT := from(types.NewInterfaceType(nil, nil))
	intT := from(types.Typ[types.Int])
	int8T := from(types.Typ[types.Int8])
	int16T := from(types.Typ[types.Int16])

	assert.True(t, from(u.point).AssignableTo(anyT))
	assert.True(t, intT.AssignableTo(from(types.Typ[types.Int])))
	assert.False(t, intT.AssignableTo(from(u.color)))
	assert.False(t, intT.AssignableTo(nil))

	assert.True(t, int8T.ImplicitlyConvertibleTo(int16T))
	assert.False(t, int16T.ImplicitlyConvertibleTo(int8T))
	assert.False(t, from(u.color).ImplicitlyConvertibleTo(intT), "defined types never widen")
}

func TestFromGo_TypeParamFallback(t *testing.T) {
	u := newUniverse()
	pkg := types.NewPackage("example.com/app/gen", "gen")

	term := types.NewUnion([]*types.Term{types.NewTerm(false, u.color)})
	constraint := types.NewInterfaceType(nil, []types.Type{term})
	tp := types.NewTypeParam(types.NewTypeName(token.NoPos, pkg, "T", nil), constraint)

	d := typedesc.FromGo(tp, u.loc)
	require.NotNil(t, d.Fallback())
	assert.Equal(t, "Color", d.Fallback().Name())
	assert.Equal(t, []string{"example.com/app/paint"}, d.Fallback().Namespace())

	wide := types.NewUnion([]*types.Term{
		types.NewTerm(true, types.Typ[types.Int]),
		types.NewTerm(true, types.Typ[types.String]),
	})
	tp2 := types.NewTypeParam(types.NewTypeName(token.NoPos, pkg, "U", nil),
		types.NewInterfaceType(nil, []types.Type{wide}))
	assert.Nil(t, typedesc.FromGo(tp2, u.loc).Fallback())
}

func TestStatic(t *testing.T) {
	elem := &typedesc.Static{TypeName: "int", TypeKind: typedesc.KindInt}
	ptr := &typedesc.Static{TypeKind: typedesc.KindNullable, Element: elem}

	assert.Same(t, elem, ptr.Elem())
	assert.Nil(t, elem.Elem())
	assert.Nil(t, elem.EnumUnderlying())
	assert.Equal(t, "<nullable>", ptr.String())
	assert.True(t, elem.AssignableTo(elem))
	assert.False(t, elem.AssignableTo(ptr))
}
