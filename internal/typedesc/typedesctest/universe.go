// Package typedesctest builds a small universe of static type
// descriptors that mirrors the Go types the oracle cares about.
package typedesctest

import (
	"golang.org/x/mod/module"

	"github.com/unbound-force/assay/internal/typedesc"
)

// Universe is a set of related descriptors. Every call to New returns
// fresh descriptors, so tests never share identity by accident.
type Universe struct {
	Int, Int8, Int16, Int32, Int64 *typedesc.Static
	Uint8, Float32, Float64        *typedesc.Static
	String, Bool                   *typedesc.Static
	Decimal, DateTime, Duration    *typedesc.Static
	UUID                           *typedesc.Static

	// Any is the empty interface; every descriptor here is assignable
	// to it.
	Any *typedesc.Static

	// Slice is []int, a reference type.
	Slice *typedesc.Static

	// Point is a struct value type with no special kind.
	Point *typedesc.Static

	// Color is an enum over Int; Level is an enum over Int16.
	Color, Level *typedesc.Static
}

// Module versions used by the universe.
var (
	Std  = module.Version{Path: typedesc.StdModule, Version: "go1.24.2"}
	Apd  = module.Version{Path: "github.com/cockroachdb/apd/v3", Version: "v3.2.1"}
	UUID = module.Version{Path: "github.com/google/uuid", Version: "v1.6.0"}
	App  = module.Version{Path: "example.com/app", Version: "v0.1.0"}
)

func basic(name string, kind typedesc.Kind) *typedesc.Static {
	return &typedesc.Static{TypeName: name, TypeKind: kind, Module: Std}
}

// New builds a universe.
func New() *Universe {
	u := &Universe{
		Int:     basic("int", typedesc.KindInt),
		Int8:    basic("int8", typedesc.KindInt8),
		Int16:   basic("int16", typedesc.KindInt16),
		Int32:   basic("int32", typedesc.KindNone),
		Int64:   basic("int64", typedesc.KindInt64),
		Uint8:   basic("uint8", typedesc.KindUint8),
		Float32: basic("float32", typedesc.KindNone),
		Float64: basic("float64", typedesc.KindFloat64),
		String:  basic("string", typedesc.KindString),
		Bool:    basic("bool", typedesc.KindNone),
		Any:     &typedesc.Static{TypeKind: typedesc.KindNone, Reference: true, Module: Std},
	}

	u.Decimal = &typedesc.Static{
		TypeName: "Decimal", TypeKind: typedesc.KindDecimal,
		NS: []string{typedesc.DecimalPkg}, Module: Apd,
	}
	u.DateTime = &typedesc.Static{
		TypeName: "Time", TypeKind: typedesc.KindDateTime,
		NS: []string{"time"}, Module: Std,
	}
	u.Duration = &typedesc.Static{
		TypeName: "Duration", TypeKind: typedesc.KindEnum, Underlying: u.Int64,
		NS: []string{"time"}, Module: Std,
	}
	u.UUID = &typedesc.Static{
		TypeName: "UUID", TypeKind: typedesc.KindNone,
		NS: []string{"github.com/google/uuid"}, Module: UUID,
	}
	u.Slice = &typedesc.Static{TypeKind: typedesc.KindNone, Reference: true, Module: Std}
	u.Point = &typedesc.Static{
		TypeName: "Point", TypeKind: typedesc.KindNone,
		NS: []string{"example.com/app/geo"}, Module: App,
	}
	u.Color = &typedesc.Static{
		TypeName: "Color", TypeKind: typedesc.KindEnum, Underlying: u.Int,
		NS: []string{"example.com/app/paint"}, Module: App,
	}
	u.Level = &typedesc.Static{
		TypeName: "Level", TypeKind: typedesc.KindEnum, Underlying: u.Int16,
		NS: []string{"example.com/app/log"}, Module: App,
	}

	// Lossless widenings, matching convert.Widens.
	u.Int8.Widens = []typedesc.Type{u.Int16, u.Int32, u.Int64, u.Int, u.Float32, u.Float64}
	u.Int16.Widens = []typedesc.Type{u.Int32, u.Int64, u.Int, u.Float32, u.Float64}
	u.Int32.Widens = []typedesc.Type{u.Int64, u.Int, u.Float64}
	u.Int.Widens = []typedesc.Type{u.Int64}
	u.Uint8.Widens = []typedesc.Type{u.Int16, u.Int32, u.Int64, u.Int, u.Float32, u.Float64}
	u.Float32.Widens = []typedesc.Type{u.Float64}

	all := []*typedesc.Static{
		u.Int, u.Int8, u.Int16, u.Int32, u.Int64, u.Uint8, u.Float32, u.Float64,
		u.String, u.Bool, u.Decimal, u.DateTime, u.Duration, u.UUID, u.Slice,
		u.Point, u.Color, u.Level,
	}
	for _, s := range all {
		s.Supertypes = append(s.Supertypes, u.Any)
	}
	return u
}

// Nullable returns a fresh *T descriptor.
func Nullable(elem typedesc.Type) *typedesc.Static {
	return &typedesc.Static{TypeKind: typedesc.KindNullable, Element: elem, Module: Std}
}
