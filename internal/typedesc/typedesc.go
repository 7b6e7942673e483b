// Package typedesc describes the types of an analyzed program through a
// small, read-only query interface. The compatibility oracle only ever
// talks to this interface, which keeps it independent of go/types and
// testable with hand-built descriptors.
package typedesc

import (
	"fmt"

	"golang.org/x/mod/module"
)

// Kind is the special-kind tag of a type. The set is closed: every
// conversion rule in the oracle is a case over these values.
type Kind uint8

// Kind constants.
const (
	// KindNone is any type without a special conversion role.
	KindNone Kind = iota

	// KindInt is int, the default type of untyped integer constants.
	KindInt

	KindInt8
	KindInt16
	KindInt64
	KindUint8

	// KindFloat64 is float64, the default type of untyped float
	// constants.
	KindFloat64

	KindString

	// KindDecimal is github.com/cockroachdb/apd/v3.Decimal.
	KindDecimal

	// KindDateTime is time.Time.
	KindDateTime

	// KindNullable is a pointer *T; Elem reports T.
	KindNullable

	// KindEnum is a defined type whose underlying type is an integer
	// basic type; EnumUnderlying reports that basic type.
	KindEnum
)

var kindNames = [...]string{
	KindNone:     "none",
	KindInt:      "int",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt64:    "int64",
	KindUint8:    "uint8",
	KindFloat64:  "float64",
	KindString:   "string",
	KindDecimal:  "decimal",
	KindDateTime: "datetime",
	KindNullable: "nullable",
	KindEnum:     "enum",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Type is an immutable handle to a type in the analyzed program.
// Implementations must be safe for concurrent reads. A nil Type is the
// indeterminate descriptor.
type Type interface {
	// Name is the simple name, or "" for unnamed and open types.
	Name() string

	// Kind is the special-kind classification.
	Kind() Kind

	// Elem is T for a KindNullable *T, nil otherwise.
	Elem() Type

	// EnumUnderlying is the integer basic type of a KindEnum, nil
	// otherwise.
	EnumUnderlying() Type

	// IsReference reports whether nil is a legal value of the type
	// without it being nullable-of-T (slices, maps, channels,
	// functions, interfaces).
	IsReference() bool

	// Namespace is the containing namespace chain, innermost first.
	Namespace() []string

	// Assembly identifies the module that hosts the type.
	Assembly() module.Version

	// Fallback is consulted for naming when the type itself lacks a
	// name or namespace. It may be nil.
	Fallback() Type

	// AssignableTo reports identity, interface satisfaction and the
	// other language assignability rules. It does not cover implicit
	// numeric conversion.
	AssignableTo(target Type) bool

	// ImplicitlyConvertibleTo reports whether a built-in, lossless
	// conversion exists from this type to target.
	ImplicitlyConvertibleTo(target Type) bool

	String() string
}

// StdModule is the assembly identity used for predeclared types and
// standard library packages.
const StdModule = "std"

// IsNullable reports whether t is a KindNullable descriptor.
func IsNullable(t Type) bool {
	return t != nil && t.Kind() == KindNullable
}

// IsEnum reports whether t is a KindEnum descriptor.
func IsEnum(t Type) bool {
	return t != nil && t.Kind() == KindEnum
}
