package typedesc

import "reflect"

// KindOfReflect classifies a runtime type with the same rules FromGo
// applies to static types, so the paramtest runtime and the oracle
// agree on which conversion rule covers a pair of types.
func KindOfReflect(rt reflect.Type) Kind {
	if rt == nil {
		return KindNone
	}
	if rt.Kind() == reflect.Pointer {
		return KindNullable
	}
	switch {
	case rt.PkgPath() == TimePkg && rt.Name() == TimeName:
		return KindDateTime
	case rt.PkgPath() == DecimalPkg && rt.Name() == DecimalName:
		return KindDecimal
	}

	if rt.PkgPath() != "" && rt.Name() != "" {
		if isIntegerKind(rt.Kind()) {
			return KindEnum
		}
		return KindNone
	}

	switch rt.Kind() {
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int64:
		return KindInt64
	case reflect.Uint8:
		return KindUint8
	case reflect.Float64:
		return KindFloat64
	case reflect.String:
		return KindString
	}
	return KindNone
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:       reflect.TypeFor[bool](),
	reflect.Int:        reflect.TypeFor[int](),
	reflect.Int8:       reflect.TypeFor[int8](),
	reflect.Int16:      reflect.TypeFor[int16](),
	reflect.Int32:      reflect.TypeFor[int32](),
	reflect.Int64:      reflect.TypeFor[int64](),
	reflect.Uint:       reflect.TypeFor[uint](),
	reflect.Uint8:      reflect.TypeFor[uint8](),
	reflect.Uint16:     reflect.TypeFor[uint16](),
	reflect.Uint32:     reflect.TypeFor[uint32](),
	reflect.Uint64:     reflect.TypeFor[uint64](),
	reflect.Uintptr:    reflect.TypeFor[uintptr](),
	reflect.Float32:    reflect.TypeFor[float32](),
	reflect.Float64:    reflect.TypeFor[float64](),
	reflect.Complex64:  reflect.TypeFor[complex64](),
	reflect.Complex128: reflect.TypeFor[complex128](),
	reflect.String:     reflect.TypeFor[string](),
}

// BasicType returns the predeclared type of a basic reflect kind. It
// is the runtime counterpart of EnumUnderlying.
func BasicType(k reflect.Kind) (reflect.Type, bool) {
	t, ok := basicTypes[k]
	return t, ok
}
