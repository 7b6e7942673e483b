package convert

import "reflect"

// width is the range of bit sizes a basic kind may have. int and uint
// are 32 bits on some platforms and 64 on others, so a conversion out
// of them is judged by max and into them by min.
type width struct {
	min, max int
}

var signedWidths = map[reflect.Kind]width{
	reflect.Int8:  {8, 8},
	reflect.Int16: {16, 16},
	reflect.Int32: {32, 32},
	reflect.Int64: {64, 64},
	reflect.Int:   {32, 64},
}

var unsignedWidths = map[reflect.Kind]width{
	reflect.Uint8:   {8, 8},
	reflect.Uint16:  {16, 16},
	reflect.Uint32:  {32, 32},
	reflect.Uint64:  {64, 64},
	reflect.Uint:    {32, 64},
	reflect.Uintptr: {32, 64},
}

// mantissa is the number of integer bits a float kind holds exactly.
var mantissa = map[reflect.Kind]int{
	reflect.Float32: 24,
	reflect.Float64: 53,
}

// Widens reports whether the built-in implicit conversion from basic
// kind from to basic kind to exists. Only lossless conversions
// qualify: a wider integer of compatible signedness, an integer whose
// every value a float represents exactly, float32 to float64 and
// complex64 to complex128. Identity is not a conversion.
func Widens(from, to reflect.Kind) bool {
	if from == to {
		return false
	}

	if fw, ok := signedWidths[from]; ok {
		if tw, ok := signedWidths[to]; ok {
			return fw.max <= tw.min
		}
		if m, ok := mantissa[to]; ok {
			return fw.max <= m+1
		}
		return false
	}

	if fw, ok := unsignedWidths[from]; ok {
		if tw, ok := unsignedWidths[to]; ok {
			return fw.max <= tw.min
		}
		if tw, ok := signedWidths[to]; ok {
			return fw.max < tw.min
		}
		if m, ok := mantissa[to]; ok {
			return fw.max <= m
		}
		return false
	}

	switch {
	case from == reflect.Float32 && to == reflect.Float64:
		return true
	case from == reflect.Complex64 && to == reflect.Complex128:
		return true
	}
	return false
}
