// Package convert holds the value conversions the paramtest runtime
// performs when it binds a case argument to a test parameter: numeric
// narrowing, decimal and date-time coercion, the built-in widening
// table, and a registry of value converters keyed by runtime type.
//
// The same functions back the static compatibility oracle, so a value
// the oracle accepts is a value the runtime can convert.
package convert

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Conversion failure classes. Returned errors wrap exactly one of
// these.
var (
	ErrOverflow    = errors.New("value out of range")
	ErrFormat      = errors.New("malformed value")
	ErrInvalidCast = errors.New("invalid cast")
)

// integer extracts a signed integer from any integer-kinded value.
// A nil value yields zero.
func integer(v any) (int64, error) {
	if v == nil {
		return 0, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d exceeds int64", ErrOverflow, u)
		}
		return int64(u), nil
	}
	return 0, fmt.Errorf("%w: %T is not an integer", ErrInvalidCast, v)
}

func inRange(n, lo, hi int64, target string) error {
	if n < lo || n > hi {
		return fmt.Errorf("%w: %d does not fit in %s", ErrOverflow, n, target)
	}
	return nil
}

// ToInt16 converts an integer value to int16.
func ToInt16(v any) (int16, error) {
	n, err := integer(v)
	if err != nil {
		return 0, err
	}
	if err := inRange(n, math.MinInt16, math.MaxInt16, "int16"); err != nil {
		return 0, err
	}
	return int16(n), nil
}

// ToInt8 converts an integer value to int8.
func ToInt8(v any) (int8, error) {
	n, err := integer(v)
	if err != nil {
		return 0, err
	}
	if err := inRange(n, math.MinInt8, math.MaxInt8, "int8"); err != nil {
		return 0, err
	}
	return int8(n), nil
}

// ToUint8 converts an integer value to uint8.
func ToUint8(v any) (uint8, error) {
	n, err := integer(v)
	if err != nil {
		return 0, err
	}
	if err := inRange(n, 0, math.MaxUint8, "uint8"); err != nil {
		return 0, err
	}
	return uint8(n), nil
}

// ToInt64 converts an integer value to int64.
func ToInt64(v any) (int64, error) {
	return integer(v)
}

// ToFloat64 converts an integer or float value to float64.
func ToFloat64(v any) (float64, error) {
	if v == nil {
		return 0, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	n, err := integer(v)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

// decimalMax bounds decimal magnitudes to the 96-bit range test
// frameworks traditionally accept for decimal parameters.
var decimalMax = mustDecimal("79228162514264337593543950335")

func mustDecimal(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ToDecimal converts a float, string or integer value to a decimal.
// Non-finite values and magnitudes beyond decimalMax overflow.
func ToDecimal(v any) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	switch x := v.(type) {
	case nil:
		return d, nil
	case string:
		parsed, _, err := apd.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a decimal", ErrFormat, x)
		}
		if parsed.Form != apd.Finite {
			return nil, fmt.Errorf("%w: %q is not a finite decimal", ErrFormat, x)
		}
		d.Set(parsed)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %v has no decimal form", ErrOverflow, x)
		}
		if _, err := d.SetFloat64(x); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOverflow, err)
		}
	case float32:
		return ToDecimal(float64(x))
	default:
		n, err := integer(v)
		if err != nil {
			return nil, err
		}
		d.SetInt64(n)
	}

	var abs apd.Decimal
	abs.Abs(d)
	if abs.Cmp(decimalMax) > 0 {
		return nil, fmt.Errorf("%w: %s exceeds the decimal range", ErrOverflow, d.String())
	}
	return d, nil
}

// dateLayouts are the layouts ToDateTime accepts, tried in order.
// Strings without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ToDateTime parses a string into a time.Time.
func ToDateTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrFormat, x)
	case time.Time:
		return x, nil
	}
	return time.Time{}, fmt.Errorf("%w: %T is not a date string", ErrInvalidCast, v)
}
