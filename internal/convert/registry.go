package convert

import (
	"encoding"
	"fmt"
	"math/big"
	"net/netip"
	"net/url"
	"reflect"
	"sync"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// Converter converts values of other types into one target type. It
// is the last-resort conversion path, used when no direct, widening
// or narrowing conversion applies.
type Converter interface {
	// CanConvertFrom reports whether values of src are accepted.
	CanConvertFrom(src reflect.Type) bool

	// ConvertFrom converts v. Failures wrap ErrFormat, ErrOverflow
	// or ErrInvalidCast.
	ConvertFrom(v any) (any, error)
}

// stringConverter parses strings with a typed parse function.
type stringConverter[T any] struct {
	parse func(string) (T, error)
}

// StringConverter returns a Converter that accepts string values and
// parses them with parse. Parse errors are reported as ErrFormat.
func StringConverter[T any](parse func(string) (T, error)) Converter {
	return stringConverter[T]{parse: parse}
}

func (c stringConverter[T]) CanConvertFrom(src reflect.Type) bool {
	return src != nil && src.Kind() == reflect.String
}

func (c stringConverter[T]) ConvertFrom(v any) (any, error) {
	s, ok := stringValue(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a string", ErrInvalidCast, v)
	}
	out, err := c.parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return out, nil
}

// stringValue accepts string and any defined type with a string
// underlying type.
func stringValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// textConverter converts strings into any type whose pointer
// implements encoding.TextUnmarshaler.
type textConverter struct {
	typ reflect.Type
}

func (c textConverter) CanConvertFrom(src reflect.Type) bool {
	return src != nil && src.Kind() == reflect.String
}

func (c textConverter) ConvertFrom(v any) (any, error) {
	s, ok := stringValue(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a string", ErrInvalidCast, v)
	}
	ptr := reflect.New(c.typ)
	u := ptr.Interface().(encoding.TextUnmarshaler)
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return ptr.Elem().Interface(), nil
}

// decimalConverter widens the decimal narrowing rule to every numeric
// kind and to strings.
type decimalConverter struct{}

func (decimalConverter) CanConvertFrom(src reflect.Type) bool {
	if src == nil {
		return false
	}
	switch src.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (decimalConverter) ConvertFrom(v any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil has no decimal form", ErrInvalidCast)
	}
	d, err := ToDecimal(v)
	if err != nil {
		return nil, err
	}
	return *d, nil
}

// Registry maps target runtime types to converters. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	byType map[reflect.Type]Converter
}

// NewRegistry builds a registry from explicit registrations. Types
// without a registration still resolve to a TextUnmarshaler-based
// converter when their pointer type implements it.
func NewRegistry(regs map[reflect.Type]Converter) *Registry {
	r := &Registry{byType: make(map[reflect.Type]Converter, len(regs))}
	for t, c := range regs {
		r.byType[t] = c
	}
	return r
}

// Lookup returns the converter for target, or nil when none exists.
func (r *Registry) Lookup(target reflect.Type) Converter {
	if r == nil || target == nil {
		return nil
	}
	if c, ok := r.byType[target]; ok {
		return c
	}
	if target.Kind() != reflect.Pointer && reflect.PointerTo(target).Implements(textUnmarshalerType) {
		return textConverter{typ: target}
	}
	return nil
}

// Convert converts v to target through the registered converter.
func (r *Registry) Convert(target reflect.Type, v any) (any, error) {
	c := r.Lookup(target)
	if c == nil {
		return nil, fmt.Errorf("%w: no converter for %v", ErrInvalidCast, target)
	}
	if !c.CanConvertFrom(reflect.TypeOf(v)) {
		return nil, fmt.Errorf("%w: %v does not convert from %T", ErrInvalidCast, target, v)
	}
	return c.ConvertFrom(v)
}

// Builtins returns the registrations of the default registry.
func Builtins() map[reflect.Type]Converter {
	return map[reflect.Type]Converter{
		reflect.TypeFor[time.Duration](): StringConverter(time.ParseDuration),
		reflect.TypeFor[uuid.UUID]():     StringConverter(uuid.Parse),
		reflect.TypeFor[url.URL](): StringConverter(func(s string) (url.URL, error) {
			u, err := url.Parse(s)
			if err != nil {
				return url.URL{}, err
			}
			return *u, nil
		}),
		reflect.TypeFor[netip.Addr]():   StringConverter(netip.ParseAddr),
		reflect.TypeFor[netip.Prefix](): StringConverter(netip.ParsePrefix),
		reflect.TypeFor[big.Int]():      textConverter{typ: reflect.TypeFor[big.Int]()},
		reflect.TypeFor[big.Float]():    textConverter{typ: reflect.TypeFor[big.Float]()},
		reflect.TypeFor[apd.Decimal]():  decimalConverter{},
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(Builtins())
})

// Default returns the shared registry of built-in converters.
func Default() *Registry {
	return defaultRegistry()
}
