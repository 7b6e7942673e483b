// Package rtype resolves type descriptors to concrete runtime types.
//
// Go cannot load a type by name, so resolution goes through a Registry
// of reflect types known to the running binary. Lookup is two-phase:
// first by assembly-qualified name (qualified name plus the hosting
// module and version), then by qualified name alone. The second phase
// tolerates a type whose analyzed module version differs from the one
// linked into the binary.
//
// Type arguments are not part of the qualified name. Instantiated
// generic types therefore never resolve, and an open generic type may
// resolve to a same-named non-generic registration.
package rtype

import (
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/unbound-force/assay/internal/convert"
	"github.com/unbound-force/assay/internal/typedesc"
)

// QualifiedName builds the dot-joined name of t: its namespace chain
// from outermost to innermost followed by its simple name. A missing
// name or namespace is taken from t's fallback type. It returns ""
// when no name can be found.
func QualifiedName(t typedesc.Type) string {
	if t == nil {
		return ""
	}
	ns, name := t.Namespace(), t.Name()
	if fb := t.Fallback(); fb != nil && (len(ns) == 0 || name == "") {
		if len(ns) == 0 {
			ns = fb.Namespace()
		}
		if name == "" {
			name = fb.Name()
		}
	}
	if name == "" {
		return ""
	}

	parts := slices.Clone(ns)
	slices.Reverse(parts)
	parts = append(parts, name)
	return strings.Join(parts, ".")
}

// AssemblyQualifiedName is QualifiedName plus the hosting module, in
// the form "pkg.Name, module@version".
func AssemblyQualifiedName(t typedesc.Type) string {
	q := QualifiedName(t)
	if q == "" {
		return ""
	}
	return q + ", " + t.Assembly().String()
}

// Registry is the set of runtime types the resolver can produce. It
// is immutable after construction and safe for concurrent use.
type Registry struct {
	byAssembly map[string]reflect.Type
	byName     map[string]reflect.Type
}

// NewRegistry registers each of rts under both of its keys. Module
// identities come from loc; a nil loc uses the running binary's
// build info.
func NewRegistry(loc typedesc.AssemblyLocator, rts ...reflect.Type) *Registry {
	if loc == nil {
		loc = typedesc.BuildInfoIndex()
	}
	r := &Registry{
		byAssembly: make(map[string]reflect.Type, len(rts)),
		byName:     make(map[string]reflect.Type, len(rts)),
	}
	for _, rt := range rts {
		q := reflectQualifiedName(rt)
		if q == "" {
			continue
		}
		asm := loc.Locate(rt.PkgPath())
		r.byAssembly[q+", "+asm.String()] = rt
		r.byName[q] = rt
	}
	return r
}

func reflectQualifiedName(rt reflect.Type) string {
	if rt == nil || rt.Name() == "" {
		return ""
	}
	if rt.PkgPath() == "" {
		return rt.Name()
	}
	return rt.PkgPath() + "." + rt.Name()
}

// Resolve maps t to a runtime type. A false result is a normal
// outcome meaning the type is not loadable.
func (r *Registry) Resolve(t typedesc.Type) (reflect.Type, bool) {
	if r == nil {
		return nil, false
	}
	q := QualifiedName(t)
	if q == "" {
		return nil, false
	}
	if rt, ok := r.byAssembly[q+", "+t.Assembly().String()]; ok {
		return rt, true
	}
	rt, ok := r.byName[q]
	return rt, ok
}

// Len reports the number of registered types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byName)
}

// KnownTypes returns the runtime types registered by default: the
// predeclared basic types, the special-kind types, and every target of
// the built-in converters.
func KnownTypes() []reflect.Type {
	rts := []reflect.Type{
		reflect.TypeFor[bool](),
		reflect.TypeFor[int](),
		reflect.TypeFor[int8](),
		reflect.TypeFor[int16](),
		reflect.TypeFor[int32](),
		reflect.TypeFor[int64](),
		reflect.TypeFor[uint](),
		reflect.TypeFor[uint8](),
		reflect.TypeFor[uint16](),
		reflect.TypeFor[uint32](),
		reflect.TypeFor[uint64](),
		reflect.TypeFor[float32](),
		reflect.TypeFor[float64](),
		reflect.TypeFor[string](),
		reflect.TypeFor[time.Time](),
	}
	for rt := range convert.Builtins() {
		rts = append(rts, rt)
	}
	return rts
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(nil, KnownTypes()...)
})

// Default returns the shared registry of KnownTypes.
func Default() *Registry {
	return defaultRegistry()
}
