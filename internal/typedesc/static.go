package typedesc

import (
	"slices"

	"golang.org/x/mod/module"
)

// Static is a Type described entirely by its fields. It stands in for
// a live type system wherever one is unavailable, for example when
// exercising the oracle in isolation. Identity is pointer identity:
// build each descriptor once and share it.
type Static struct {
	TypeName string
	TypeKind Kind

	// Element is T when TypeKind is KindNullable.
	Element Type

	// Underlying is the integer basic type when TypeKind is KindEnum.
	Underlying Type

	Reference bool

	// NS is the namespace chain, innermost first.
	NS     []string
	Module module.Version
	Base   Type

	// Supertypes lists the types, besides itself, that this type is
	// assignable to.
	Supertypes []Type

	// Widens lists the types this type implicitly converts to.
	Widens []Type
}

func (s *Static) Name() string             { return s.TypeName }
func (s *Static) Kind() Kind               { return s.TypeKind }
func (s *Static) IsReference() bool        { return s.Reference }
func (s *Static) Namespace() []string      { return slices.Clone(s.NS) }
func (s *Static) Assembly() module.Version { return s.Module }
func (s *Static) Fallback() Type           { return s.Base }

func (s *Static) Elem() Type {
	if s.TypeKind != KindNullable {
		return nil
	}
	return s.Element
}

func (s *Static) EnumUnderlying() Type {
	if s.TypeKind != KindEnum {
		return nil
	}
	return s.Underlying
}

func (s *Static) AssignableTo(target Type) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Static); ok && t == s {
		return true
	}
	return slices.Contains(s.Supertypes, target)
}

func (s *Static) ImplicitlyConvertibleTo(target Type) bool {
	return target != nil && slices.Contains(s.Widens, target)
}

func (s *Static) String() string {
	if s.TypeName != "" {
		return s.TypeName
	}
	return "<" + s.TypeKind.String() + ">"
}
