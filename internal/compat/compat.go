// Package compat decides whether a parameterized-test argument can bind
// to a declared parameter type, predicting from static facts alone the
// coercion the paramtest runtime performs when the test runs.
//
// The oracle fails closed: whenever it cannot prove that a binding
// succeeds it answers false. It never returns an error and never
// panics past its boundary.
package compat

import (
	"fmt"
	"strings"

	"github.com/unbound-force/assay/internal/constval"
	"github.com/unbound-force/assay/internal/convert"
	"github.com/unbound-force/assay/internal/rtype"
	"github.com/unbound-force/assay/internal/typedesc"
)

// Flags are the per-call-site conversion policies.
type Flags struct {
	// AllowImplicit admits built-in lossless conversions.
	AllowImplicit bool

	// AllowEnumUnderlying compares enum types by their underlying
	// integer type, on both sides.
	AllowEnumUnderlying bool
}

// NonConstantMode selects how arguments that are not compile-time
// constants reach the narrowing and converter steps.
type NonConstantMode uint8

const (
	// NonConstantLenient passes the nil placeholder into the
	// conversions. Narrowing treats nil as zero, so a non-constant
	// argument of a narrowable type is accepted.
	NonConstantLenient NonConstantMode = iota

	// NonConstantStrict stops before narrowing: a non-constant
	// argument is only accepted by assignability or implicit
	// conversion.
	NonConstantStrict
)

func (m NonConstantMode) String() string {
	switch m {
	case NonConstantLenient:
		return "lenient"
	case NonConstantStrict:
		return "strict"
	}
	return fmt.Sprintf("NonConstantMode(%d)", uint8(m))
}

// ParseNonConstantMode parses "lenient" or "strict".
func ParseNonConstantMode(s string) (NonConstantMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return NonConstantLenient, nil
	case "strict":
		return NonConstantStrict, nil
	}
	return 0, fmt.Errorf("invalid non-constant mode %q: must be 'lenient' or 'strict'", s)
}

// Step identifies the rule that settled a decision.
type Step string

// Decision steps, in evaluation order.
const (
	StepNull          Step = "null"
	StepIndeterminate Step = "indeterminate"
	StepAssignable    Step = "assignable"
	StepImplicit      Step = "implicit"
	StepNonConstant   Step = "non_constant"
	StepNarrowing     Step = "narrowing"
	StepConverter     Step = "converter"
	StepNoConversion  Step = "no_conversion"
	StepPanic         Step = "panic"
)

// Decision is the oracle's answer with the step that produced it and,
// for failed conversions, the conversion error.
type Decision struct {
	Assignable bool
	Step       Step
	Err        error
}

// Oracle is the compatibility decision function. The zero value uses
// the default type and converter registries. An Oracle is immutable
// and safe for concurrent use.
type Oracle struct {
	Types       *rtype.Registry
	Converters  *convert.Registry
	NonConstant NonConstantMode
}

// New returns an oracle over the default registries.
func New(mode NonConstantMode) *Oracle {
	return &Oracle{
		Types:       rtype.Default(),
		Converters:  convert.Default(),
		NonConstant: mode,
	}
}

var lenient = &Oracle{}

// CanAssign reports whether arg binds to target under flags, using a
// lenient oracle over the default registries.
func CanAssign(arg constval.Argument, target typedesc.Type, flags Flags) bool {
	return lenient.CanAssign(arg, target, flags)
}

// CanAssign reports whether arg binds to target under flags.
func (o *Oracle) CanAssign(arg constval.Argument, target typedesc.Type, flags Flags) bool {
	return o.Decide(arg, target, flags).Assignable
}

// Decide runs the decision procedure. The steps are ordered from most
// to least precise; the first conclusive one wins.
func (o *Oracle) Decide(arg constval.Argument, target typedesc.Type, flags Flags) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = Decision{Step: StepPanic, Err: fmt.Errorf("conversion panicked: %v", r)}
		}
	}()

	if target == nil {
		return Decision{Step: StepIndeterminate}
	}
	if arg.IsNull() {
		return Decision{
			Assignable: target.IsReference() || typedesc.IsNullable(target),
			Step:       StepNull,
		}
	}

	effTarget, effArg := target, arg.Type
	if typedesc.IsNullable(effTarget) {
		effTarget = effTarget.Elem()
		if typedesc.IsNullable(effArg) {
			effArg = effArg.Elem()
		}
	}
	if flags.AllowEnumUnderlying {
		if typedesc.IsEnum(effTarget) {
			effTarget = effTarget.EnumUnderlying()
		}
		if typedesc.IsEnum(effArg) {
			effArg = effArg.EnumUnderlying()
		}
	}
	if effTarget == nil || effArg == nil {
		return Decision{Step: StepIndeterminate}
	}

	if effArg.AssignableTo(effTarget) {
		return Decision{Assignable: true, Step: StepAssignable}
	}
	if flags.AllowImplicit && effArg.ImplicitlyConvertibleTo(effTarget) {
		return Decision{Assignable: true, Step: StepImplicit}
	}
	if !arg.Constant && o.NonConstant == NonConstantStrict {
		return Decision{Step: StepNonConstant}
	}

	if _, matched, err := Narrow(effTarget.Kind(), effArg.Kind(), arg.Value); matched {
		return Decision{Assignable: err == nil, Step: StepNarrowing, Err: err}
	}
	return o.convertFallback(effTarget, effArg, arg.Value)
}

// convertFallback resolves both types to runtime types and asks the
// target's converter to convert the value.
func (o *Oracle) convertFallback(target, arg typedesc.Type, v any) Decision {
	tt, ok := o.types().Resolve(target)
	if !ok {
		return Decision{Step: StepNoConversion}
	}
	at, ok := o.types().Resolve(arg)
	if !ok {
		return Decision{Step: StepNoConversion}
	}
	c := o.converters().Lookup(tt)
	if c == nil || !c.CanConvertFrom(at) {
		return Decision{Step: StepNoConversion}
	}
	if _, err := c.ConvertFrom(v); err != nil {
		return Decision{Step: StepConverter, Err: err}
	}
	return Decision{Assignable: true, Step: StepConverter}
}

func (o *Oracle) types() *rtype.Registry {
	if o.Types == nil {
		return rtype.Default()
	}
	return o.Types
}

func (o *Oracle) converters() *convert.Registry {
	if o.Converters == nil {
		return convert.Default()
	}
	return o.Converters
}

// Narrow applies the closed table of narrowing allowances. It reports
// matched=false when no rule covers the (target, arg) pair; otherwise
// it performs the conversion and returns its result or error. The
// table mirrors the runtime's literal coercions and must not grow
// beyond them:
//
//	int16, uint8, int64, int8, float64 <- int
//	decimal                            <- float64, string, int
//	datetime                           <- string
func Narrow(target, arg typedesc.Kind, v any) (out any, matched bool, err error) {
	switch target {
	case typedesc.KindInt16:
		if arg == typedesc.KindInt {
			n, err := convert.ToInt16(v)
			return n, true, err
		}
	case typedesc.KindUint8:
		if arg == typedesc.KindInt {
			n, err := convert.ToUint8(v)
			return n, true, err
		}
	case typedesc.KindInt64:
		if arg == typedesc.KindInt {
			n, err := convert.ToInt64(v)
			return n, true, err
		}
	case typedesc.KindInt8:
		if arg == typedesc.KindInt {
			n, err := convert.ToInt8(v)
			return n, true, err
		}
	case typedesc.KindFloat64:
		if arg == typedesc.KindInt {
			f, err := convert.ToFloat64(v)
			return f, true, err
		}
	case typedesc.KindDecimal:
		switch arg {
		case typedesc.KindFloat64, typedesc.KindString, typedesc.KindInt:
			dec, err := convert.ToDecimal(v)
			if err != nil {
				return nil, true, err
			}
			return *dec, true, nil
		}
	case typedesc.KindDateTime:
		if arg == typedesc.KindString {
			t, err := convert.ToDateTime(v)
			return t, true, err
		}
	case typedesc.KindNone, typedesc.KindInt, typedesc.KindString,
		typedesc.KindNullable, typedesc.KindEnum:
	}
	return nil, false, nil
}
