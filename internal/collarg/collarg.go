// Package collarg checks the collection arguments of testify
// assertions against the shape the assertion expects.
package collarg

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/unbound-force/assay/internal/catalog"
)

// Rule IDs reported as diagnostic categories.
const (
	RuleCollectionArg = "collection-arg"
	RuleElemMismatch  = "collection-elem-mismatch"
	RuleItemMismatch  = "collection-item-mismatch"
)

const doc = `check testify collection assertions for impossible arguments

The collarg analyzer reports collection assertions (Len, Contains,
ElementsMatch, Subset, IsIncreasing and friends) whose arguments can
never satisfy them: a non-collection where a collection is expected,
two collections with different element types, or an item that cannot
be an element of the collection. Interface-typed arguments are never
reported.`

// Analyzer is the collarg analyzer.
var Analyzer = &analysis.Analyzer{
	Name:     "collarg",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		name, shape, args := assertion(pass.TypesInfo, call)
		switch shape {
		case catalog.OneCollection:
			checkCollection(pass, name, args[0])
		case catalog.TwoCollection:
			checkPair(pass, name, args[0], args[1])
		case catalog.CollectionPlusItem:
			checkItem(pass, name, args[0], args[1])
		}
	})
	return nil, nil
}

// assertion returns the name, shape and leading non-TestingT arguments
// of a catalogued testify call.
func assertion(info *types.Info, call *ast.CallExpr) (string, catalog.Shape, []ast.Expr) {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil || !catalog.IsAssertionPackage(fn.Pkg().Path()) {
		return "", catalog.ShapeNone, nil
	}
	shape, ok := catalog.Lookup(fn.Name())
	if !ok {
		return "", catalog.ShapeNone, nil
	}
	first := 1
	if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
		first = 0
	}
	need := 2
	if shape == catalog.OneCollection {
		need = 1
	}
	if len(call.Args) < first+need {
		return "", catalog.ShapeNone, nil
	}
	return fn.Name(), shape, call.Args[first : first+need]
}

// opaque reports whether nothing can be proved about t: interfaces and
// type parameters may hold anything, and an untyped nil has no shape.
func opaque(t types.Type) bool {
	if t == nil {
		return true
	}
	if _, ok := t.(*types.TypeParam); ok {
		return true
	}
	switch u := t.Underlying().(type) {
	case *types.Interface:
		return true
	case *types.Basic:
		return u.Kind() == types.UntypedNil || u.Kind() == types.Invalid
	}
	return false
}

// element returns the type an item must have to be found in a value
// of type t: the element of arrays, slices and channels, the key of
// maps, and string for strings. ok is false if t is not a collection.
func element(t types.Type) (types.Type, bool) {
	switch u := t.Underlying().(type) {
	case *types.Array:
		return u.Elem(), true
	case *types.Slice:
		return u.Elem(), true
	case *types.Chan:
		return u.Elem(), true
	case *types.Map:
		return u.Key(), true
	case *types.Pointer:
		if a, ok := u.Elem().Underlying().(*types.Array); ok {
			return a.Elem(), true
		}
	case *types.Basic:
		if u.Info()&types.IsString != 0 {
			return types.Typ[types.String], true
		}
	}
	return nil, false
}

// checkCollection reports expr if it cannot be a collection, and
// returns its element type when one is known.
func checkCollection(pass *analysis.Pass, name string, expr ast.Expr) (types.Type, bool) {
	t := pass.TypesInfo.TypeOf(expr)
	if opaque(t) {
		return nil, false
	}
	elem, ok := element(t)
	if !ok {
		pass.Report(analysis.Diagnostic{
			Pos:      expr.Pos(),
			End:      expr.End(),
			Category: RuleCollectionArg,
			Message: fmt.Sprintf("%s expects a collection, but %s has type %s",
				name, types.ExprString(expr), typeString(pass, t)),
		})
	}
	return elem, ok
}

func checkPair(pass *analysis.Pass, name string, a, b ast.Expr) {
	ea, okA := checkCollection(pass, name, a)
	eb, okB := checkCollection(pass, name, b)
	if !okA || !okB || opaque(ea) || opaque(eb) || types.Identical(ea, eb) {
		return
	}
	if tolerance(name) && numeric(ea) && numeric(eb) {
		return
	}
	pass.Report(analysis.Diagnostic{
		Pos:      b.Pos(),
		End:      b.End(),
		Category: RuleElemMismatch,
		Message: fmt.Sprintf("%s compares %s elements with %s elements",
			name, typeString(pass, ea), typeString(pass, eb)),
	})
}

func checkItem(pass *analysis.Pass, name string, coll, item ast.Expr) {
	elem, ok := checkCollection(pass, name, coll)
	if !ok || opaque(elem) {
		return
	}
	t := pass.TypesInfo.TypeOf(item)
	if opaque(t) || types.AssignableTo(t, elem) {
		return
	}
	pass.Report(analysis.Diagnostic{
		Pos:      item.Pos(),
		End:      item.End(),
		Category: RuleItemMismatch,
		Message: fmt.Sprintf("%s looks for %s of type %s among %s elements",
			name, types.ExprString(item), typeString(pass, t), typeString(pass, elem)),
	})
}

// tolerance reports whether the assertion compares elements
// numerically within a tolerance rather than by equality.
func tolerance(name string) bool {
	switch name {
	case "InDeltaSlice", "InDeltaSlicef", "InEpsilonSlice", "InEpsilonSlicef":
		return true
	}
	return false
}

func numeric(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsNumeric != 0
}

func typeString(pass *analysis.Pass, t types.Type) string {
	return types.TypeString(t, func(p *types.Package) string {
		if p == pass.Pkg {
			return ""
		}
		return p.Name()
	})
}
