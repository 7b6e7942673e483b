// Package samefix reports testify pointer-identity assertions applied
// to values that cannot be pointers, and rewrites them to the
// equivalent value-equality assertion.
package samefix

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/unbound-force/assay/internal/catalog"
)

// Rule is the rule ID reported as the diagnostic category.
const Rule = "same-on-value"

const doc = `report Same and NotSame assertions on non-pointer values

testify's Same and NotSame compare pointer identity and always fail
(Same) or always pass (NotSame) when an argument is not a pointer. The
suggested fix replaces them with Equal and NotEqual.`

// Analyzer is the samefix analyzer.
var Analyzer = &analysis.Analyzer{
	Name:     "samefix",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	for cur := range insp.Root().Preorder((*ast.CallExpr)(nil)) {
		call := cur.Node().(*ast.CallExpr)
		name, args := sameCall(pass.TypesInfo, call)
		if name == "" {
			continue
		}
		for _, arg := range args {
			t := pass.TypesInfo.TypeOf(arg)
			if !definitelyNotPointer(t) {
				continue
			}
			file := enclosingFile(cur)
			diag := analysis.Diagnostic{
				Pos:      arg.Pos(),
				End:      arg.End(),
				Category: Rule,
				Message: fmt.Sprintf("%s compares pointers, but %s has type %s",
					name, types.ExprString(arg), types.TypeString(t, qualifier(pass.Pkg))),
			}
			if fix, ok := Rewrite(file, arg.Pos(), arg.End()); ok {
				diag.SuggestedFixes = []analysis.SuggestedFix{fix}
			}
			pass.Report(diag)
			break
		}
	}
	return nil, nil
}

// sameCall returns the assertion name and its expected and actual
// arguments when call is a testify same-reference assertion.
func sameCall(info *types.Info, call *ast.CallExpr) (string, []ast.Expr) {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil || !catalog.IsAssertionPackage(fn.Pkg().Path()) {
		return "", nil
	}
	if _, ok := catalog.EqualCounterpart(fn.Name()); !ok {
		return "", nil
	}

	// Package functions take the TestingT first; Assertions methods
	// do not.
	first := 1
	if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
		first = 0
	}
	if len(call.Args) < first+2 {
		return "", nil
	}
	return fn.Name(), call.Args[first : first+2]
}

// definitelyNotPointer reports whether no value of t can be a pointer.
// Interfaces and type parameters may hold one, and the untyped nil is
// left alone.
func definitelyNotPointer(t types.Type) bool {
	if t == nil {
		return false
	}
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}
	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Interface:
		return false
	case *types.Basic:
		return u.Kind() != types.UntypedNil && u.Kind() != types.UnsafePointer && u.Kind() != types.Invalid
	}
	return true
}

func enclosingFile(cur inspector.Cursor) *ast.File {
	for c := range cur.Enclosing((*ast.File)(nil)) {
		return c.Node().(*ast.File)
	}
	return nil
}

// Rewrite returns the fix for a diagnostic reported at [pos, end) in
// file. The range must be exactly one argument of one call whose
// callee is a selector naming a same-reference assertion; the fix
// replaces that selector's name with its equal-value counterpart. Any
// other shape yields no fix.
func Rewrite(file *ast.File, pos, end token.Pos) (analysis.SuggestedFix, bool) {
	if file == nil {
		return analysis.SuggestedFix{}, false
	}
	path, exact := astutil.PathEnclosingInterval(file, pos, end)
	if !exact || len(path) < 2 {
		return analysis.SuggestedFix{}, false
	}
	arg, ok := path[0].(ast.Expr)
	if !ok || arg.Pos() != pos || arg.End() != end {
		return analysis.SuggestedFix{}, false
	}
	call, ok := path[1].(*ast.CallExpr)
	if !ok || !slices.Contains(call.Args, arg) {
		return analysis.SuggestedFix{}, false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return analysis.SuggestedFix{}, false
	}
	eq, ok := catalog.EqualCounterpart(sel.Sel.Name)
	if !ok {
		return analysis.SuggestedFix{}, false
	}
	return analysis.SuggestedFix{
		Message: fmt.Sprintf("Replace %s with %s", sel.Sel.Name, eq),
		TextEdits: []analysis.TextEdit{{
			Pos:     sel.Sel.Pos(),
			End:     sel.Sel.End(),
			NewText: []byte(eq),
		}},
	}, true
}

func qualifier(self *types.Package) types.Qualifier {
	return func(p *types.Package) string {
		if p == self {
			return ""
		}
		return p.Name()
	}
}
