// Package casearg checks the arguments of paramtest cases against the
// parameters of the test function they are bound to.
package casearg

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/unbound-force/assay/internal/compat"
	"github.com/unbound-force/assay/internal/constval"
	"github.com/unbound-force/assay/internal/rtype"
	"github.com/unbound-force/assay/internal/typedesc"
)

// PkgPath is the import path of the parameterized-test package.
const PkgPath = "github.com/unbound-force/assay/paramtest"

// Rule IDs reported as diagnostic categories.
const (
	RuleArgType     = "case-arg-type"
	RuleArgCount    = "case-arg-count"
	RuleReturnsType = "case-returns-type"
	RuleReturnsVoid = "case-returns-void"
	RuleValuesType  = "values-arg-type"
	RuleValuesCount = "values-count"
)

// Binding policies, matching the paramtest runtime.
var (
	CaseFlags    = compat.Flags{AllowImplicit: true, AllowEnumUnderlying: true}
	ReturnsFlags = compat.Flags{AllowImplicit: true}
	ValuesFlags  = compat.Flags{AllowEnumUnderlying: true}
)

const doc = `check paramtest case arguments against test function parameters

The casearg analyzer reports paramtest.Case, Returns and Values
arguments that the paramtest runtime would fail to convert to the
declared parameter or result type, and cases whose argument count does
not match the test function.`

// Options configure the analyzer.
type Options struct {
	// NonConstant selects how non-constant arguments are judged.
	NonConstant compat.NonConstantMode

	// Assemblies maps packages to modules. Nil uses the running
	// binary's build info.
	Assemblies typedesc.AssemblyLocator

	// Types resolves converter targets. Nil uses rtype.Default.
	Types *rtype.Registry
}

// Analyzer is the casearg analyzer with default options.
var Analyzer = New(Options{})

// New returns a casearg analyzer configured by opts.
func New(opts Options) *analysis.Analyzer {
	c := &checker{
		oracle: &compat.Oracle{Types: opts.Types, NonConstant: opts.NonConstant},
		loc:    opts.Assemblies,
	}
	return &analysis.Analyzer{
		Name:     "casearg",
		Doc:      doc,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run:      c.run,
	}
}

type checker struct {
	oracle *compat.Oracle
	loc    typedesc.AssemblyLocator
}

func (c *checker) run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		switch paramtestFunc(pass.TypesInfo, call) {
		case "Run":
			c.checkRun(pass, call)
		case "RunValues":
			c.checkRunValues(pass, call)
		}
	})
	return nil, nil
}

// paramtestFunc returns the name of the paramtest function or method
// call invokes, or "".
func paramtestFunc(info *types.Info, call *ast.CallExpr) string {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != PkgPath {
		return ""
	}
	return fn.Name()
}

// testSignature returns the signature of the test function argument
// if its first parameter is *testing.T.
func testSignature(info *types.Info, fn ast.Expr) *types.Signature {
	t := info.TypeOf(fn)
	if t == nil {
		return nil
	}
	sig, ok := t.Underlying().(*types.Signature)
	if !ok || sig.Params().Len() == 0 {
		return nil
	}
	ptr, ok := sig.Params().At(0).Type().(*types.Pointer)
	if !ok {
		return nil
	}
	named, ok := ptr.Elem().(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return nil
	}
	if named.Obj().Pkg().Path() != "testing" || named.Obj().Name() != "T" {
		return nil
	}
	return sig
}

// caseExpr is a Case(...) call with its optional Returns argument.
type caseExpr struct {
	call    *ast.CallExpr
	returns ast.Expr
}

// unwrapCase follows a Case(...).Returns(...).Named(...) chain down to
// the Case call.
func unwrapCase(info *types.Info, e ast.Expr) (caseExpr, bool) {
	var ce caseExpr
	for {
		call, ok := ast.Unparen(e).(*ast.CallExpr)
		if !ok {
			return ce, false
		}
		switch paramtestFunc(info, call) {
		case "Case":
			ce.call = call
			return ce, true
		case "Returns":
			if ce.returns == nil && len(call.Args) == 1 {
				ce.returns = call.Args[0]
			}
		case "Named":
		default:
			return ce, false
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return ce, false
		}
		e = sel.X
	}
}

func (c *checker) checkRun(pass *analysis.Pass, call *ast.CallExpr) {
	if len(call.Args) < 2 || call.Ellipsis.IsValid() {
		return
	}
	sig := testSignature(pass.TypesInfo, call.Args[1])
	if sig == nil {
		return
	}
	for _, e := range call.Args[2:] {
		ce, ok := unwrapCase(pass.TypesInfo, e)
		if !ok {
			continue
		}
		c.checkCase(pass, sig, ce)
	}
}

func (c *checker) checkCase(pass *analysis.Pass, sig *types.Signature, ce caseExpr) {
	params := sig.Params()
	n := params.Len() - 1
	args := ce.call.Args

	switch {
	case ce.call.Ellipsis.IsValid():
		args = nil
	case sig.Variadic() && len(args) < n-1:
		pass.Report(analysis.Diagnostic{
			Pos:      ce.call.Pos(),
			End:      ce.call.End(),
			Category: RuleArgCount,
			Message:  fmt.Sprintf("Case has %d arguments, test function needs at least %d", len(args), n-1),
		})
		args = nil
	case !sig.Variadic() && len(args) != n:
		pass.Report(analysis.Diagnostic{
			Pos:      ce.call.Pos(),
			End:      ce.call.End(),
			Category: RuleArgCount,
			Message:  fmt.Sprintf("Case has %d arguments, test function takes %d", len(args), n),
		})
		args = nil
	}

	for i, arg := range args {
		param := params.At(min(i+1, params.Len()-1))
		target := param.Type()
		if sig.Variadic() && i+1 >= params.Len()-1 {
			target = target.(*types.Slice).Elem()
		}
		c.check(pass, arg, param.Name(), target, CaseFlags, RuleArgType)
	}

	if ce.returns == nil {
		return
	}
	if sig.Results().Len() != 1 {
		pass.Report(analysis.Diagnostic{
			Pos:      ce.returns.Pos(),
			End:      ce.returns.End(),
			Category: RuleReturnsVoid,
			Message:  fmt.Sprintf("Returns needs a test function with one result, it has %d", sig.Results().Len()),
		})
		return
	}
	c.check(pass, ce.returns, "result", sig.Results().At(0).Type(), ReturnsFlags, RuleReturnsType)
}

func (c *checker) checkRunValues(pass *analysis.Pass, call *ast.CallExpr) {
	if len(call.Args) < 2 || call.Ellipsis.IsValid() {
		return
	}
	sig := testSignature(pass.TypesInfo, call.Args[1])
	if sig == nil || sig.Variadic() {
		return
	}
	sources := call.Args[2:]
	if n := sig.Params().Len() - 1; len(sources) != n {
		pass.Report(analysis.Diagnostic{
			Pos:      call.Pos(),
			End:      call.End(),
			Category: RuleValuesCount,
			Message:  fmt.Sprintf("RunValues has %d value sources, test function takes %d parameters", len(sources), n),
		})
		return
	}
	for i, src := range sources {
		vals, ok := ast.Unparen(src).(*ast.CallExpr)
		if !ok || paramtestFunc(pass.TypesInfo, vals) != "Values" || vals.Ellipsis.IsValid() {
			continue
		}
		param := sig.Params().At(i + 1)
		for _, v := range vals.Args {
			c.check(pass, v, param.Name(), param.Type(), ValuesFlags, RuleValuesType)
		}
	}
}

// check asks the oracle whether expr binds to target and reports the
// rule when it does not.
func (c *checker) check(pass *analysis.Pass, expr ast.Expr, name string, target types.Type, flags compat.Flags, rule string) {
	arg, ok := constval.Evaluate(pass.TypesInfo, expr, c.loc)
	if !ok {
		return
	}
	d := c.oracle.Decide(arg, typedesc.FromGo(target, c.loc), flags)
	if d.Assignable {
		return
	}

	if name == "" || name == "_" {
		name = "parameter"
	}
	msg := fmt.Sprintf("%s does not bind to %s of type %s",
		types.ExprString(expr), name, types.TypeString(target, qualifier(pass.Pkg)))
	if d.Err != nil {
		msg += ": " + d.Err.Error()
	}
	pass.Report(analysis.Diagnostic{
		Pos:      expr.Pos(),
		End:      expr.End(),
		Category: rule,
		Message:  msg,
	})
}

// qualifier prints other packages by name, as they appear in source.
func qualifier(self *types.Package) types.Qualifier {
	return func(p *types.Package) string {
		if p == self {
			return ""
		}
		return p.Name()
	}
}
