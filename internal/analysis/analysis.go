// Package analysis is the assay driver. It runs the analyzer set over
// loaded packages and turns their diagnostics into findings.
package analysis

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	charmlog "github.com/charmbracelet/log"
	goanalysis "golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/unbound-force/assay/internal/casearg"
	"github.com/unbound-force/assay/internal/collarg"
	"github.com/unbound-force/assay/internal/compat"
	"github.com/unbound-force/assay/internal/loader"
	"github.com/unbound-force/assay/internal/samefix"
	"github.com/unbound-force/assay/internal/taxonomy"
	"github.com/unbound-force/assay/internal/typedesc"
)

// Options configures the analysis behavior.
type Options struct {
	// Context is checked between packages. Nil means
	// context.Background().
	Context context.Context

	// Logger receives progress at debug level. Nil discards it.
	Logger *charmlog.Logger

	// Disabled lists rules whose findings are dropped.
	Disabled []taxonomy.Rule

	// NonConstant selects how casearg judges non-constant arguments.
	NonConstant compat.NonConstantMode

	// Modules maps packages to modules. Nil builds an index from the
	// packages being analyzed.
	Modules typedesc.AssemblyLocator
}

// Analyzers returns the analyzer set configured by opts.
func Analyzers(opts Options) []*goanalysis.Analyzer {
	return []*goanalysis.Analyzer{
		casearg.New(casearg.Options{
			NonConstant: opts.NonConstant,
			Assemblies:  opts.Modules,
		}),
		samefix.Analyzer,
		collarg.Analyzer,
	}
}

// Analyze runs the analyzer set over pkgs and returns the findings
// sorted by position and rule, without duplicates.
func Analyze(pkgs []*packages.Package, opts Options) ([]taxonomy.Finding, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = charmlog.New(io.Discard)
	}
	if opts.Modules == nil {
		opts.Modules = loader.ModuleIndex(pkgs)
	}

	analyzers := Analyzers(opts)
	for _, a := range analyzers {
		if err := goanalysis.Validate([]*goanalysis.Analyzer{a}); err != nil {
			return nil, fmt.Errorf("invalid analyzer %s: %w", a.Name, err)
		}
	}

	var findings []taxonomy.Finding
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if pkg.Types == nil || pkg.TypesInfo == nil {
			logger.Warn("skipping package without type information", "pkg", pkg.ID)
			continue
		}
		logger.Debug("analyzing package", "pkg", pkg.ID, "files", len(pkg.Syntax))

		r := &runner{pkg: pkg, results: make(map[*goanalysis.Analyzer]any)}
		for _, a := range analyzers {
			before := len(r.findings)
			if _, err := r.exec(a); err != nil {
				return nil, fmt.Errorf("analyzer %s on %s: %w", a.Name, pkg.ID, err)
			}
			logger.Debug("analyzer finished", "analyzer", a.Name, "pkg", pkg.ID,
				"findings", len(r.findings)-before)
		}
		findings = append(findings, r.findings...)
	}

	findings = slices.DeleteFunc(findings, func(f taxonomy.Finding) bool {
		return slices.Contains(opts.Disabled, f.Rule)
	})
	Sort(findings)
	return slices.CompactFunc(findings, func(a, b taxonomy.Finding) bool {
		return a.ID == b.ID
	}), nil
}

// LoadAndAnalyze loads the packages matched by patterns and analyzes
// them.
func LoadAndAnalyze(dir string, patterns []string, opts Options) ([]taxonomy.Finding, *loader.Result, error) {
	result, err := loader.Load(dir, patterns...)
	if err != nil {
		return nil, nil, err
	}
	if opts.Logger != nil {
		opts.Logger.Debug("loaded packages", "count", len(result.Pkgs))
	}
	if opts.Modules == nil {
		opts.Modules = result.Modules
	}
	findings, err := Analyze(result.Pkgs, opts)
	if err != nil {
		return nil, nil, err
	}
	return findings, result, nil
}

// Sort orders findings by file, line, column, rule and message.
func Sort(findings []taxonomy.Finding) {
	slices.SortFunc(findings, func(a, b taxonomy.Finding) int {
		return cmp.Or(
			cmp.Compare(a.Location.File, b.Location.File),
			cmp.Compare(a.Location.Line, b.Location.Line),
			cmp.Compare(a.Location.Column, b.Location.Column),
			cmp.Compare(a.Rule, b.Rule),
			cmp.Compare(a.Message, b.Message),
		)
	})
}

// runner executes analyzers over one package, running each required
// analyzer once.
type runner struct {
	pkg      *packages.Package
	results  map[*goanalysis.Analyzer]any
	findings []taxonomy.Finding
}

func (r *runner) exec(a *goanalysis.Analyzer) (any, error) {
	if res, ok := r.results[a]; ok {
		return res, nil
	}
	if len(a.FactTypes) > 0 {
		return nil, fmt.Errorf("analyzer %s uses facts, which this driver does not support", a.Name)
	}

	resultOf := make(map[*goanalysis.Analyzer]any, len(a.Requires))
	for _, req := range a.Requires {
		res, err := r.exec(req)
		if err != nil {
			return nil, err
		}
		resultOf[req] = res
	}

	pkg := r.pkg
	pass := &goanalysis.Pass{
		Analyzer:     a,
		Fset:         pkg.Fset,
		Files:        pkg.Syntax,
		OtherFiles:   pkg.OtherFiles,
		IgnoredFiles: pkg.IgnoredFiles,
		Pkg:          pkg.Types,
		TypesInfo:    pkg.TypesInfo,
		TypesSizes:   pkg.TypesSizes,
		TypeErrors:   pkg.TypeErrors,
		ResultOf:     resultOf,
		ReadFile:     os.ReadFile,
		Report: func(d goanalysis.Diagnostic) {
			r.findings = append(r.findings, toFinding(pkg, a, d))
		},
	}
	if m := pkg.Module; m != nil {
		pass.Module = &goanalysis.Module{Path: m.Path, Version: m.Version, GoVersion: m.GoVersion}
	}

	res, err := a.Run(pass)
	if err != nil {
		return nil, err
	}
	r.results[a] = res
	return res, nil
}

// toFinding converts a diagnostic into a finding. The diagnostic's
// category is its rule ID; an uncategorized diagnostic is filed under
// the analyzer name.
func toFinding(pkg *packages.Package, a *goanalysis.Analyzer, d goanalysis.Diagnostic) taxonomy.Finding {
	rule := taxonomy.Rule(d.Category)
	if rule == "" {
		rule = taxonomy.Rule(a.Name)
	}
	pos := pkg.Fset.Position(d.Pos)
	loc := taxonomy.Location{File: pos.Filename, Line: pos.Line, Column: pos.Column}

	f := taxonomy.Finding{
		ID:       taxonomy.GenerateID(rule, loc, d.Message),
		Rule:     rule,
		Severity: taxonomy.SeverityOf(rule),
		Analyzer: a.Name,
		Package:  pkg.PkgPath,
		Location: loc,
		Message:  d.Message,
	}
	if len(d.SuggestedFixes) > 0 {
		sf := d.SuggestedFixes[0]
		fix := &taxonomy.Fix{Message: sf.Message}
		for _, e := range sf.TextEdits {
			end := e.End
			if !end.IsValid() {
				end = e.Pos
			}
			start := pkg.Fset.Position(e.Pos)
			fix.Edits = append(fix.Edits, taxonomy.Edit{
				File:    start.Filename,
				Offset:  start.Offset,
				End:     pkg.Fset.Position(end).Offset,
				NewText: string(e.NewText),
			})
		}
		f.Fix = fix
	}
	return f
}
