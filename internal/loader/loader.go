// Package loader wraps go/packages to load Go packages, test files
// included, with full type information for static analysis.
package loader

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/mod/module"
	"golang.org/x/tools/go/packages"

	"github.com/unbound-force/assay/internal/typedesc"
)

// LoadMode is the minimum set of flags the analyzers need.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes |
	packages.NeedModule

// Result holds the loaded packages along with convenience accessors.
type Result struct {
	// Pkgs are the packages matched by the patterns, including their
	// test variants. Synthesized test mains are dropped.
	Pkgs []*packages.Package

	// Fset is the shared file set for position information.
	Fset *token.FileSet

	// Modules maps every loaded package, dependencies included, to its
	// containing module.
	Modules *typedesc.ModuleIndex
}

// Load loads the packages matched by patterns, relative to dir (the
// current directory when empty). It returns an error if loading fails
// or any matched package has errors.
func Load(dir string, patterns ...string) (*Result, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Mode:  LoadMode,
		Dir:   dir,
		Tests: true,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages %q: %w", patterns, err)
	}

	var roots []*packages.Package
	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.ID, ".test") {
			continue
		}
		roots = append(roots, pkg)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no packages found for patterns %q", patterns)
	}

	// Check for package-level errors (syntax, type errors, etc.).
	var errs []string
	for _, pkg := range roots {
		for _, e := range pkg.Errors {
			errs = append(errs, e.Error())
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("packages %q have errors:\n  %s",
			patterns, strings.Join(errs, "\n  "))
	}

	return &Result{
		Pkgs:    roots,
		Fset:    roots[0].Fset,
		Modules: ModuleIndex(roots),
	}, nil
}

// ModuleIndex indexes the modules of pkgs and all their dependencies.
func ModuleIndex(pkgs []*packages.Package) *typedesc.ModuleIndex {
	var mods []module.Version
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		m := p.Module
		if m == nil {
			return
		}
		version := m.Version
		if m.Replace != nil && m.Replace.Version != "" {
			version = m.Replace.Version
		}
		mods = append(mods, module.Version{Path: m.Path, Version: version})
	})
	return typedesc.NewModuleIndex(mods...)
}
