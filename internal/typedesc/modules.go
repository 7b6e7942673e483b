package typedesc

import (
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"

	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// AssemblyLocator maps a package import path to the module that
// contains it.
type AssemblyLocator interface {
	Locate(pkgPath string) module.Version
}

// ModuleIndex is an AssemblyLocator backed by a fixed list of modules.
// It is immutable after construction.
type ModuleIndex struct {
	// mods is sorted by descending path length so the first prefix
	// match is the most specific module.
	mods []module.Version
}

// NewModuleIndex builds an index over mods. When a module path appears
// more than once, the highest semantic version wins.
func NewModuleIndex(mods ...module.Version) *ModuleIndex {
	best := make(map[string]module.Version, len(mods))
	for _, m := range mods {
		if m.Path == "" {
			continue
		}
		prev, ok := best[m.Path]
		if !ok || semver.Compare(m.Version, prev.Version) > 0 {
			best[m.Path] = m
		}
	}

	ix := &ModuleIndex{mods: make([]module.Version, 0, len(best))}
	for _, m := range best {
		ix.mods = append(ix.mods, m)
	}
	sort.Slice(ix.mods, func(i, j int) bool {
		if len(ix.mods[i].Path) != len(ix.mods[j].Path) {
			return len(ix.mods[i].Path) > len(ix.mods[j].Path)
		}
		return ix.mods[i].Path < ix.mods[j].Path
	})
	return ix
}

// Locate returns the module containing pkgPath. Standard library
// packages map to StdModule. Packages outside every known module map
// to a version-less module named after the package itself.
func (ix *ModuleIndex) Locate(pkgPath string) module.Version {
	if IsStdPackage(pkgPath) {
		return Std()
	}
	if ix != nil {
		for _, m := range ix.mods {
			if pkgPath == m.Path || strings.HasPrefix(pkgPath, m.Path+"/") {
				return m
			}
		}
	}
	return module.Version{Path: pkgPath}
}

// Modules returns the indexed modules, most specific first.
func (ix *ModuleIndex) Modules() []module.Version {
	if ix == nil {
		return nil
	}
	out := make([]module.Version, len(ix.mods))
	copy(out, ix.mods)
	return out
}

// Std returns the assembly identity of the standard library for the
// running toolchain.
func Std() module.Version {
	return module.Version{Path: StdModule, Version: runtime.Version()}
}

// IsStdPackage reports whether pkgPath names a standard library
// package, using the toolchain's own rule: the first path element of
// a non-standard import path contains a dot.
func IsStdPackage(pkgPath string) bool {
	if pkgPath == "" {
		return true
	}
	first, _, _ := strings.Cut(pkgPath, "/")
	return !strings.Contains(first, ".")
}

var buildInfoIndex = sync.OnceValue(func() *ModuleIndex {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return NewModuleIndex()
	}
	mods := []module.Version{{Path: info.Main.Path, Version: info.Main.Version}}
	for _, dep := range info.Deps {
		version := dep.Version
		if dep.Replace != nil {
			version = dep.Replace.Version
		}
		mods = append(mods, module.Version{Path: dep.Path, Version: version})
	}
	return NewModuleIndex(mods...)
})

// BuildInfoIndex returns an index of the modules linked into the
// running binary. It is computed once.
func BuildInfoIndex() *ModuleIndex {
	return buildInfoIndex()
}
