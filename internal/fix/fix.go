// Package fix applies the suggested rewrites carried by findings to
// source files.
package fix

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"go/format"
	"os"
	"slices"

	"github.com/unbound-force/assay/internal/taxonomy"
)

// ErrOverlap is returned when two edits to the same file overlap.
var ErrOverlap = errors.New("overlapping edits")

// Edits collects the edits of every fixable finding, grouped by file.
// Identical edits reported twice are kept once.
func Edits(findings []taxonomy.Finding) map[string][]taxonomy.Edit {
	out := make(map[string][]taxonomy.Edit)
	for _, f := range findings {
		if f.Fix == nil {
			continue
		}
		for _, e := range f.Fix.Edits {
			if !slices.Contains(out[e.File], e) {
				out[e.File] = append(out[e.File], e)
			}
		}
	}
	return out
}

// ApplyEdits applies edits to src and formats the result with gofmt.
// Edits may be given in any order but must not overlap.
func ApplyEdits(src []byte, edits []taxonomy.Edit) ([]byte, error) {
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b taxonomy.Edit) int {
		return cmp.Or(cmp.Compare(a.Offset, b.Offset), cmp.Compare(a.End, b.End))
	})

	var buf bytes.Buffer
	last := 0
	for _, e := range sorted {
		if e.Offset < last {
			return nil, fmt.Errorf("%w: edit at offset %d starts before offset %d", ErrOverlap, e.Offset, last)
		}
		if e.End < e.Offset || e.End > len(src) {
			return nil, fmt.Errorf("edit [%d, %d) out of range for %d bytes", e.Offset, e.End, len(src))
		}
		buf.Write(src[last:e.Offset])
		buf.WriteString(e.NewText)
		last = e.End
	}
	buf.Write(src[last:])

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting fixed source: %w", err)
	}
	return out, nil
}

// Apply reads every file the findings' fixes touch and returns the
// fixed contents keyed by file name. Nothing is written.
func Apply(findings []taxonomy.Finding) (map[string][]byte, error) {
	out := make(map[string][]byte)
	for file, edits := range Edits(findings) {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		fixed, err := ApplyEdits(src, edits)
		if err != nil {
			return nil, fmt.Errorf("fixing %s: %w", file, err)
		}
		out[file] = fixed
	}
	return out, nil
}

// Write persists fixed file contents, keeping each file's mode. It
// returns the number of files written.
func Write(files map[string][]byte) (int, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	for i, name := range names {
		info, err := os.Stat(name)
		if err != nil {
			return i, fmt.Errorf("writing %s: %w", name, err)
		}
		if err := os.WriteFile(name, files[name], info.Mode().Perm()); err != nil {
			return i, fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return len(names), nil
}
