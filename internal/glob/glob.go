// Package glob expands "**"-aware glob patterns into template paths.
package glob

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsPattern reports whether s contains glob metacharacters or is a negation.
func IsPattern(s string) bool {
	return strings.HasPrefix(s, "!") || strings.ContainsAny(s, "*?[{")
}

// Expander resolves patterns against an fs.FS or, when none is configured,
// the operating system.
type Expander struct {
	fsys fs.FS
}

// New constructs an Expander. A nil fsys means the operating system.
func New(fsys fs.FS) *Expander {
	return &Expander{fsys: fsys}
}

// Expand implements source.GlobFunc. Matches are files only, relative to cwd,
// slash-separated and sorted.
func (e *Expander) Expand(pattern, cwd string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("glob: pattern is required")
	}
	if negated, ok := strings.CutPrefix(pattern, "!"); ok {
		return e.exclude(negated, cwd)
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("glob: invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	fsys, err := e.root(pattern, cwd)
	if err != nil {
		return nil, err
	}
	rel := filepath.ToSlash(pattern)
	if e.fsys == nil && filepath.IsAbs(pattern) {
		rel = strings.TrimPrefix(rel, "/")
	}

	matches, err := doublestar.Glob(fsys, rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob: expand %q: %w", pattern, err)
	}
	if e.fsys == nil && filepath.IsAbs(pattern) {
		for idx, match := range matches {
			matches[idx] = filepath.FromSlash("/" + match)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func (e *Expander) root(pattern, cwd string) (fs.FS, error) {
	if e.fsys == nil {
		if filepath.IsAbs(pattern) {
			return os.DirFS("/"), nil
		}
		if cwd == "" {
			cwd = "."
		}
		return os.DirFS(cwd), nil
	}
	dir := strings.Trim(path.Clean(filepath.ToSlash(cwd)), "/")
	if dir == "" || dir == "." {
		return e.fsys, nil
	}
	sub, err := fs.Sub(e.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("glob: cwd %q: %w", cwd, err)
	}
	return sub, nil
}

// exclude expands a negated pattern: every file under cwd that does not
// match negated.
func (e *Expander) exclude(negated, cwd string) ([]string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(negated)) {
		return nil, fmt.Errorf("glob: invalid pattern %q: %w", "!"+negated, doublestar.ErrBadPattern)
	}
	all, err := e.Expand("**", cwd)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for _, match := range all {
		if doublestar.MatchUnvalidated(filepath.ToSlash(negated), filepath.ToSlash(match)) {
			continue
		}
		out = append(out, match)
	}
	return out, nil
}
