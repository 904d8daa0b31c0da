// Package rename derives cache keys for normalized templates.
package rename

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// Func computes the cache key for a template.
type Func func(t *template.Template) string

// Key returns the cache key for t. A non-nil fn wins; when it returns an empty
// string the default applies. The default is the path verbatim, with its final
// extension removed when withExt is false.
func Key(t *template.Template, fn Func, withExt bool) string {
	if t == nil {
		return ""
	}
	if fn != nil {
		if key := fn(t); key != "" {
			return key
		}
	}
	if withExt {
		return t.Path
	}
	return StripExt(t.Path)
}

// StripExt removes the final extension of p, leaving dotfiles untouched.
func StripExt(p string) string {
	ext := path.Ext(p)
	if ext == "" {
		return p
	}
	base := path.Base(filepath.ToSlash(p))
	if base == ext {
		return p
	}
	return strings.TrimSuffix(p, ext)
}

// Basename keys templates by the last path element.
func Basename(t *template.Template) string {
	return path.Base(filepath.ToSlash(t.Path))
}

// Stem keys templates by the last path element without its extension.
func Stem(t *template.Template) string {
	return StripExt(Basename(t))
}

// RelativeTo keys templates by their path relative to dir. Paths outside dir
// keep their original value.
func RelativeTo(dir string) Func {
	return func(t *template.Template) string {
		rel, err := filepath.Rel(dir, t.Path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return t.Path
		}
		return filepath.ToSlash(rel)
	}
}
