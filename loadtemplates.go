// Package loadtemplates loads templates from paths, glob patterns, maps,
// slices, functions and file objects, and normalizes every declaration into a
// canonical template with path, content, locals, options and data.
//
// The root package re-exports the constructors most callers need; see
// pkg/loader for the full option set and pkg/collection for named
// collections.
package loadtemplates

import (
	"github.com/jonschlinkert/load-templates-sub000/pkg/collection"
	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// Template is the canonical loaded template.
type Template = template.Template

// File is the vinyl-mode file object.
type File = template.File

// Option customises a loader.
type Option = loader.Option

// New constructs a loader using the built-in file reader, front-matter parser
// and glob expander unless options replace them.
func New(options ...Option) *loader.Loader {
	return loader.New(options...)
}

// NewRegistry constructs a collection registry whose collections share the
// base options.
func NewRegistry(base ...Option) *collection.Registry {
	return collection.NewRegistry(base...)
}

// Load normalizes args with a throwaway loader and returns the templates by
// key.
func Load(args ...any) (map[string]*Template, error) {
	return loader.New().Load(args...)
}
