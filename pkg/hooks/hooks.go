// Package hooks provides OnLoad functions for common template post-processing.
package hooks

import (
	"fmt"
	"path"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// Chain runs fns in order, stopping at the first error.
func Chain(fns ...loader.OnLoadFunc) loader.OnLoadFunc {
	return func(t *template.Template) error {
		for idx, fn := range fns {
			if fn == nil {
				continue
			}
			if err := fn(t); err != nil {
				return fmt.Errorf("hooks: step %d: %w", idx, err)
			}
		}
		return nil
	}
}

// Sanitize cleans template content with policy. Null content is left alone.
func Sanitize(policy *bluemonday.Policy) loader.OnLoadFunc {
	return func(t *template.Template) error {
		if policy == nil {
			return fmt.Errorf("hooks: sanitize policy is required")
		}
		if t.Content == nil {
			return nil
		}
		t.Content = template.String(policy.Sanitize(*t.Content))
		return nil
	}
}

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// SanitizeUGC cleans content with bluemonday's user generated content policy.
func SanitizeUGC() loader.OnLoadFunc {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return Sanitize(ugcPolicy)
}

var (
	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy
)

// SVGPolicy keeps single-colour path icons: an svg root with a viewBox, path
// groups and an optional title. Scripts, styles and foreign elements go.
func SVGPolicy() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("svg", "g", "path", "title")
		policy.AllowAttrs("xmlns", "viewBox", "width", "height", "aria-hidden").OnElements("svg")
		policy.AllowAttrs("fill").OnElements("svg", "g", "path")
		policy.AllowAttrs("d", "fill-rule").OnElements("path")
		svgPolicy = policy
	})
	return svgPolicy
}

// DefaultLocals fills locals missing from a template. Declared locals win.
func DefaultLocals(defaults map[string]any) loader.OnLoadFunc {
	defaults = template.CloneMap(defaults)
	return func(t *template.Template) error {
		for key, value := range defaults {
			if _, ok := t.Locals[key]; ok {
				continue
			}
			if t.Locals == nil {
				t.Locals = make(map[string]any, len(defaults))
			}
			t.Locals[key] = value
		}
		return nil
	}
}

// DetectExt sets Ext from the path when the template has none.
func DetectExt() loader.OnLoadFunc {
	return func(t *template.Template) error {
		if t.Ext == "" {
			t.Ext = path.Ext(t.Path)
		}
		return nil
	}
}
