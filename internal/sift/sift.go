// Package sift decides which trailing call arguments are locals and which are
// options.
//
// Arguments are scanned left to right:
//
//   - a map with a nested "options" map feeds that map into the nested
//     options; its other non-root keys are locals
//   - a map with a nested "locals" map feeds that map into the nested locals
//   - the first map carrying anything besides "locals"/"options" is the
//     primary locals source; its root keys are returned separately
//   - the last map, when distinct from the primary source and without a
//     nested "options" key, is the primary options source
//   - maps in between are locals
//   - booleans are returned as flags, every other non-map is ignored
//
// A single trailing map is always locals.
package sift

import (
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// Result holds the partitioned call-level declarations. Nested declarations
// are kept apart from flat ones so callers can apply "nested wins".
type Result struct {
	Locals        map[string]any
	NestedLocals  map[string]any
	Options       map[string]any
	NestedOptions map[string]any

	// Root holds the root-key entries of the primary locals source, minus
	// the locals/options directives.
	Root map[string]any

	Flags []bool
}

// MergedLocals returns flat locals overridden by nested locals, nil when empty.
func (r Result) MergedLocals() map[string]any {
	return template.Merge(nil, r.Locals, r.NestedLocals)
}

// MergedOptions returns flat options overridden by nested options, nil when
// empty.
func (r Result) MergedOptions() map[string]any {
	return template.Merge(nil, r.Options, r.NestedOptions)
}

// Flag returns the first boolean flag and whether one was supplied.
func (r Result) Flag() (bool, bool) {
	if len(r.Flags) == 0 {
		return false, false
	}
	return r.Flags[0], true
}

// Sift partitions args using roots to recognise root keys.
func Sift(args []any, roots template.RootKeys) (Result, error) {
	var (
		result  Result
		sources []map[string]any
	)
	for _, arg := range args {
		if flag, ok := arg.(bool); ok {
			result.Flags = append(result.Flags, flag)
			continue
		}
		if m, ok := template.AsMap(arg); ok {
			sources = append(sources, m)
		}
	}
	if len(sources) == 0 {
		return result, nil
	}

	primary := -1
	for idx, src := range sources {
		if !directivesOnly(src) {
			primary = idx
			break
		}
	}
	optionsSource := -1
	if last := len(sources) - 1; len(sources) > 1 && last != primary {
		if _, tagged := sources[last][template.KeyOptions]; !tagged {
			optionsSource = last
		}
	}

	for idx, src := range sources {
		nestedOptions, err := nested(src, template.KeyOptions)
		if err != nil {
			return Result{}, err
		}
		result.NestedOptions = template.Merge(result.NestedOptions, nestedOptions)

		nestedLocals, err := nested(src, template.KeyLocals)
		if err != nil {
			return Result{}, err
		}
		result.NestedLocals = template.Merge(result.NestedLocals, nestedLocals)

		for _, key := range template.SortedKeys(src) {
			if key == template.KeyLocals || key == template.KeyOptions {
				continue
			}
			value := src[key]
			if roots.Has(key) {
				if idx == primary {
					result.Root = template.Merge(result.Root, map[string]any{key: value})
				}
				continue
			}
			if idx == optionsSource {
				result.Options = template.Merge(result.Options, map[string]any{key: value})
				continue
			}
			result.Locals = template.Merge(result.Locals, map[string]any{key: value})
		}
	}
	return result, nil
}

func directivesOnly(src map[string]any) bool {
	for key := range src {
		if key != template.KeyLocals && key != template.KeyOptions {
			return false
		}
	}
	return true
}

// nested extracts the map stored under key. A nil value is ignored; any
// other non-map value is a TypeError.
func nested(src map[string]any, key string) (map[string]any, error) {
	value, ok := src[key]
	if !ok || value == nil {
		return nil, nil
	}
	m, ok := template.AsMap(value)
	if !ok {
		return nil, &template.TypeError{Key: key, Type: template.TypeName(value), Want: "a map"}
	}
	return m, nil
}
