// Package flatten turns a raw template declaration into a Template, folding
// non-root properties into locals and collapsing nested locals/options maps.
package flatten

import (
	"github.com/jonschlinkert/load-templates-sub000/internal/sift"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// Layers carries the declarations that surround a template: constructor-level
// defaults and the call-level result of the sifter.
type Layers struct {
	Locals  map[string]any
	Options map[string]any
	Call    sift.Result
}

// Flatten builds a Template from raw. Precedence, lowest first:
//
//	locals:  layer defaults, template extras, template "locals", call flat, call nested
//	options: layer defaults, template "options", call flat, call nested
//
// Root fields pass through untouched; data is deep-copied.
func Flatten(raw template.Raw, roots template.RootKeys, layers Layers) (*template.Template, error) {
	key, _ := raw[template.KeyPath].(string)
	if err := Validate(raw, key); err != nil {
		return nil, err
	}

	tmpl := &template.Template{}
	var (
		extras      map[string]any
		ownLocals   map[string]any
		ownOptions  map[string]any
		customRoots map[string]any
	)

	for _, name := range template.SortedKeys(raw) {
		value := raw[name]
		if !roots.Has(name) {
			extras = template.Merge(extras, map[string]any{name: value})
			continue
		}

		switch name {
		case template.KeyPath:
			path, ok := value.(string)
			if !ok {
				return nil, &template.TypeError{Key: name, Type: template.TypeName(value), Want: "a string path"}
			}
			tmpl.Path = path
		case template.KeyContent:
			content, err := contentValue(key, value)
			if err != nil {
				return nil, err
			}
			tmpl.Content = content
		case template.KeyLocals:
			m, err := nestedMap(key, name, value)
			if err != nil {
				return nil, err
			}
			ownLocals = m
		case template.KeyOptions:
			m, err := nestedMap(key, name, value)
			if err != nil {
				return nil, err
			}
			ownOptions = m
		case template.KeyExt:
			ext, ok := value.(string)
			if !ok && value != nil {
				return nil, &template.TypeError{Key: key, Type: template.TypeName(value), Want: "a string ext"}
			}
			tmpl.Ext = ext
		case template.KeyData:
			m, err := nestedMap(key, name, value)
			if err != nil {
				return nil, err
			}
			if len(m) > 0 {
				tmpl.Data = template.DeepCopy(m).(map[string]any)
			}
		case template.KeyOrig:
			orig, err := contentValue(key, value)
			if err != nil {
				return nil, err
			}
			tmpl.Orig = orig
		case template.KeyValue:
			tmpl.Value = value
		default:
			customRoots = template.Merge(customRoots, map[string]any{name: value})
		}
	}

	tmpl.Locals = without(template.Merge(nil,
		layers.Locals,
		extras,
		ownLocals,
		layers.Call.Locals,
		layers.Call.NestedLocals,
	), roots)
	tmpl.Options = without(template.Merge(nil,
		layers.Options,
		ownOptions,
		layers.Call.Options,
		layers.Call.NestedOptions,
	), roots)
	tmpl.Extra = customRoots
	return tmpl, nil
}

// Validate checks that raw can yield a template: content is checked before
// path. A present but nil content counts as resolved.
func Validate(raw template.Raw, key string) error {
	if value, ok := raw[template.KeyPath]; ok && value != nil {
		if _, isString := value.(string); !isString {
			return &template.TypeError{Key: key, Type: template.TypeName(value), Want: "a string path"}
		}
	}
	_, hasContent := raw[template.KeyContent]
	path, _ := raw[template.KeyPath].(string)
	if !hasContent && path == "" {
		return template.MissingContentError(key)
	}
	if path == "" {
		return template.MissingPathError(key)
	}
	return nil
}

func contentValue(key string, value any) (*string, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case string:
		return template.String(typed), nil
	case *string:
		if typed == nil {
			return nil, nil
		}
		return template.String(*typed), nil
	case []byte:
		return template.String(string(typed)), nil
	default:
		return nil, &template.TypeError{Key: key, Type: template.TypeName(value), Want: "string content"}
	}
}

func nestedMap(key, name string, value any) (map[string]any, error) {
	if value == nil {
		return nil, nil
	}
	m, ok := template.AsMap(value)
	if !ok {
		label := key
		if label == "" {
			label = name
		}
		return nil, &template.TypeError{Key: label, Type: template.TypeName(value), Want: "a map for " + name}
	}
	return m, nil
}

// without drops root keys so locals and options never collide with template
// fields. Returns nil when nothing is left.
func without(m map[string]any, roots template.RootKeys) map[string]any {
	for key := range m {
		if roots.Has(key) {
			delete(m, key)
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
