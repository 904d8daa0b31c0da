package normalize

import (
	"github.com/jonschlinkert/load-templates-sub000/internal/flatten"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// fromMap treats obj as a single declaration when it carries any root key,
// or when it sits under a collection key; otherwise every entry is a template
// keyed by its map key. Entries are visited in key order.
func (n *normalizer) fromMap(obj map[string]any, keyHint string) ([]*template.Template, error) {
	if keyHint != "" || n.templateLike(obj) {
		tmpl, err := n.declaration(obj, keyHint)
		if err != nil {
			return nil, err
		}
		return []*template.Template{tmpl}, nil
	}

	var out []*template.Template
	for _, key := range template.SortedKeys(obj) {
		tmpl, err := n.entry(key, obj[key], nil)
		if err != nil {
			if n.isolate(key, err) {
				continue
			}
			return nil, err
		}
		out = append(out, tmpl)
	}
	return out, nil
}

// templateLike reports whether obj declares any root key. Beyond path and
// content this catches declarations such as {locals: {...}} that name no
// template, so they fail as missing content instead of becoming a collection.
func (n *normalizer) templateLike(obj map[string]any) bool {
	for key := range obj {
		if n.cfg.Roots.Has(key) {
			return true
		}
	}
	return false
}

// entry normalizes the value stored under a collection key.
func (n *normalizer) entry(key string, value any, _ []any) (*template.Template, error) {
	switch typed := value.(type) {
	case nil:
		return nil, template.MissingContentError(key)
	case string:
		raw := n.callRoot()
		raw[template.KeyPath] = key
		raw[template.KeyContent] = typed
		return n.finish(raw, origin{})
	case []byte:
		raw := n.callRoot()
		raw[template.KeyPath] = key
		raw[template.KeyContent] = string(typed)
		return n.finish(raw, origin{})
	case *template.File:
		if typed == nil {
			return nil, template.MissingContentError(key)
		}
		return n.fromFile(typed, key)
	case template.File:
		return n.fromFile(&typed, key)
	case *template.Template:
		if typed == nil {
			return nil, template.MissingContentError(key)
		}
		return n.declaration(typed.Raw(), key)
	case template.Template:
		return n.declaration(typed.Raw(), key)
	}
	if m, ok := template.AsMap(value); ok {
		return n.declaration(m, key)
	}
	return nil, &template.TypeError{Key: key, Type: template.TypeName(value), Want: "a template"}
}

// declaration builds one template from a map. The map is copied over the
// call-level root props, which fill whatever obj leaves unset; a missing path
// falls back to keyHint and a missing content is read from the path.
func (n *normalizer) declaration(obj map[string]any, keyHint string) (*template.Template, error) {
	raw := n.callRoot()
	delete(raw, template.KeyPath)
	for key, value := range obj {
		raw[key] = value
	}
	if value := raw[template.KeyPath]; keyHint != "" && (value == nil || value == "") {
		raw[template.KeyPath] = keyHint
	}

	label := keyHint
	if path, ok := raw.String(template.KeyPath); ok && path != "" {
		label = path
	}
	if err := flatten.Validate(raw, label); err != nil {
		return nil, err
	}
	if raw.Has(template.KeyContent) {
		return n.finish(raw, origin{})
	}

	path, _ := raw.String(template.KeyPath)
	content, ok := n.cfg.Read(path)
	if !ok {
		n.logger.Debug("template file not readable", "path", path)
		raw[template.KeyContent] = nil
		return n.finish(raw, origin{})
	}
	raw[template.KeyContent] = content
	return n.finish(raw, origin{fromFile: true})
}

// fromFile passes a pre-built file through. Nil contents are read from the
// file path.
func (n *normalizer) fromFile(file *template.File, keyHint string) (*template.Template, error) {
	path := file.Path
	if path == "" {
		path = keyHint
	}
	if path == "" {
		if file.Contents == nil {
			return nil, template.MissingContentError(keyHint)
		}
		return nil, template.MissingPathError(keyHint)
	}

	raw := n.callRoot()
	raw[template.KeyPath] = path
	src := origin{file: file}
	switch {
	case file.Contents != nil:
		raw[template.KeyContent] = string(file.Contents)
		src.fromFile = true
	default:
		if content, ok := n.cfg.Read(path); ok {
			raw[template.KeyContent] = content
			src.fromFile = true
		} else {
			raw[template.KeyContent] = nil
		}
	}
	return n.finish(raw, src)
}
