package normalize

import (
	"fmt"

	"github.com/jonschlinkert/load-templates-sub000/internal/glob"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// fromString handles a string key. A string first trailing arg is literal
// content and short-circuits any file read; otherwise content comes from the
// primary locals source or from reading key.
func (n *normalizer) fromString(key string, rest []any) ([]*template.Template, error) {
	isGlob := glob.IsPattern(key)
	if flag, ok := n.cfg.Layers.Call.Flag(); ok {
		isGlob = flag
	}
	if isGlob {
		if len(rest) > 0 {
			if _, literal := rest[0].(string); literal {
				return nil, &template.AmbiguousContentError{Pattern: key}
			}
		}
		return n.fromGlob(key)
	}

	raw := n.callRoot()
	raw[template.KeyPath] = key

	if len(rest) > 0 {
		if content, literal := rest[0].(string); literal {
			raw[template.KeyContent] = content
			return n.one(raw, origin{})
		}
	}
	if raw.Has(template.KeyContent) {
		return n.one(raw, origin{})
	}
	if key == "" {
		return nil, template.MissingContentError(key)
	}

	content, ok := n.cfg.Read(key)
	if !ok {
		n.logger.Debug("template file not readable", "path", key)
		raw[template.KeyContent] = nil
		return n.one(raw, origin{})
	}
	raw[template.KeyContent] = content
	return n.one(raw, origin{fromFile: true})
}

func (n *normalizer) fromGlob(pattern string) ([]*template.Template, error) {
	if n.cfg.Glob == nil {
		return nil, fmt.Errorf("normalize: no glob expander configured for %q", pattern)
	}
	matches, err := n.cfg.Glob(pattern, n.cfg.Cwd)
	if err != nil {
		return nil, fmt.Errorf("normalize: glob %q: %w", pattern, err)
	}
	n.logger.Debug("expanded glob", "pattern", pattern, "matches", len(matches))

	out := make([]*template.Template, 0, len(matches))
	for _, match := range matches {
		raw := n.callRoot()
		delete(raw, template.KeyContent)
		raw[template.KeyPath] = match

		src := origin{}
		if content, ok := n.cfg.Read(match); ok {
			raw[template.KeyContent] = content
			src.fromFile = true
		} else {
			raw[template.KeyContent] = nil
		}
		tmpl, err := n.finish(raw, src)
		if err != nil {
			return nil, err
		}
		out = append(out, tmpl)
	}
	return out, nil
}

// callRoot copies the root keys lifted from the primary locals source.
func (n *normalizer) callRoot() template.Raw {
	raw := make(template.Raw, len(n.cfg.Layers.Call.Root)+2)
	for key, value := range n.cfg.Layers.Call.Root {
		raw[key] = value
	}
	return raw
}

func (n *normalizer) one(raw template.Raw, src origin) ([]*template.Template, error) {
	tmpl, err := n.finish(raw, src)
	if err != nil {
		return nil, err
	}
	return []*template.Template{tmpl}, nil
}
