package normalize

import (
	"fmt"
	"path"

	"github.com/jonschlinkert/load-templates-sub000/internal/flatten"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// origin records where the content of a raw declaration came from.
type origin struct {
	fromFile bool
	file     *template.File
}

// finish parses front matter, flattens raw and decorates the result with the
// fields derived from its origin.
func (n *normalizer) finish(raw template.Raw, src origin) (*template.Template, error) {
	label, _ := raw[template.KeyPath].(string)
	if err := flatten.Validate(raw, label); err != nil {
		return nil, err
	}
	if err := n.parse(raw, src); err != nil {
		return nil, err
	}

	tmpl, err := flatten.Flatten(raw, n.cfg.Roots, n.cfg.Layers)
	if err != nil {
		return nil, err
	}
	if src.fromFile && tmpl.Ext == "" && n.cfg.Roots.Has(template.KeyExt) {
		tmpl.Ext = path.Ext(tmpl.Path)
	}
	if n.cfg.VinylMode {
		tmpl.File = n.vinyl(tmpl, src.file)
	}
	n.logger.Debug("normalized template", "path", tmpl.Path, "file", src.fromFile)
	return tmpl, nil
}

// parse splits front matter off content read from a file. Literal content
// is kept exactly as given. Parsed data sits beneath any explicitly declared
// data.
func (n *normalizer) parse(raw template.Raw, src origin) error {
	content, ok := raw[template.KeyContent].(string)
	if !ok || !src.fromFile {
		return nil
	}
	if n.cfg.Roots.Has(template.KeyOrig) && !raw.Has(template.KeyOrig) {
		raw[template.KeyOrig] = content
	}
	if n.cfg.Parse == nil {
		return nil
	}

	parsed, err := n.cfg.Parse(content)
	if err != nil {
		return fmt.Errorf("normalize: parse %q: %w", raw[template.KeyPath], err)
	}
	if !parsed.HasMatter() {
		return nil
	}
	raw[template.KeyContent] = parsed.Content
	if len(parsed.Data) == 0 {
		return nil
	}
	explicit, present := raw[template.KeyData]
	if !present || explicit == nil {
		raw[template.KeyData] = parsed.Data
		return nil
	}
	if m, ok := template.AsMap(explicit); ok {
		raw[template.KeyData] = template.Merge(nil, parsed.Data, m)
	}
	return nil
}

// vinyl builds the file object attached to tmpl. A pre-built file keeps its
// own Cwd, Base and Stat.
func (n *normalizer) vinyl(tmpl *template.Template, prebuilt *template.File) *template.File {
	file := &template.File{}
	if prebuilt != nil {
		*file = *prebuilt
	}
	file.Path = tmpl.Path
	if file.Cwd == "" {
		file.Cwd = n.cfg.Cwd
	}
	if file.Base == "" {
		file.Base = path.Dir(tmpl.Path)
	}
	if tmpl.Content != nil {
		file.Contents = []byte(*tmpl.Content)
	} else {
		file.Contents = nil
	}
	if file.Stat == nil && n.cfg.Stat != nil {
		if info, err := n.cfg.Stat(tmpl.Path); err == nil {
			file.Stat = info
		}
	}
	return file
}
