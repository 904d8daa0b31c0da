package template

import (
	"io/fs"
	"maps"
)

// Raw is the loosely typed declaration of a single template. Recognised root
// keys (see DefaultRootKeys) describe the template itself; every other key is
// treated as a local.
type Raw map[string]any

// Template is the canonical output of the loader. Locals and Options are flat
// maps that never contain root keys and are nil when empty. Data holds parsed
// front matter and is never touched by locals/options flattening.
type Template struct {
	Path    string         `json:"path" yaml:"path" toml:"path"`
	Content *string        `json:"content" yaml:"content" toml:"content,omitempty"`
	Ext     string         `json:"ext,omitempty" yaml:"ext,omitempty" toml:"ext,omitempty"`
	Data    map[string]any `json:"data,omitempty" yaml:"data,omitempty" toml:"data,omitempty"`
	Locals  map[string]any `json:"locals,omitempty" yaml:"locals,omitempty" toml:"locals,omitempty"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Orig    *string        `json:"orig,omitempty" yaml:"orig,omitempty" toml:"orig,omitempty"`
	Value   any            `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`

	// Extra carries custom root keys configured beyond the standard set.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty" toml:"extra,omitempty"`

	// File is only populated in vinyl mode.
	File *File `json:"-" yaml:"-" toml:"-"`
}

// File is the richer file object used in vinyl mode and accepted as a
// pre-built input.
type File struct {
	Cwd      string
	Base     string
	Path     string
	Contents []byte
	Stat     fs.FileInfo
}

// String returns a pointer to s, convenient for building Content values.
func String(s string) *string {
	return &s
}

// ContentString returns the content or an empty string when the content is
// null.
func (t *Template) ContentString() string {
	if t == nil || t.Content == nil {
		return ""
	}
	return *t.Content
}

// HasContent reports whether the template carries non-null content.
func (t *Template) HasContent() bool {
	return t != nil && t.Content != nil
}

// Clone returns a copy of the template whose maps can be mutated without
// affecting the receiver. Nested map values are shared.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	out := *t
	out.Content = cloneString(t.Content)
	out.Orig = cloneString(t.Orig)
	out.Data = CloneMap(t.Data)
	out.Locals = CloneMap(t.Locals)
	out.Options = CloneMap(t.Options)
	out.Extra = CloneMap(t.Extra)
	if t.File != nil {
		file := *t.File
		file.Contents = append([]byte(nil), t.File.Contents...)
		out.File = &file
	}
	return &out
}

// Raw converts the template back into its declaration form. It is the inverse
// of flattening for templates produced with the default root keys.
func (t *Template) Raw() Raw {
	if t == nil {
		return nil
	}
	raw := Raw{KeyPath: t.Path}
	if t.Content != nil {
		raw[KeyContent] = *t.Content
	} else {
		raw[KeyContent] = nil
	}
	if t.Ext != "" {
		raw[KeyExt] = t.Ext
	}
	if len(t.Data) > 0 {
		raw[KeyData] = CloneMap(t.Data)
	}
	if len(t.Locals) > 0 {
		raw[KeyLocals] = CloneMap(t.Locals)
	}
	if len(t.Options) > 0 {
		raw[KeyOptions] = CloneMap(t.Options)
	}
	if t.Orig != nil {
		raw[KeyOrig] = *t.Orig
	}
	if t.Value != nil {
		raw[KeyValue] = t.Value
	}
	for key, value := range t.Extra {
		raw[key] = value
	}
	return raw
}

// CloneMap performs a shallow copy, returning nil for empty input.
func CloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
