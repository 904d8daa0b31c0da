package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "templates.yaml", `
cwd: site
patterns: ["pages/*.md"]
rootKeys: []
withExt: false
rename: stem
sanitize: ugc
format: yml
locals:
  site: docs
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	withExt := false
	want := Config{
		Cwd:      "site",
		Patterns: []string{"pages/*.md"},
		RootKeys: []string{},
		WithExt:  &withExt,
		Rename:   "stem",
		Sanitize: "ugc",
		Format:   "yml",
		Locals:   map[string]any{"site": "docs"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "templates.toml", `
cwd = "site"
noparse = true
format = "cbor"

[options]
engine = "hbs"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cwd != "site" || !cfg.NoParse || cfg.Format != "cbor" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if diff := cmp.Diff(map[string]any{"engine": "hbs"}, cfg.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad.yaml":    "sanitize: everything\n",
		"rename.yaml": "rename: upper\n",
		"format.yaml": "format: xml\n",
		"syntax.yaml": "cwd: [\n",
	}
	for name, body := range cases {
		if _, err := Load(writeFile(t, name, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestLoaderOptions(t *testing.T) {
	withExt := false
	cfg := Config{
		Cwd:     "site",
		WithExt: &withExt,
		Rename:  "basename",
		Locals:  map[string]any{"site": "docs"},
	}
	fsys := fstest.MapFS{"site/pages/a.md": {Data: []byte("A")}}
	l := loader.New(append(cfg.LoaderOptions(), loader.WithFileSystem(fsys))...)
	if _, err := l.Load("pages/*.md"); err != nil {
		t.Fatalf("load: %v", err)
	}
	tmpl, ok := l.Get("a.md")
	if !ok {
		t.Fatalf("expected basename key, got %v", l.Keys())
	}
	if diff := cmp.Diff(map[string]any{"site": "docs"}, tmpl.Locals); diff != "" {
		t.Fatalf("locals mismatch (-want +got):\n%s", diff)
	}
}
