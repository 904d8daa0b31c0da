package loadtemplates

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jonschlinkert/load-templates-sub000/pkg/collection"
	"github.com/jonschlinkert/load-templates-sub000/pkg/hooks"
	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
	"github.com/jonschlinkert/load-templates-sub000/pkg/testsupport"
)

func TestExampleSiteGolden(t *testing.T) {
	l := New(
		loader.WithFileSystem(ExampleSiteFS()),
		loader.WithExt(false),
		loader.WithLocals(map[string]any{"site": "example"}),
	)
	loaded := testsupport.MustLoad(t, l, "**/*")
	if diff := cmp.Diff([]string{"layouts/default", "pages/about", "pages/home", "partials/icon"}, l.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	got := testsupport.TemplatesJSON(t, loaded)
	golden := filepath.Join("testdata", "example_site.golden.json")
	if testsupport.WriteMaybeGolden(t, golden, got) {
		return
	}
	if diff := testsupport.CompareJSON(t, testsupport.MustReadGolden(t, golden), got); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	got, err := Load("a/b/c.md", "this is content.")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]*Template{"a/b/c.md": {Path: "a/b/c.md", Content: template.String("this is content.")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loaded mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(map[string]any{"name": "Jon Schlinkert", "content": "foo"}); !errors.Is(err, template.ErrMissingPath) {
		t.Fatalf("expected missing path, got %v", err)
	}
}

func TestRegistryOverExampleSite(t *testing.T) {
	r := NewRegistry(loader.WithFileSystem(ExampleSiteFS()))
	r.MustCreate("pages", collection.WithLoaderOptions(loader.WithRenameKey(loader.Stem)))
	r.MustCreate("partials", collection.WithLoaderOptions(
		loader.WithRenameKey(loader.Stem),
		loader.WithOnLoad(hooks.Sanitize(hooks.SVGPolicy())),
	))

	if _, err := r.Add("page", "pages/*.md"); err != nil {
		t.Fatalf("add pages: %v", err)
	}
	if _, err := r.Add("partial", "partials/*.svg"); err != nil {
		t.Fatalf("add partials: %v", err)
	}

	home, err := r.Get("pages", "home")
	if err != nil {
		t.Fatalf("get home: %v", err)
	}
	if home.Data["layout"] != "default" {
		t.Fatalf("expected front matter data, got %v", home.Data)
	}
	icon, err := r.Get("partials", "icon")
	if err != nil {
		t.Fatalf("get icon: %v", err)
	}
	if icon.ContentString() == "" {
		t.Fatalf("expected sanitized svg content")
	}
}
