package loader_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

func fixtures() fstest.MapFS {
	return fstest.MapFS{
		"site/pages/home.md":     {Data: []byte("---\ntitle: Home\n---\nWelcome")},
		"site/pages/about.md":    {Data: []byte("About us")},
		"site/layouts/base.html": {Data: []byte("<main>{{body}}</main>")},
	}
}

func newLoader(opts ...loader.Option) *loader.Loader {
	base := []loader.Option{
		loader.WithFileSystem(fixtures()),
		loader.WithCwd("site"),
	}
	return loader.New(append(base, opts...)...)
}

func TestLoad_PathAndContent(t *testing.T) {
	l := newLoader()
	got, err := l.Load("a/b/c.md", "this is content.")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]*template.Template{
		"a/b/c.md": {Path: "a/b/c.md", Content: template.String("this is content.")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loaded mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, l.Templates()); diff != "" {
		t.Fatalf("cache mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_LiteralContentKeptVerbatim(t *testing.T) {
	contents := []string{
		"---\nA thematic break opens this markdown doc.",
		"---\ntitle: x\n---\nbody",
		"---\n- a\n- b\n---\n",
	}
	for _, content := range contents {
		l := newLoader()
		got, err := l.Load("a/b/c.md", content)
		if err != nil {
			t.Fatalf("load %q: %v", content, err)
		}
		want := map[string]*template.Template{
			"a/b/c.md": {Path: "a/b/c.md", Content: template.String(content)},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("load %q mismatch (-want +got):\n%s", content, diff)
		}

		tmpl, err := l.Set("literal", content)
		if err != nil {
			t.Fatalf("set %q: %v", content, err)
		}
		if tmpl.ContentString() != content || tmpl.Data != nil {
			t.Fatalf("set %q must keep content, got %#v", content, tmpl)
		}
	}
}

func TestLoad_Idempotent(t *testing.T) {
	l := newLoader()
	first, err := l.Load("pages/*.md", map[string]any{"site": "docs"})
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := l.Load("pages/*.md", map[string]any{"site": "docs"})
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("loads differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pages/about.md", "pages/home.md"}, l.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_GlobParsesFrontMatter(t *testing.T) {
	l := newLoader()
	if _, err := l.Load("pages/home.md", true); err != nil {
		t.Fatalf("load: %v", err)
	}
	home, ok := l.Get("pages/home.md")
	if !ok {
		t.Fatalf("expected home template")
	}
	want := &template.Template{
		Path:    "pages/home.md",
		Content: template.String("Welcome"),
		Ext:     ".md",
		Data:    map[string]any{"title": "Home"},
		Orig:    template.String("---\ntitle: Home\n---\nWelcome"),
	}
	if diff := cmp.Diff(want, home); diff != "" {
		t.Fatalf("template mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CollectionOfContent(t *testing.T) {
	l := newLoader()
	got, err := l.Load(map[string]any{"k": map[string]any{"content": "c"}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]*template.Template{"k": {Path: "k", Content: template.String("c")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loaded mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_LocalsAndOptions(t *testing.T) {
	l := newLoader()
	got, err := l.Load(
		map[string]any{"path": "a/b/c.md", "content": "X", "a": "b", "options": map[string]any{"y": "z"}},
		map[string]any{"c": "d"},
		map[string]any{"e": "f"},
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tmpl := got["a/b/c.md"]
	if diff := cmp.Diff(map[string]any{"a": "b", "c": "d"}, tmpl.Locals); diff != "" {
		t.Fatalf("locals mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"y": "z", "e": "f"}, tmpl.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ConstructorLayers(t *testing.T) {
	l := newLoader(
		loader.WithLocals(map[string]any{"site": "global", "title": "global"}),
		loader.WithOptions(map[string]any{"engine": "md"}),
	)
	got, err := l.Load("page", "x", map[string]any{"title": "call"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tmpl := got["page"]
	if diff := cmp.Diff(map[string]any{"site": "global", "title": "call"}, tmpl.Locals); diff != "" {
		t.Fatalf("locals mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"engine": "md"}, tmpl.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	l := newLoader()
	got, err := l.Load("whatever", map[string]any{"name": "Brian Woodward"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := &template.Template{Path: "whatever", Locals: map[string]any{"name": "Brian Woodward"}}
	if diff := cmp.Diff(want, got["whatever"]); diff != "" {
		t.Fatalf("template mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []any
		want error
	}{
		{name: "no args", want: template.ErrInvalidInput},
		{name: "glob with literal", args: []any{"pages/*.md", "literal"}, want: template.ErrAmbiguousContent},
		{name: "missing path", args: []any{map[string]any{"name": "Jon Schlinkert", "content": "foo"}}, want: template.ErrMissingPath},
		{name: "invalid input", args: []any{3.14}, want: template.ErrInvalidInput},
		{
			name: "invalid directive",
			args: []any{"a.md", "x", map[string]any{"a": 1}, map[string]any{"withExt": "no"}},
			want: template.ErrType,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLoader()
			_, err := l.Load(tc.args...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if l.Len() != 0 {
				t.Fatalf("failed load must not touch the cache, got %v", l.Keys())
			}
		})
	}
}

func TestLoad_FailFastKeepsCache(t *testing.T) {
	l := newLoader()
	if _, err := l.Load("keep.md", "x"); err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err := l.Load([]any{"a.md", 42}, "content")
	if !errors.Is(err, template.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if diff := cmp.Diff([]string{"keep.md"}, l.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ItemErrorHandler(t *testing.T) {
	var skipped []string
	l := newLoader(loader.WithItemErrorHandler(func(key string, err error) {
		skipped = append(skipped, key)
	}))
	got, err := l.Load([]any{"a.md", 42, "b.md"}, "content")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"a.md", "b.md"}, l.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if len(got) != 2 {
		t.Fatalf("expected two loaded templates, got %d", len(got))
	}
	if diff := cmp.Diff([]string{"[1]"}, skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_WithExtFalse(t *testing.T) {
	l := newLoader(loader.WithExt(false))
	if _, err := l.Load("a/b/c.md", "x"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"a/b/c"}, l.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	tmpl, ok := l.Get("a/b/c.md")
	if !ok || tmpl.Path != "a/b/c.md" {
		t.Fatalf("expected lookup by path to resolve the derived key")
	}
}

func TestLoad_RenameKey(t *testing.T) {
	l := newLoader(loader.WithRenameKey(loader.Stem))
	if _, err := l.Load("pages/*.md"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"about", "home"}, l.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	// per-call rename wins over the constructor
	if _, err := l.Load("layouts/*.html", map[string]any{
		"options": map[string]any{"renameKey": loader.RelativeTo("layouts")},
	}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !l.Has("base.html") {
		t.Fatalf("expected per-call rename, got %v", l.Keys())
	}

	// an empty key falls back to the default
	empty := loader.New(loader.WithRenameKey(func(*template.Template) string { return "" }))
	if _, err := empty.Load("x.md", "x"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !empty.Has("x.md") {
		t.Fatalf("expected default key, got %v", empty.Keys())
	}
}

func TestLoad_DirectivesAreConsumed(t *testing.T) {
	l := newLoader()
	got, err := l.Load("pages/home.md", map[string]any{"title": "x"}, map[string]any{
		"noparse": true,
		"withExt": false,
		"layout":  "base",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tmpl, ok := got["pages/home"]
	if !ok {
		t.Fatalf("expected extension-less key, got %v", got)
	}
	if diff := cmp.Diff(map[string]any{"layout": "base"}, tmpl.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if tmpl.Data != nil || tmpl.ContentString() != "---\ntitle: Home\n---\nWelcome" {
		t.Fatalf("noparse must leave content untouched, got %#v", tmpl)
	}
}

func TestLoad_RootKeysDirective(t *testing.T) {
	l := newLoader()
	got, err := l.Load("a.md", map[string]any{"ext": ".txt", "title": "t"}, map[string]any{
		"options": map[string]any{"rootKeys": []any{}},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := &template.Template{
		Path:   "a.md",
		Locals: map[string]any{"ext": ".txt", "title": "t"},
	}
	if diff := cmp.Diff(want, got["a.md"]); diff != "" {
		t.Fatalf("template mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_OnLoad(t *testing.T) {
	l := newLoader(loader.WithOnLoad(func(tmpl *template.Template) error {
		tmpl.Locals = template.Merge(tmpl.Locals, map[string]any{"seen": true})
		return nil
	}))
	got, err := l.Load("a.md", "x")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got["a.md"].Locals["seen"] != true {
		t.Fatalf("onLoad did not run")
	}

	failing := newLoader(loader.WithOnLoad(func(*template.Template) error {
		return errors.New("rejected")
	}))
	if _, err := failing.Load("a.md", "x"); err == nil || err.Error() != `loader: onLoad "a.md": rejected` {
		t.Fatalf("expected wrapped onLoad error, got %v", err)
	}
	if failing.Len() != 0 {
		t.Fatalf("failed load must not touch the cache")
	}
}

func TestLoad_MergeOnLoad(t *testing.T) {
	l := newLoader(loader.WithMergeOnLoad(true))
	if _, err := l.Load("a.md", "one", map[string]any{"a": 1, "b": 1}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := l.Load("a.md", "two", map[string]any{"b": 2}); err != nil {
		t.Fatalf("load: %v", err)
	}
	tmpl, _ := l.Get("a.md")
	if tmpl.ContentString() != "two" {
		t.Fatalf("expected new content, got %q", tmpl.ContentString())
	}
	if diff := cmp.Diff(map[string]any{"a": 1, "b": 2}, tmpl.Locals); diff != "" {
		t.Fatalf("locals mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_VinylMode(t *testing.T) {
	l := newLoader(loader.WithVinylMode(true))
	got, err := l.Load("pages/about.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	file := got["pages/about.md"].File
	if file == nil || file.Base != "pages" || file.Cwd != "site" || string(file.Contents) != "About us" {
		t.Fatalf("unexpected vinyl file %#v", file)
	}
}

func TestSet(t *testing.T) {
	l := newLoader()
	tmpl, err := l.Set("greeting", "Hello {{name}}", map[string]any{"name": "Jon"})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	want := &template.Template{
		Path:    "greeting",
		Content: template.String("Hello {{name}}"),
		Locals:  map[string]any{"name": "Jon"},
	}
	if diff := cmp.Diff(want, tmpl); diff != "" {
		t.Fatalf("template mismatch (-want +got):\n%s", diff)
	}

	if _, err := l.Set("layout", map[string]any{"path": "layouts/base.html"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	layout, ok := l.Get("layout")
	if !ok || layout.ContentString() != "<main>{{body}}</main>" {
		t.Fatalf("expected layout read from disk, got %#v", layout)
	}

	if _, err := l.Set("broken", nil); !errors.Is(err, template.ErrMissingContent) {
		t.Fatalf("expected missing content, got %v", err)
	}
}

func TestCacheOperations(t *testing.T) {
	l := newLoader()
	if _, err := l.Load(map[string]any{"b": "2", "a": "1"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Len() != 2 || !l.Has("a") || l.Has("c") {
		t.Fatalf("unexpected cache state %v", l.Keys())
	}
	if !l.Delete("a") || l.Delete("a") {
		t.Fatalf("delete should report whether the key existed")
	}

	snapshot := l.Templates()
	delete(snapshot, "b")
	if !l.Has("b") {
		t.Fatalf("Templates must return a copy")
	}
}

func TestLoader_ConcurrentAccess(t *testing.T) {
	l := newLoader()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("t%d.md", i)
			if _, err := l.Load(key, "x"); err != nil {
				t.Errorf("load %s: %v", key, err)
				return
			}
			if _, ok := l.Get(key); !ok {
				t.Errorf("missing %s", key)
			}
			_ = l.Keys()
		}(i)
	}
	wg.Wait()
	if l.Len() != 8 {
		t.Fatalf("expected 8 templates, got %d", l.Len())
	}
}
