package collection

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
)

func TestRegistry_CreateAndResolve(t *testing.T) {
	r := NewRegistry()
	pages, err := r.Create("pages")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pages.Singular() != "page" || pages.Name() != "pages" {
		t.Fatalf("unexpected names %q/%q", pages.Name(), pages.Singular())
	}
	if _, err := r.Create("layouts", WithSingular("layout-file")); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, name := range []string{"pages", "page", "layouts", "layout-file"} {
		if !r.Has(name) {
			t.Fatalf("expected %q to resolve", name)
		}
	}
	if r.Has("layout") {
		t.Fatalf("overridden singular must not resolve")
	}
	if diff := cmp.Diff([]string{"layouts", "pages"}, r.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_DuplicateNames(t *testing.T) {
	r := NewRegistry()
	r.MustCreate("pages")
	if _, err := r.Create("pages"); err == nil {
		t.Fatalf("expected duplicate plural error")
	}
	if _, err := r.Create("page"); err == nil {
		t.Fatalf("expected duplicate singular error")
	}
	if _, err := r.Create("  "); err == nil {
		t.Fatalf("expected empty name error")
	}
}

func TestRegistry_AddAndGet(t *testing.T) {
	fsys := fstest.MapFS{
		"views/partials/button.hbs": {Data: []byte("<button>{{label}}</button>")},
	}
	r := NewRegistry(loader.WithFileSystem(fsys), loader.WithCwd("views"))
	r.MustCreate("pages", WithLoaderOptions(loader.WithExt(false)))
	r.MustCreate("partials", WithLoaderOptions(loader.WithRenameKey(loader.Stem)))

	if _, err := r.Add("page", "home.md", "Home"); err != nil {
		t.Fatalf("add page: %v", err)
	}
	if _, err := r.Add("partials", "partials/*.hbs"); err != nil {
		t.Fatalf("add partials: %v", err)
	}

	home, err := r.Get("pages", "home")
	if err != nil {
		t.Fatalf("get home: %v", err)
	}
	if home.ContentString() != "Home" {
		t.Fatalf("unexpected content %q", home.ContentString())
	}
	button, err := r.Get("partial", "button")
	if err != nil {
		t.Fatalf("get button: %v", err)
	}
	if button.ContentString() != "<button>{{label}}</button>" {
		t.Fatalf("unexpected content %q", button.ContentString())
	}

	// collections are independent
	if _, err := r.Get("partials", "home"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected template not found, got %v", err)
	}
	if _, err := r.Add("layouts", "x"); !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("expected collection not found, got %v", err)
	}
	if _, err := r.Get("layouts", "x"); !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("expected collection not found, got %v", err)
	}
}
