// Package testsupport holds helpers shared by loader tests: loading with
// failure reporting and JSON golden snapshots of template caches.
package testsupport

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jonschlinkert/load-templates-sub000/internal/encode"
	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// MustLoad runs l.Load and fails the test on error.
func MustLoad(t *testing.T, l *loader.Loader, args ...any) map[string]*template.Template {
	t.Helper()

	loaded, err := l.Load(args...)
	if err != nil {
		t.Fatalf("load %v: %v", args, err)
	}
	return loaded
}

// TemplatesJSON renders templates the way the command line tool prints them.
func TemplatesJSON(t *testing.T, templates map[string]*template.Template) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := encode.Encode(&buf, encode.JSON, templates); err != nil {
		t.Fatalf("encode templates: %v", err)
	}
	return buf.Bytes()
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareJSON decodes both documents and returns a diff of their values, so
// key order and escaping do not matter.
func CompareJSON(t *testing.T, want, got []byte) string {
	t.Helper()

	var wantValue, gotValue any
	if err := json.Unmarshal(want, &wantValue); err != nil {
		t.Fatalf("decode want: %v", err)
	}
	if err := json.Unmarshal(got, &gotValue); err != nil {
		t.Fatalf("decode got: %v", err)
	}
	return cmp.Diff(wantValue, gotValue)
}
