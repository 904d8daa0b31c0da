// Package normalize implements the dispatcher and the shape normalizers that
// turn a variadic load call into templates.
//
// The first argument is classified into an Input variant and routed:
//
//	String    → glob expansion, or one template keyed by the string
//	Slice     → every element with identical trailing args, left to right
//	Map       → one template declaration, or a key→value collection
//	Func      → called with the aggregated options, result re-dispatched
//	FileValue → passed through as one template
//
// Trailing args are sifted once per call by the caller; the sift result is
// carried in Config.Layers.Call and broadcast to every produced template.
package normalize

import (
	"fmt"
	"log/slog"

	"github.com/jonschlinkert/load-templates-sub000/internal/flatten"
	"github.com/jonschlinkert/load-templates-sub000/internal/logging"
	"github.com/jonschlinkert/load-templates-sub000/pkg/source"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// maxDepth bounds nested slices and functions returning further inputs.
const maxDepth = 32

// Config is the per-call configuration resolved by the loader.
type Config struct {
	Roots     template.RootKeys
	Cwd       string
	Read      source.ReadFunc
	Stat      source.StatFunc
	Parse     source.ParseFunc
	Glob      source.GlobFunc
	VinylMode bool

	// Layers carries constructor defaults plus the sifted call arguments.
	Layers flatten.Layers

	// FuncOptions is handed to function inputs.
	FuncOptions map[string]any

	// OnItemError, when set, receives errors of individual slice elements
	// and collection entries, which are then skipped instead of failing the
	// call.
	OnItemError func(key string, err error)

	Logger *slog.Logger
}

type normalizer struct {
	cfg    Config
	logger *slog.Logger
}

func newNormalizer(cfg Config) *normalizer {
	if cfg.Roots == nil {
		cfg.Roots = template.NewRootKeys(nil)
	}
	if cfg.Read == nil {
		cfg.Read = func(string) (string, bool) { return "", false }
	}
	return &normalizer{cfg: cfg, logger: logging.OrDiscard(cfg.Logger)}
}

// Normalize dispatches input with its trailing args and returns the produced
// templates in input order. Later templates win on key collisions.
func Normalize(cfg Config, input any, rest []any) ([]*template.Template, error) {
	return newNormalizer(cfg).dispatch(input, rest, 0)
}

// Single normalizes one value stored under key: string content, a template
// declaration, a file or a template. It backs direct cache writes.
func Single(cfg Config, key string, value any) (*template.Template, error) {
	return newNormalizer(cfg).entry(key, value, nil)
}

func (n *normalizer) dispatch(v any, rest []any, depth int) ([]*template.Template, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("normalize: inputs nested deeper than %d", maxDepth)
	}
	input, err := Classify(v)
	if err != nil {
		return nil, err
	}

	switch typed := input.(type) {
	case String:
		return n.fromString(string(typed), rest)
	case Slice:
		return n.fromSlice(typed, rest, depth)
	case Map:
		return n.fromMap(typed, "")
	case Func:
		out, err := typed(template.CloneMap(n.cfg.FuncOptions))
		if err != nil {
			return nil, fmt.Errorf("normalize: function input: %w", err)
		}
		return n.dispatch(out, rest, depth+1)
	case FileValue:
		tmpl, err := n.fromFile(typed.File, "")
		if err != nil {
			return nil, err
		}
		return []*template.Template{tmpl}, nil
	default:
		return nil, &template.InvalidInputError{Type: template.TypeName(v)}
	}
}

func (n *normalizer) fromSlice(items Slice, rest []any, depth int) ([]*template.Template, error) {
	var out []*template.Template
	for idx, item := range items {
		produced, err := n.dispatch(item, rest, depth+1)
		if err != nil {
			if n.isolate(fmt.Sprintf("[%d]", idx), err) {
				continue
			}
			return nil, err
		}
		out = append(out, produced...)
	}
	return out, nil
}

// isolate reports err to the item error handler, returning false when no
// handler is configured and the error must abort the call.
func (n *normalizer) isolate(key string, err error) bool {
	if n.cfg.OnItemError == nil {
		return false
	}
	n.logger.Warn("skipping template", "key", key, "error", err)
	n.cfg.OnItemError(key, err)
	return true
}
