package loader

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jonschlinkert/load-templates-sub000/internal/flatten"
	"github.com/jonschlinkert/load-templates-sub000/internal/frontmatter"
	"github.com/jonschlinkert/load-templates-sub000/internal/fsread"
	"github.com/jonschlinkert/load-templates-sub000/internal/glob"
	"github.com/jonschlinkert/load-templates-sub000/internal/logging"
	"github.com/jonschlinkert/load-templates-sub000/internal/normalize"
	"github.com/jonschlinkert/load-templates-sub000/internal/sift"
	"github.com/jonschlinkert/load-templates-sub000/pkg/source"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// Call-level directives recognised inside the options map of a Load call.
// They configure the call and are never stored on templates.
const (
	DirectiveCwd       = "cwd"
	DirectiveRootKeys  = "rootKeys"
	DirectiveRenameKey = "renameKey"
	DirectiveRead      = "read"
	DirectiveParse     = "parse"
	DirectiveGlob      = "glob"
	DirectiveOnLoad    = "onLoad"
	DirectiveWithExt   = "withExt"
	DirectiveVinylMode = "vinylMode"
	DirectiveNoParse   = "noparse"
)

var directives = []string{
	DirectiveCwd,
	DirectiveRootKeys,
	DirectiveRenameKey,
	DirectiveRead,
	DirectiveParse,
	DirectiveGlob,
	DirectiveOnLoad,
	DirectiveWithExt,
	DirectiveVinylMode,
	DirectiveNoParse,
}

// RenameFunc computes the cache key of a template. An empty result falls back
// to the default key.
type RenameFunc func(t *template.Template) string

// OnLoadFunc runs against every normalized template before it is keyed and
// cached. Returning an error aborts the load.
type OnLoadFunc func(t *template.Template) error

// Options configures a Loader. Use NewOptions to obtain the defaults.
type Options struct {
	Cwd        string
	FileSystem fs.FS

	// RootKeys overrides the root-key set. nil keeps the default set; an
	// empty, non-nil slice leaves only the structural keys.
	RootKeys []string

	RenameKey RenameFunc
	Read      source.ReadFunc
	Parse     source.ParseFunc
	Glob      source.GlobFunc
	OnLoad    OnLoadFunc

	WithExt     bool
	VinylMode   bool
	NoParse     bool
	MergeOnLoad bool

	// Locals and Options are the lowest-precedence layer applied to every
	// template.
	Locals  map[string]any
	Options map[string]any

	OnItemError func(key string, err error)
	Logger      *slog.Logger
}

// Option customises loader options.
type Option func(*Options)

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	cfg := Options{WithExt: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	cfg.Logger = logging.OrDiscard(cfg.Logger)
	return cfg
}

// WithCwd sets the directory relative paths and globs resolve against.
func WithCwd(dir string) Option {
	return func(o *Options) {
		o.Cwd = dir
	}
}

// WithFileSystem reads and globs from fsys instead of the operating system.
// Cwd is then a slash-separated directory inside fsys.
func WithFileSystem(fsys fs.FS) Option {
	return func(o *Options) {
		o.FileSystem = fsys
	}
}

// WithRootKeys replaces the root-key set. Calling it without keys keeps only
// path, content, locals and options at the root.
func WithRootKeys(keys ...string) Option {
	return func(o *Options) {
		o.RootKeys = append([]string{}, keys...)
	}
}

// WithRenameKey sets the function deriving cache keys.
func WithRenameKey(fn RenameFunc) Option {
	return func(o *Options) {
		o.RenameKey = fn
	}
}

// WithReader replaces the file read collaborator.
func WithReader(fn source.ReadFunc) Option {
	return func(o *Options) {
		o.Read = fn
	}
}

// WithParser replaces the front-matter parser.
func WithParser(fn source.ParseFunc) Option {
	return func(o *Options) {
		o.Parse = fn
	}
}

// WithGlobber replaces the glob expansion collaborator.
func WithGlobber(fn source.GlobFunc) Option {
	return func(o *Options) {
		o.Glob = fn
	}
}

// WithOnLoad registers a hook run against every loaded template.
func WithOnLoad(fn OnLoadFunc) Option {
	return func(o *Options) {
		o.OnLoad = fn
	}
}

// WithExt controls whether default keys keep the file extension.
func WithExt(keep bool) Option {
	return func(o *Options) {
		o.WithExt = keep
	}
}

// WithVinylMode attaches a File object to every loaded template.
func WithVinylMode(enabled bool) Option {
	return func(o *Options) {
		o.VinylMode = enabled
	}
}

// WithNoParse disables front-matter parsing.
func WithNoParse(disabled bool) Option {
	return func(o *Options) {
		o.NoParse = disabled
	}
}

// WithLocals sets locals applied beneath every template's own locals.
func WithLocals(locals map[string]any) Option {
	return func(o *Options) {
		o.Locals = template.CloneMap(locals)
	}
}

// WithOptions sets options applied beneath every template's own options.
func WithOptions(options map[string]any) Option {
	return func(o *Options) {
		o.Options = template.CloneMap(options)
	}
}

// WithItemErrorHandler isolates failures of individual slice elements and
// collection entries: fn receives the error and the item is skipped.
func WithItemErrorHandler(fn func(key string, err error)) Option {
	return func(o *Options) {
		o.OnItemError = fn
	}
}

// WithMergeOnLoad merges locals, options and data of an existing cache entry
// beneath a newly loaded template stored under the same key.
func WithMergeOnLoad(enabled bool) Option {
	return func(o *Options) {
		o.MergeOnLoad = enabled
	}
}

// WithLogger sets the structured logger. Loading is silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// extractDirectives removes the recognised directives from the call-level
// options. Nested options win over flat ones.
func extractDirectives(call *sift.Result) map[string]any {
	var found map[string]any
	for _, src := range []map[string]any{call.Options, call.NestedOptions} {
		for _, name := range directives {
			value, ok := src[name]
			if !ok {
				continue
			}
			if found == nil {
				found = make(map[string]any, len(directives))
			}
			found[name] = value
			delete(src, name)
		}
	}
	if len(call.Options) == 0 {
		call.Options = nil
	}
	if len(call.NestedOptions) == 0 {
		call.NestedOptions = nil
	}
	return found
}

// resolve overlays call-level directives onto a copy of o.
func (o Options) resolve(found map[string]any) (Options, error) {
	for _, name := range template.SortedKeys(found) {
		value := found[name]
		var ok bool
		switch name {
		case DirectiveCwd:
			o.Cwd, ok = value.(string)
		case DirectiveRootKeys:
			o.RootKeys, ok = stringList(value)
		case DirectiveRenameKey:
			o.RenameKey, ok = renameFunc(value)
		case DirectiveRead:
			o.Read, ok = readFunc(value)
		case DirectiveParse:
			o.Parse, ok = parseFunc(value)
		case DirectiveGlob:
			o.Glob, ok = globFunc(value)
		case DirectiveOnLoad:
			o.OnLoad, ok = onLoadFunc(value)
		case DirectiveWithExt:
			o.WithExt, ok = value.(bool)
		case DirectiveVinylMode:
			o.VinylMode, ok = value.(bool)
		case DirectiveNoParse:
			o.NoParse, ok = value.(bool)
		}
		if !ok {
			return Options{}, fmt.Errorf("loader: options: %w", &template.TypeError{
				Key:  name,
				Type: template.TypeName(value),
				Want: "a valid " + name + " directive",
			})
		}
	}
	return o, nil
}

func (o Options) roots() template.RootKeys {
	return template.NewRootKeys(o.RootKeys)
}

// normalizeConfig wires the default collaborators for anything o leaves
// unset.
func (o Options) normalizeConfig(roots template.RootKeys, call sift.Result) normalize.Config {
	reader := fsread.New(o.FileSystem, o.Cwd)
	cfg := normalize.Config{
		Roots:     roots,
		Cwd:       o.Cwd,
		Read:      o.Read,
		Stat:      reader.Stat,
		Parse:     o.Parse,
		Glob:      o.Glob,
		VinylMode: o.VinylMode,
		Layers: flatten.Layers{
			Locals:  o.Locals,
			Options: o.Options,
			Call:    call,
		},
		FuncOptions: template.Merge(nil, o.Options, call.MergedOptions()),
		OnItemError: o.OnItemError,
		Logger:      o.Logger,
	}
	if cfg.Read == nil {
		cfg.Read = reader.Read
	}
	if cfg.Parse == nil {
		cfg.Parse = frontmatter.Parse
	}
	if o.NoParse {
		cfg.Parse = source.NoParse
	}
	if cfg.Glob == nil {
		cfg.Glob = glob.New(o.FileSystem).Expand
	}
	return cfg
}

func stringList(value any) ([]string, bool) {
	switch typed := value.(type) {
	case []string:
		return append([]string{}, typed...), true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func renameFunc(value any) (RenameFunc, bool) {
	switch typed := value.(type) {
	case RenameFunc:
		return typed, true
	case func(*template.Template) string:
		return typed, true
	default:
		return nil, false
	}
}

func readFunc(value any) (source.ReadFunc, bool) {
	switch typed := value.(type) {
	case source.ReadFunc:
		return typed, true
	case func(string) (string, bool):
		return typed, true
	default:
		return nil, false
	}
}

func parseFunc(value any) (source.ParseFunc, bool) {
	switch typed := value.(type) {
	case source.ParseFunc:
		return typed, true
	case func(string) (source.Parsed, error):
		return typed, true
	default:
		return nil, false
	}
}

func globFunc(value any) (source.GlobFunc, bool) {
	switch typed := value.(type) {
	case source.GlobFunc:
		return typed, true
	case func(string, string) ([]string, error):
		return typed, true
	default:
		return nil, false
	}
}

func onLoadFunc(value any) (OnLoadFunc, bool) {
	switch typed := value.(type) {
	case OnLoadFunc:
		return typed, true
	case func(*template.Template) error:
		return typed, true
	default:
		return nil, false
	}
}
