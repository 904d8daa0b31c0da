package loader

import (
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/jonschlinkert/load-templates-sub000/internal/normalize"
	"github.com/jonschlinkert/load-templates-sub000/internal/rename"
	"github.com/jonschlinkert/load-templates-sub000/internal/sift"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// Loader normalizes template declarations and caches the results by key. The
// cache is safe for concurrent use; loads are not transactional with respect
// to each other.
type Loader struct {
	opts   Options
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// New constructs a Loader applying any provided options.
func New(options ...Option) *Loader {
	cfg := NewOptions(options...)
	return &Loader{
		opts:   cfg,
		logger: cfg.Logger,
		cache:  make(map[string]*template.Template),
	}
}

// Options returns a copy of the loader configuration.
func (l *Loader) Options() Options {
	return l.opts
}

// call is the configuration of a single Load or Set call.
type call struct {
	opts Options
	cfg  normalize.Config
}

// prepare sifts the trailing args and overlays their directives onto the
// constructor options. A rootKeys directive changes how args are sifted, so
// they are sifted again under the resolved set.
func (l *Loader) prepare(rest []any) (call, error) {
	roots := l.opts.roots()
	result, err := sift.Sift(rest, roots)
	if err != nil {
		return call{}, fmt.Errorf("loader: %w", err)
	}
	found := extractDirectives(&result)
	opts, err := l.opts.resolve(found)
	if err != nil {
		return call{}, err
	}
	if _, ok := found[DirectiveRootKeys]; ok {
		roots = opts.roots()
		if result, err = sift.Sift(rest, roots); err != nil {
			return call{}, fmt.Errorf("loader: %w", err)
		}
		extractDirectives(&result)
	}
	return call{opts: opts, cfg: opts.normalizeConfig(roots, result)}, nil
}

// Load normalizes args into templates, caches them and returns the loaded
// templates by key. The first argument is a path, glob pattern, slice, map,
// function or *template.File; trailing args are content, locals, options or a
// bool forcing glob treatment.
//
// Load fails fast: on error nothing is cached. Later templates win on key
// collisions within one call.
func (l *Loader) Load(args ...any) (map[string]*template.Template, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("loader: %w", &template.InvalidInputError{Type: "nil"})
	}
	rest := args[1:]
	c, err := l.prepare(rest)
	if err != nil {
		return nil, err
	}

	templates, err := normalize.Normalize(c.cfg, args[0], rest)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	loaded := make(map[string]*template.Template, len(templates))
	for _, tmpl := range templates {
		if err := l.runOnLoad(c.opts, tmpl); err != nil {
			if c.opts.OnItemError != nil {
				l.logger.Warn("skipping template", "path", tmpl.Path, "error", err)
				c.opts.OnItemError(tmpl.Path, err)
				continue
			}
			return nil, err
		}
		key := rename.Key(tmpl, rename.Func(c.opts.RenameKey), c.opts.WithExt)
		loaded[key] = tmpl
	}

	l.mu.Lock()
	for key, tmpl := range loaded {
		l.store(key, tmpl, c.opts.MergeOnLoad)
	}
	l.mu.Unlock()

	l.logger.Debug("loaded templates", "count", len(loaded))
	return loaded, nil
}

// Set normalizes a single value and caches it under key verbatim. value is
// string content, a raw declaration map, a *template.File or a template.
func (l *Loader) Set(key string, value any, args ...any) (*template.Template, error) {
	c, err := l.prepare(args)
	if err != nil {
		return nil, err
	}
	tmpl, err := normalize.Single(c.cfg, key, value)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if err := l.runOnLoad(c.opts, tmpl); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.store(key, tmpl, c.opts.MergeOnLoad)
	l.mu.Unlock()
	return tmpl, nil
}

func (l *Loader) runOnLoad(opts Options, tmpl *template.Template) error {
	if opts.OnLoad == nil {
		return nil
	}
	if err := opts.OnLoad(tmpl); err != nil {
		return fmt.Errorf("loader: onLoad %q: %w", tmpl.Path, err)
	}
	return nil
}

// store writes tmpl under key. Callers hold the write lock.
func (l *Loader) store(key string, tmpl *template.Template, merge bool) {
	if existing, ok := l.cache[key]; ok && merge {
		tmpl.Locals = template.Merge(template.CloneMap(existing.Locals), tmpl.Locals)
		tmpl.Options = template.Merge(template.CloneMap(existing.Options), tmpl.Options)
		tmpl.Data = template.Merge(template.CloneMap(existing.Data), tmpl.Data)
	}
	l.cache[key] = tmpl
	l.logger.Debug("cached template", "key", key, "path", tmpl.Path)
}

// Get returns the template cached under key. When no entry matches exactly,
// key is treated as a path and the key derived from it is tried.
func (l *Loader) Get(key string) (*template.Template, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if tmpl, ok := l.cache[key]; ok {
		return tmpl, true
	}
	derived := rename.Key(&template.Template{Path: key}, rename.Func(l.opts.RenameKey), l.opts.WithExt)
	tmpl, ok := l.cache[derived]
	return tmpl, ok
}

// Has reports whether key resolves to a cached template.
func (l *Loader) Has(key string) bool {
	_, ok := l.Get(key)
	return ok
}

// Delete removes the entry cached under key, reporting whether one existed.
func (l *Loader) Delete(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.cache[key]; !ok {
		return false
	}
	delete(l.cache, key)
	return true
}

// Keys returns the cached keys in lexical order.
func (l *Loader) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return template.SortedKeys(l.cache)
}

// Len returns the number of cached templates.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cache)
}

// Templates returns a copy of the cache. Templates are shared with the cache.
func (l *Loader) Templates() map[string]*template.Template {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.cache)
}
