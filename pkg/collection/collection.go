// Package collection groups loaders into named template collections such as
// "pages" or "layouts", addressable by plural or singular name.
package collection

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

var (
	// ErrCollectionNotFound is returned for names matching no collection.
	ErrCollectionNotFound = errors.New("collection: not found")
	// ErrTemplateNotFound is returned when a collection has no template under
	// the requested key.
	ErrTemplateNotFound = errors.New("collection: template not found")
)

// Collection is a named loader.
type Collection struct {
	plural   string
	singular string
	loader   *loader.Loader
}

// Name returns the plural name.
func (c *Collection) Name() string { return c.plural }

// Singular returns the singular name.
func (c *Collection) Singular() string { return c.singular }

// Loader exposes the underlying loader.
func (c *Collection) Loader() *loader.Loader { return c.loader }

// Add loads templates into the collection. See loader.Loader.Load.
func (c *Collection) Add(args ...any) (map[string]*template.Template, error) {
	loaded, err := c.loader.Load(args...)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", c.plural, err)
	}
	return loaded, nil
}

// Get returns the template cached under key.
func (c *Collection) Get(key string) (*template.Template, bool) {
	return c.loader.Get(key)
}

type config struct {
	singular string
	options  []loader.Option
}

// Option customises a collection at creation time.
type Option func(*config)

// WithSingular overrides the singular name, which defaults to the plural name
// without its trailing "s".
func WithSingular(name string) Option {
	return func(c *config) {
		c.singular = name
	}
}

// WithLoaderOptions appends loader options applied after the registry base
// options.
func WithLoaderOptions(options ...loader.Option) Option {
	return func(c *config) {
		c.options = append(c.options, options...)
	}
}

// Registry stores collections by plural name and resolves singular aliases.
type Registry struct {
	mu          sync.RWMutex
	base        []loader.Option
	collections map[string]*Collection
	aliases     map[string]string
}

// NewRegistry creates an empty registry. base options apply to every
// collection loader.
func NewRegistry(base ...loader.Option) *Registry {
	return &Registry{
		base:        append([]loader.Option(nil), base...),
		collections: make(map[string]*Collection),
		aliases:     make(map[string]string),
	}
}

// Create registers a new collection. Names already used as a plural or a
// singular return an error.
func (r *Registry) Create(plural string, opts ...Option) (*Collection, error) {
	plural = strings.TrimSpace(plural)
	if plural == "" {
		return nil, fmt.Errorf("collection: name is required")
	}
	cfg := config{singular: strings.TrimSuffix(plural, "s")}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.singular == "" {
		cfg.singular = plural
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range []string{plural, cfg.singular} {
		if _, exists := r.aliases[name]; exists {
			return nil, fmt.Errorf("collection: %q already registered", name)
		}
	}

	options := append(append([]loader.Option(nil), r.base...), cfg.options...)
	c := &Collection{
		plural:   plural,
		singular: cfg.singular,
		loader:   loader.New(options...),
	}
	r.collections[plural] = c
	r.aliases[plural] = plural
	r.aliases[cfg.singular] = plural
	return c, nil
}

// MustCreate panics on creation failure. Useful for init-time wiring.
func (r *Registry) MustCreate(plural string, opts ...Option) *Collection {
	c, err := r.Create(plural, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup resolves a collection by plural or singular name.
func (r *Registry) Lookup(name string) (*Collection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plural, ok := r.aliases[name]
	if !ok {
		return nil, false
	}
	return r.collections[plural], true
}

// Add loads templates into the named collection.
func (r *Registry) Add(name string, args ...any) (map[string]*template.Template, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, name)
	}
	return c.Add(args...)
}

// Get returns the template cached under key in the named collection.
func (r *Registry) Get(name, key string) (*template.Template, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, name)
	}
	tmpl, ok := c.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrTemplateNotFound, c.plural, key)
	}
	return tmpl, nil
}

// Names returns the plural collection names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name resolves to a collection.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}
