// Package config loads the command line tool configuration from YAML or TOML
// files and turns it into loader options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jonschlinkert/load-templates-sub000/internal/encode"
	"github.com/jonschlinkert/load-templates-sub000/pkg/hooks"
	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
)

// Valid enum values for configuration fields.
var (
	ValidSanitizers = []string{"ugc", "svg"}
	ValidRenamers   = []string{"path", "basename", "stem"}
)

// Config holds the load-templates command configuration.
type Config struct {
	Cwd       string         `yaml:"cwd" toml:"cwd"`
	Patterns  []string       `yaml:"patterns" toml:"patterns"`
	RootKeys  []string       `yaml:"rootKeys" toml:"rootKeys"`
	WithExt   *bool          `yaml:"withExt" toml:"withExt"`
	NoParse   bool           `yaml:"noparse" toml:"noparse"`
	VinylMode bool           `yaml:"vinylMode" toml:"vinylMode"`
	Rename    string         `yaml:"rename" toml:"rename"`
	Sanitize  string         `yaml:"sanitize" toml:"sanitize"`
	Format    string         `yaml:"format" toml:"format"`
	Locals    map[string]any `yaml:"locals" toml:"locals"`
	Options   map[string]any `yaml:"options" toml:"options"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{Format: string(encode.JSON)}
}

// Load reads the file at path. TOML is used for ".toml" files, YAML otherwise.
// An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Format == "" {
		cfg.Format = string(encode.JSON)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks enum fields.
func (c Config) Validate() error {
	if err := validateEnum(c.Sanitize, "sanitize", ValidSanitizers); err != nil {
		return err
	}
	if err := validateEnum(c.Rename, "rename", ValidRenamers); err != nil {
		return err
	}
	if _, err := encode.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// LoaderOptions translates the configuration into loader options.
func (c Config) LoaderOptions() []loader.Option {
	opts := []loader.Option{
		loader.WithCwd(c.Cwd),
		loader.WithNoParse(c.NoParse),
		loader.WithVinylMode(c.VinylMode),
	}
	if c.RootKeys != nil {
		opts = append(opts, loader.WithRootKeys(c.RootKeys...))
	}
	if c.WithExt != nil {
		opts = append(opts, loader.WithExt(*c.WithExt))
	}
	if len(c.Locals) > 0 {
		opts = append(opts, loader.WithLocals(c.Locals))
	}
	if len(c.Options) > 0 {
		opts = append(opts, loader.WithOptions(c.Options))
	}
	switch c.Rename {
	case "basename":
		opts = append(opts, loader.WithRenameKey(loader.Basename))
	case "stem":
		opts = append(opts, loader.WithRenameKey(loader.Stem))
	}
	switch c.Sanitize {
	case "ugc":
		opts = append(opts, loader.WithOnLoad(hooks.SanitizeUGC()))
	case "svg":
		opts = append(opts, loader.WithOnLoad(hooks.Sanitize(hooks.SVGPolicy())))
	}
	return opts
}

func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		quoted := make([]string, len(allowed))
		for i, o := range allowed {
			quoted[i] = fmt.Sprintf("%q", o)
		}
		return fmt.Errorf("config: invalid %s %q: must be one of %s", field, value, strings.Join(quoted, ", "))
	}
	return nil
}
