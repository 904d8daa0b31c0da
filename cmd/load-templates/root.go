package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonschlinkert/load-templates-sub000/internal/config"
	"github.com/jonschlinkert/load-templates-sub000/internal/encode"
	"github.com/jonschlinkert/load-templates-sub000/internal/logging"
	"github.com/jonschlinkert/load-templates-sub000/pkg/loader"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

func newRootCmd(p picker) *cobra.Command {
	var (
		configPath string
		cwd        string
		noParse    bool
		withExt    bool
		vinyl      bool
		rootKeys   []string
		locals     map[string]string
		format     string
		rename     string
		sanitize   string
		pick       bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "load-templates [patterns...]",
		Short: "Load templates and print them normalized",
		Long: `Load templates from paths or glob patterns and print the normalized
cache, keyed by template key.

Flags override the configuration file.

Examples:
  load-templates "pages/**/*.md"                # JSON to stdout
  load-templates --cwd site --format yaml "*.hbs"
  load-templates --config templates.yaml --pick  # choose templates interactively
  load-templates --locals site=docs --with-ext=false "pages/*.md"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("cwd") {
				cfg.Cwd = cwd
			}
			if flags.Changed("no-parse") {
				cfg.NoParse = noParse
			}
			if flags.Changed("with-ext") {
				cfg.WithExt = &withExt
			}
			if flags.Changed("vinyl") {
				cfg.VinylMode = vinyl
			}
			if flags.Changed("root-key") {
				cfg.RootKeys = append([]string{}, rootKeys...)
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("rename") {
				cfg.Rename = rename
			}
			if flags.Changed("sanitize") {
				cfg.Sanitize = sanitize
			}
			for key, value := range locals {
				if cfg.Locals == nil {
					cfg.Locals = make(map[string]any, len(locals))
				}
				cfg.Locals[key] = value
			}
			if len(args) > 0 {
				cfg.Patterns = args
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if len(cfg.Patterns) == 0 {
				return fmt.Errorf("at least one path or pattern is required")
			}

			logger := logging.New(cmd.ErrOrStderr(), verbose)
			l := loader.New(append(cfg.LoaderOptions(), loader.WithLogger(logger))...)
			for _, pattern := range cfg.Patterns {
				if _, err := l.Load(pattern); err != nil {
					return err
				}
			}

			templates := l.Templates()
			if pick {
				if templates, err = pickTemplates(cmd, p, l.Keys(), templates); err != nil {
					return err
				}
			}

			out, err := encode.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			return encode.Encode(cmd.OutOrStdout(), out, templates)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "configuration file (yaml or toml)")
	flags.StringVar(&cwd, "cwd", "", "directory paths and patterns resolve against")
	flags.BoolVar(&noParse, "no-parse", false, "disable front-matter parsing")
	flags.BoolVar(&withExt, "with-ext", true, "keep file extensions in template keys")
	flags.BoolVar(&vinyl, "vinyl", false, "attach file objects to templates")
	flags.StringSliceVar(&rootKeys, "root-key", nil, "replace the root-key set (repeatable)")
	flags.StringToStringVar(&locals, "locals", nil, "locals applied to every template (key=value)")
	flags.StringVarP(&format, "format", "f", string(encode.JSON), "output format: json, yaml, toml or cbor")
	flags.StringVar(&rename, "rename", "", "key templates by path, basename or stem")
	flags.StringVar(&sanitize, "sanitize", "", "sanitize content with the ugc or svg policy")
	flags.BoolVar(&pick, "pick", false, "choose which templates to print")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log loading details to stderr")
	return cmd
}

func pickTemplates(cmd *cobra.Command, p picker, keys []string, templates map[string]*template.Template) (map[string]*template.Template, error) {
	if len(keys) == 0 {
		return templates, nil
	}
	chosen, err := p.Pick(cmd.Context(), "Templates to print", keys)
	if err != nil {
		return nil, err
	}
	picked := make(map[string]*template.Template, len(chosen))
	for _, key := range chosen {
		if tmpl, ok := templates[key]; ok {
			picked[key] = tmpl
		}
	}
	return picked, nil
}
