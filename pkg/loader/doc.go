// Package loader normalizes loosely shaped template declarations into
// canonical templates and caches them by key.
//
// A single Load call accepts any of these shapes as its first argument:
//
//	l.Load("a/b/c.md", "this is content.")           // path and literal content
//	l.Load("pages/**/*.md", map[string]any{"a": 1})  // glob with locals
//	l.Load(map[string]any{"home": map[string]any{"content": "..."}})
//	l.Load([]string{"a.md", "b.md"})
//	l.Load(func(opts map[string]any) any { return "a.md" })
//	l.Load(&template.File{Path: "a.md", Contents: data})
//
// Trailing maps are split into locals and options: a single map is locals, a
// second map is options, and maps wrapped in "locals" or "options" keys are
// routed explicitly and win over flat declarations. Recognised directives in
// the options map (cwd, rootKeys, renameKey, read, parse, glob, onLoad,
// withExt, vinylMode, noparse) configure the call and are not stored.
package loader
