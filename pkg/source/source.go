package source

import "io/fs"

// ReadFunc returns the raw content stored at path. ok is false when the file
// is missing or unreadable; a missing file is never an error.
type ReadFunc func(path string) (content string, ok bool)

// StatFunc describes the file stored at path. It backs vinyl mode.
type StatFunc func(path string) (fs.FileInfo, error)

// Parsed is the result of splitting front matter from a document body.
type Parsed struct {
	Content string
	Data    map[string]any

	// Matter holds the raw front-matter block, empty when the document had
	// none.
	Matter string
}

// HasMatter reports whether a front-matter block was found.
func (p Parsed) HasMatter() bool {
	return p.Matter != "" || len(p.Data) > 0
}

// ParseFunc splits raw into body and front-matter data. A malformed
// front-matter block is reported as an error.
type ParseFunc func(raw string) (Parsed, error)

// GlobFunc expands pattern relative to cwd and returns matching paths
// relative to cwd, sorted.
type GlobFunc func(pattern, cwd string) ([]string, error)

// NoParse is a ParseFunc that returns raw untouched.
func NoParse(raw string) (Parsed, error) {
	return Parsed{Content: raw}, nil
}
