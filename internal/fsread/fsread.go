// Package fsread provides the default read and stat collaborators, backed by
// either the operating system or an fs.FS.
package fsread

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Reader resolves template paths relative to a working directory.
type Reader struct {
	fsys fs.FS
	cwd  string
}

// New constructs a Reader. When fsys is nil the operating system is used and
// cwd is a native directory; otherwise cwd is a slash-separated directory
// inside fsys.
func New(fsys fs.FS, cwd string) *Reader {
	return &Reader{fsys: fsys, cwd: cwd}
}

// Read implements source.ReadFunc.
func (r *Reader) Read(name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	var (
		data []byte
		err  error
	)
	if r.fsys == nil {
		data, err = os.ReadFile(r.osPath(name))
	} else {
		resolved, ok := r.fsPath(name)
		if !ok {
			return "", false
		}
		data, err = fs.ReadFile(r.fsys, resolved)
	}
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Stat implements source.StatFunc.
func (r *Reader) Stat(name string) (fs.FileInfo, error) {
	if r.fsys == nil {
		return os.Stat(r.osPath(name))
	}
	resolved, ok := r.fsPath(name)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	return fs.Stat(r.fsys, resolved)
}

func (r *Reader) osPath(name string) string {
	if filepath.IsAbs(name) || r.cwd == "" {
		return name
	}
	return filepath.Join(r.cwd, name)
}

func (r *Reader) fsPath(name string) (string, bool) {
	joined := path.Clean(path.Join(r.cwd, filepath.ToSlash(name)))
	joined = strings.TrimPrefix(joined, "/")
	if joined == "" {
		joined = "."
	}
	if !fs.ValidPath(joined) {
		return "", false
	}
	return joined, true
}
