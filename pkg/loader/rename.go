package loader

import (
	"github.com/jonschlinkert/load-templates-sub000/internal/rename"
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// Basename keys templates by the last element of their path.
func Basename(t *template.Template) string {
	return rename.Basename(t)
}

// Stem keys templates by the last element of their path, without extension.
func Stem(t *template.Template) string {
	return rename.Stem(t)
}

// RelativeTo keys templates by their path relative to dir.
func RelativeTo(dir string) RenameFunc {
	return RenameFunc(rename.RelativeTo(dir))
}
