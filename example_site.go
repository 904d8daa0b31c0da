package loadtemplates

import (
	"embed"
	"io/fs"
)

//go:embed examples/site
var embeddedExampleSite embed.FS

// ExampleSiteFS exposes the sample site under examples/site: pages with YAML
// and TOML front matter, a layout and an SVG partial.
//
//	l := loadtemplates.New(loader.WithFileSystem(loadtemplates.ExampleSiteFS()))
//	l.Load("pages/*.md")
func ExampleSiteFS() fs.FS {
	sub, err := fs.Sub(embeddedExampleSite, "examples/site")
	if err != nil {
		return embeddedExampleSite
	}
	return sub
}
