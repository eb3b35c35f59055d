// Package templates holds the HTML pages served by the service. The files are
// embedded so the binary has no runtime dependency on the working directory.
package templates

import (
	"embed"
	"html/template"
)

// IndexTemplate is the name of the page carrying the feedback form.
const IndexTemplate = "index.html"

//go:embed *.html
var files embed.FS

// Load parses every embedded page into a single template set.
func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
