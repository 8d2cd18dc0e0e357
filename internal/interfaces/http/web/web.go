// Package web holds the storefront's server-rendered pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// Funcs are the helpers available to every page
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"mediaURL": func(key string) string {
			if key == "" {
				return ""
			}
			return "/media/" + strings.TrimPrefix(key, "/")
		},
		"field": func(fields map[string]string, name string) string { return fields[name] },
	}
}

// Templates parses every page, addressed by file name such as "home.html".
// An empty dir uses the pages compiled into the binary.
func Templates(dir string) (*template.Template, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
