// Package views renders the site's HTML from the embedded templates.
package views

import (
	"bytes"
	"fmt"
	"html/template"

	"richli-site/templates"
)

// pages is parsed once; a broken embedded template is a build defect.
var pages = template.Must(template.New("pages").ParseFS(templates.FS, "*.html"))

// Render executes the named template into a new buffer
func Render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func mustRender(name string, data any) []byte {
	out, err := Render(name, data)
	if err != nil {
		panic(err)
	}
	return out
}

type documentData struct {
	Title string
	Body  template.HTML
}

// Document wraps a rendered fragment in the shared HTML5 layout
func Document(title string, body []byte) ([]byte, error) {
	return Render("layout", documentData{Title: title, Body: template.HTML(body)})
}
