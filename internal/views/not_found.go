package views

import "html/template"

type notFoundData struct {
	Header template.HTML
	Path   string
}

// NotFound renders the 404 page for the requested path.
func NotFound(path string) ([]byte, error) {
	body, err := Render("not_found", notFoundData{Header: headerHTML(), Path: path})
	if err != nil {
		return nil, err
	}
	return Document("Seite nicht gefunden", body)
}
