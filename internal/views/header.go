package views

import "html/template"

// Brand is the site name shown in the shared header.
const Brand = "Rahmenabkommen GPT"

type headerData struct {
	Brand string
}

// Header renders the shared page header. It takes no parameters.
func Header() []byte {
	return mustRender("header", headerData{Brand: Brand})
}

func headerHTML() template.HTML {
	return template.HTML(Header())
}
