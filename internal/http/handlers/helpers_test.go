package handlers

import "html/template"

// The real templates are embedded one package up; tests parse them straight
// from disk so rendering failures surface here instead of at runtime.
func testTemplates() *template.Template {
	return template.Must(template.New("").ParseGlob("../templates/*.html"))
}
