// Package render is the templating boundary: handlers hand over a view name
// and a data map and never format HTML themselves.
package render

import (
	"fmt"
	"html/template"
	"net/http"
)

type Renderer interface {
	Render(w http.ResponseWriter, view string, data map[string]any) error
}

// HTMLRenderer renders html/template files parsed once at startup. View
// "profile" maps to profile.html.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer(glob string) (*HTMLRenderer, error) {
	tmpl, err := template.ParseGlob(glob)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(w http.ResponseWriter, view string, data map[string]any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return r.tmpl.ExecuteTemplate(w, view+".html", data)
}
