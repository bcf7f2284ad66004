package ui

import (
	"fmt"
	"html/template"
	"io"
)

// pages lists every renderable template under templates/. Each one is
// parsed together with the shared layout.
var pages = []string{
	"index.html",
	"view.html",
	"create.html",
	"edit.html",
	"delete.html",
	"login.html",
	"signup.html",
	"notfound.html",
	"error.html",
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates. Parsing happens once at
// startup so a broken template fails the process early instead of a
// request.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.ParseFS(Templates, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Render executes the named page template with data into w.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
