// Package view turns handler view-models into HTML.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

// Template names. They match the page files under templates/.
const (
	Index      = "index.html"
	Register   = "register.html"
	Login      = "login.html"
	ToDoList   = "to_do_list.html"
	Posts      = "posts.html"
	PostDetail = "post_detail.html"
)

// Data is the view-model handed to a template.
type Data map[string]any

// Renderer writes the named template with data as the response body.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data Data) error
}

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}

// HTMLRenderer renders the embedded page templates, each wrapped in the
// shared layout.
type HTMLRenderer struct {
	pages map[string]*template.Template
}

// NewHTMLRenderer parses every page template up front.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{Index, Register, Login, ToDoList, Posts, PostDetail} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return &HTMLRenderer{pages: pages}, nil
}

// Render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (r *HTMLRenderer) Render(w http.ResponseWriter, status int, name string, data Data) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
