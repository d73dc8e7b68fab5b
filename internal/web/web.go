// Package web renders the landing page.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/zharpizza/landing/internal/catalog"
	"github.com/zharpizza/landing/internal/session"
	"github.com/zharpizza/landing/internal/wizard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is everything the landing template needs for one render.
type Page struct {
	Content Content
	Menu    []catalog.Product
	User    *session.Credential
	Wizard  wizard.View
	// CodeHint, when set, is printed on the code step for testing.
	CodeHint string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("web").Funcs(template.FuncMap{
		"rub": formatRubles,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderPage writes the full landing page.
func (r *Renderer) RenderPage(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "page.html", p)
}

func formatRubles(amount int) string {
	return fmt.Sprintf("%d ₽", amount)
}
