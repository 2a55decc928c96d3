package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/ruteri/audit-book-client/session"
)

//go:embed templates/*.html
var templates embed.FS

// Page is the data the panel page is rendered from.
type Page struct {
	Contract string
	State    session.Snapshot
	Panels   PanelSet
}

// Renderer renders the panel page.
type Renderer struct {
	tmpl     *template.Template
	contract string
}

func NewRenderer(contract string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, contract: contract}, nil
}

func (r *Renderer) Render(w io.Writer, s session.Snapshot) error {
	return r.tmpl.Execute(w, Page{
		Contract: r.contract,
		State:    s,
		Panels:   Panels(s),
	})
}
