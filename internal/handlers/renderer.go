package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"log"
	"net/http"

	"github.com/rishabh-adev/myfavmovies/internal/services"
)

//go:embed templates/*
var templatesFS embed.FS

// Renderer handles template rendering
type Renderer struct {
	funcs  template.FuncMap
	logger *log.Logger
}

// NewRenderer creates a new template renderer
func NewRenderer(images services.ImageLinker, logger *log.Logger) (*Renderer, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"poster": func(path string) string {
			return images.ImageURL(services.PosterSize, path)
		},
	}

	// Parse everything once so a broken template fails at startup
	if _, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html"); err != nil {
		return nil, err
	}

	return &Renderer{
		funcs:  funcMap,
		logger: logger,
	}, nil
}

// Render renders a page template wrapped in the layout
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, err := template.New("").Funcs(r.funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return err
	}

	return tmpl.ExecuteTemplate(w, name, data)
}

// RenderPage renders a page template and handles errors
func (r *Renderer) RenderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		r.logger.Printf("Failed to render template %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
