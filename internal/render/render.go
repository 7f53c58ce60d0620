// Package render produces the human-readable message bodies. The pipeline
// treats rendered output as opaque; it only supplies substitution values.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Engine renders named templates with substitution values.
type Engine struct {
	templates *template.Template
}

// New parses the embedded template set.
func New() (*Engine, error) {
	t, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Engine{templates: t}, nil
}

// Render executes the named template. Unknown template names are an error,
// not a silent empty body.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
