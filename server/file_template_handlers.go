package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFiles embed.FS

// ParseTemplate parses one page from the embedded templates directory
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(templateFiles, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return template.New(name).Parse(string(content))
}

func mustTemplate(name string) *template.Template {
	return template.Must(ParseTemplate(name))
}

// renderHTML executes tmpl into a buffer so a failing template never leaves a half written page
func renderHTML(w http.ResponseWriter, status int, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
