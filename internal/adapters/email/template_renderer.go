package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"path"
	"strings"
	texttemplate "text/template"

	"eventify/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

var templateFuncs = map[string]any{"join": strings.Join}

type executor interface {
	Execute(w io.Writer, data any) error
}

// templateRenderer holds every embedded template, parsed once. Files ending in .html are
// parsed with html/template for contextual escaping; the rest with text/template.
type templateRenderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses the embedded templates. It panics if they do not parse, which
// can only happen with a broken build.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		html: htmltemplate.Must(htmltemplate.New("html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")),
		text: texttemplate.Must(texttemplate.New("text").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.txt")),
	}
}

// Render executes <name>_subject.txt, <name>.html and <name>.txt with data.
func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	parts := []struct {
		label string
		file  string
		out   *string
	}{
		{"subject", name + "_subject.txt", &subject},
		{"html", name + ".html", &htmlBody},
		{"text", name + ".txt", &textBody},
	}
	for _, p := range parts {
		if *p.out, err = r.execute(p.file, data); err != nil {
			return "", "", "", fmt.Errorf("render %s: %w", p.label, err)
		}
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) lookup(file string) executor {
	if path.Ext(file) == ".html" {
		if t := r.html.Lookup(file); t != nil {
			return t
		}
		return nil
	}
	if t := r.text.Lookup(file); t != nil {
		return t
	}
	return nil
}

func (r *templateRenderer) execute(file string, data any) (string, error) {
	t := r.lookup(file)
	if t == nil {
		return "", fmt.Errorf("template %q not found", file)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
