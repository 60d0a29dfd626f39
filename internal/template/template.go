// Package template renders notification message bodies from embedded
// Go templates.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"
)

//go:embed mail/*.tmpl
var mailTemplates embed.FS

// Data contains the fields notification templates may reference.
type Data struct {
	Lineage string
	Version int
	Names   []string
	Expiry  time.Time
	Host    string
}

// Render renders the named mail template (renewed, deployed) with data.
func Render(name string, data Data) (string, error) {
	content, err := mailTemplates.ReadFile(fmt.Sprintf("mail/%s.tmpl", name))
	if err != nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	funcMap := template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "unknown"
			}
			return t.UTC().Format("2006-01-02 15:04 MST")
		},
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
