package attendees

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed templates/site.css
var siteCSS []byte

const (
	TemplateRegister     = "register.tmpl"
	TemplateConfirmation = "confirmation.tmpl"
)

// ParseTemplates parses the embedded page templates
func ParseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(embeddedTemplates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return tmpl, nil
}
