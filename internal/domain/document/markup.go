package document

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/invoice.html.tmpl
var templateFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templateFS, "templates/invoice.html.tmpl"))

// RenderMarkup produce la página HTML completa del documento.
func RenderMarkup(doc *Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document: documento nil")
	}
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("document: ejecutar plantilla: %w", err)
	}
	return buf.String(), nil
}
