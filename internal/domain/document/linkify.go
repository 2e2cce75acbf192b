package document

import (
	"html/template"
	"regexp"
	"strings"
)

// Una URL termina en el primer espacio de cualquier tipo, incluidos NBSP,
// los separadores Unicode (Z) y el BOM.
var urlPattern = regexp.MustCompile(`https?://[^\s\v\p{Z}\x{FEFF}]+`)

// TextSegment un tramo de texto libre. Si URL no está vacía el tramo es un
// enlace y Text es su etiqueta visible.
type TextSegment struct {
	Text string
	URL  string
}

// IsLink indica si el tramo es un enlace.
func (s TextSegment) IsLink() bool { return s.URL != "" }

// SplitLinks parte el texto en tramos de texto plano y enlaces, en orden.
// La etiqueta de un enlace omite "https://" (no "http://").
func SplitLinks(text string) []TextSegment {
	if text == "" {
		return nil
	}
	var segs []TextSegment
	last := 0
	for _, m := range urlPattern.FindAllStringIndex(text, -1) {
		if m[0] > last {
			segs = append(segs, TextSegment{Text: text[last:m[0]]})
		}
		url := text[m[0]:m[1]]
		segs = append(segs, TextSegment{Text: strings.Replace(url, "https://", "", 1), URL: url})
		last = m[1]
	}
	if last < len(text) {
		segs = append(segs, TextSegment{Text: text[last:]})
	}
	return segs
}

// Linkify convierte cada URL http(s) del texto en un enlace. El resto del
// texto se escapa y se conserva tal cual.
func Linkify(text string) template.HTML {
	var b strings.Builder
	for _, s := range SplitLinks(text) {
		if !s.IsLink() {
			b.WriteString(template.HTMLEscapeString(s.Text))
			continue
		}
		b.WriteString(`<a href="`)
		b.WriteString(template.HTMLEscapeString(s.URL))
		b.WriteString(`" target="_blank">`)
		b.WriteString(template.HTMLEscapeString(s.Text))
		b.WriteString(`</a>`)
	}
	return template.HTML(b.String())
}
