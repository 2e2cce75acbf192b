// Package pdf renderiza el documento de la factura de forma nativa con
// Maroto v2, sin navegador.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: emisor + contacto   │  fecha / vence / N° / inicio  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre + Name / Title / Email / Phone              │
//	│  TABLA: Producto | Descripción | Precio | Cant | Term | Total│
//	│  TOTALES: alineados a la derecha                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TÉRMINOS + NOTA + CONTACTO                                  │
//	│  FIRMAS: dos bloques                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
	"github.com/jhoicas/invoice-renderer/internal/domain/document"
)

// EngineMaroto nombre del motor.
const EngineMaroto = "maroto"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray     = &props.Color{Red: 108, Green: 117, Blue: 125}
	colorDiscount = &props.Color{Red: 220, Green: 53, Blue: 69}
	colorRule     = &props.Color{Red: 222, Green: 226, Blue: 230}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer implementa invoice.PDFRenderer usando Maroto v2.
type MarotoRenderer struct{}

var _ invoice.PDFRenderer = (*MarotoRenderer)(nil)

// NewMarotoRenderer construye el renderizador.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// Name implementa invoice.PDFRenderer.
func (r *MarotoRenderer) Name() string { return EngineMaroto }

// RenderPDF genera el PDF a partir del documento resuelto y devuelve sus bytes.
func (r *MarotoRenderer) RenderPDF(ctx context.Context, inv *invoice.RenderedInvoice) ([]byte, error) {
	if inv == nil || inv.Document == nil {
		return nil, errors.New("pdf: documento vacío")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	doc := inv.Document

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+doc.Meta.InvoiceNumber, true).
		WithAuthor(doc.Brand.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorRule, Thickness: 0.5}))
	m.AddRows(customerRows(doc.Customer)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorRule, Thickness: 0.3}))
	m.AddRows(lineItemRows(doc.LineItems)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorRule, Thickness: 0.3}))
	m.AddRows(totalsRows(doc.Totals)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(termsRows(doc.Terms)...)

	m.AddRows(line.NewRow(6))
	m.AddRows(signaturesRow(doc.Signatures))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y metadatos de la factura (der).
func headerRow(doc *document.Document) core.Row {
	b, meta := doc.Brand, doc.Meta
	return row.New(26).Add(
		col.New(7).Add(
			text.New(b.Name, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New(b.Email, props.Text{Size: 8, Top: 9, Color: colorGray, Hyperlink: &b.EmailURL}),
			text.New(b.Address, props.Text{Size: 8, Top: 13, Color: colorGray}),
			text.New(b.Phone, props.Text{Size: 8, Top: 17, Color: colorGray}),
		),
		col.New(5).Add(
			metaText("Invoice Date: "+meta.InvoiceDate, 1),
			metaText("Expires on: "+meta.ExpiresOn, 6),
			metaText("Invoice Number: "+meta.InvoiceNumber, 11),
			metaText("Subscription Start Date: "+meta.SubscriptionStart, 16),
		),
	)
}

func metaText(s string, top float64) core.Component {
	return text.New(s, props.Text{Size: 8, Align: align.Right, Top: top})
}

// customerRows: nombre del cliente y campos del firmante; los vacíos se
// imprimen como línea en blanco.
func customerRows(c document.Customer) []core.Row {
	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 12, Top: 3}),
		)),
	}
	for _, f := range c.Fields {
		value := f.Value
		if !f.Filled() {
			value = "______________________________"
		}
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(f.Label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(10).Add(text.New(value, props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de servicios.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Product", 2, align.Left),
		h("Description", 4, align.Left),
		h("Price", 2, align.Right),
		h("Qty", 1, align.Center),
		h("Term", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// lineItemRows: una fila por ítem, en el orden del documento.
func lineItemRows(items []document.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		cell := props.Text{Size: 7, Top: 1, Left: 1, Right: 1}
		totalStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Top: 1, Right: 1}
		if it.Discount {
			cell.Color = colorDiscount
			totalStyle.Color = colorDiscount
		}
		result = append(result, row.New(lineItemHeight(it)).Add(
			col.New(2).Add(text.New(it.Name, withStyle(cell, fontstyle.Bold, align.Left))),
			col.New(4).Add(text.New(it.Description, withStyle(cell, fontstyle.Normal, align.Left))),
			col.New(2).Add(text.New(it.Price, withStyle(cell, fontstyle.Normal, align.Right))),
			col.New(1).Add(text.New(it.Quantity, withStyle(cell, fontstyle.Normal, align.Center))),
			col.New(1).Add(text.New(it.Term, withStyle(cell, fontstyle.Normal, align.Center))),
			col.New(2).Add(text.New(it.Total, totalStyle)),
		))
	}
	return result
}

func withStyle(p props.Text, style fontstyle.Type, a align.Type) props.Text {
	p.Style = style
	p.Align = a
	return p
}

// lineItemHeight estima la altura según el largo de la descripción
// (~45 caracteres por línea a 7 pt en 4 columnas).
func lineItemHeight(it document.LineItem) float64 {
	lines := len(it.Description)/45 + 1
	if n := len(it.Name)/22 + 1; n > lines {
		lines = n
	}
	return float64(lines)*3.2 + 3
}

// totalsRows: bloque de totales alineado a la derecha.
func totalsRows(totals []document.TotalRow) []core.Row {
	rows := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		size := 9.0
		color := colorGray
		if t.Final {
			size = 11
			color = colorPrimary
		}
		rows = append(rows, row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New(t.Label, props.Text{
				Style: fontstyle.Bold, Size: size, Align: align.Right, Color: color, Top: 1, Right: 2,
			})),
			col.New(3).Add(text.New(t.Value, props.Text{
				Style: fontstyle.Bold, Size: size, Align: align.Right, Color: color, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

// termsRows: título, párrafos fijos, nota libre y contacto.
func termsRows(t document.Terms) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(t.Title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, l := range t.Lines {
		rows = append(rows, termsLineRow(l))
	}
	for _, p := range noteParts(t.NoteText) {
		tp := props.Text{Size: 7.5, Top: 1}
		if p.link != "" {
			url := p.link
			tp.Hyperlink = &url
			tp.Color = colorPrimary
		}
		rows = append(rows, row.New(float64(len(p.content)/110+1)*3.5+2).Add(col.New(12).Add(
			text.New(p.content, tp),
		)))
	}
	return append(rows, termsLineRow(t.Contact))
}

// notePart un renglón de la nota; link no vacío lo vuelve enlace.
type notePart struct {
	content string
	link    string
}

// noteParts: Maroto no mezcla estilos dentro de un texto, así que cada
// enlace va en su propio renglón entre los tramos de texto plano.
func noteParts(segs []document.TextSegment) []notePart {
	parts := make([]notePart, 0, len(segs))
	for _, s := range segs {
		content := strings.TrimSpace(s.Text)
		if content == "" {
			continue
		}
		parts = append(parts, notePart{content: content, link: s.URL})
	}
	return parts
}

func termsLineRow(l document.TermsLine) core.Row {
	p := props.Text{Size: 7.5, Top: 1, Color: colorGray}
	content := l.Text
	if l.HasLink() {
		content += l.LinkLabel + l.Suffix
		url := l.LinkURL
		p.Hyperlink = &url
	}
	return row.New(float64(len(content)/110+1)*3.5+2).Add(col.New(12).Add(text.New(content, p)))
}

// signaturesRow: bloques de firma lado a lado.
func signaturesRow(blocks []document.SignatureBlock) core.Row {
	if len(blocks) == 0 {
		return row.New(1)
	}
	width := 12 / len(blocks)
	cols := make([]core.Col, 0, len(blocks))
	height := 0.0
	for _, b := range blocks {
		c := col.New(width)
		for i, label := range b.Labels {
			c.Add(text.New(label+" ____________________________", props.Text{
				Size: 8, Top: float64(i)*8 + 2, Left: 2,
			}))
		}
		if h := float64(len(b.Labels))*8 + 4; h > height {
			height = h
		}
		cols = append(cols, c)
	}
	return row.New(height).Add(cols...)
}
