// Package document arma el documento de la factura a partir del registro y
// del cálculo: un modelo resuelto (secciones en orden fijo) y su marcado HTML
// listo para el renderizador.
//
// Orden de las secciones:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: logo + datos del emisor │ fecha / vence / número   │
//	│  CLIENTE: nombre + firmante (valor o línea en blanco)       │
//	│  TABLA: Producto | Descripción | Precio | Cant. | Term | Tot │
//	│  TOTALES: único / mensual / anual / total                   │
//	│  TÉRMINOS: párrafos fijos + nota con enlaces                │
//	│  FIRMAS: dos bloques idénticos en blanco                    │
//	└─────────────────────────────────────────────────────────────┘
package document

import (
	"html/template"

	"github.com/jhoicas/invoice-renderer/internal/domain"
	"github.com/jhoicas/invoice-renderer/internal/domain/billing"
	"github.com/jhoicas/invoice-renderer/internal/domain/entity"
	"github.com/jhoicas/invoice-renderer/pkg/money"
)

// Document es la factura completamente resuelta.
type Document struct {
	Brand      Brand
	Meta       Meta
	Customer   Customer
	LineItems  []LineItem
	Totals     []TotalRow
	Terms      Terms
	Signatures []SignatureBlock
}

// Brand son los datos del emisor.
type Brand struct {
	Name     string
	LogoURL  string
	Email    string
	EmailURL string
	Address  string
	Phone    string
}

// Meta son los datos de cabecera de la factura.
type Meta struct {
	InvoiceDate       string
	ExpiresOn         string
	InvoiceNumber     string
	SubscriptionStart string
}

// Customer es el bloque del cliente y su firmante.
type Customer struct {
	Name   string
	Fields []CustomerField
}

// CustomerField se imprime como texto si tiene valor, o como línea en blanco.
type CustomerField struct {
	Label string
	Value string
}

// Filled indica si el campo tiene valor.
func (f CustomerField) Filled() bool { return f.Value != "" }

// TotalRow es una fila del bloque de totales.
type TotalRow struct {
	Label string
	Value string
	Final bool
}

// Terms es el bloque legal.
type Terms struct {
	Title    string
	Lines    []TermsLine
	Note     string        // nota libre original
	NoteHTML template.HTML // nota con enlaces
	NoteText []TextSegment // nota en tramos, para motores sin HTML
	Contact  TermsLine
}

// TermsLine es un párrafo con un enlace opcional al final.
type TermsLine struct {
	Text      string
	LinkLabel string
	LinkURL   string
	Suffix    string
}

// HasLink indica si el párrafo lleva enlace.
func (l TermsLine) HasLink() bool { return l.LinkURL != "" }

// SignatureBlock es un bloque de firma en blanco.
type SignatureBlock struct {
	Labels []string
}

// Assemble arma el documento. c debe provenir de billing.Compute sobre el
// mismo registro.
func Assemble(record *entity.InvoiceRecord, c *billing.Computation) (*Document, error) {
	if err := billing.Validate(record); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.ComputationError{Field: "computation", Reason: "es obligatorio"}
	}

	signatures := make([]SignatureBlock, 2)
	for i := range signatures {
		signatures[i] = SignatureBlock{Labels: append([]string(nil), signatureLabels...)}
	}

	return &Document{
		Brand: Brand{
			Name:     brandName,
			LogoURL:  brandLogoURL,
			Email:    brandSales,
			EmailURL: brandSalesURL,
			Address:  brandAddress,
			Phone:    brandPhone,
		},
		Meta: Meta{
			InvoiceDate:       c.FormattedDate,
			ExpiresOn:         c.FormattedExpirationDate,
			InvoiceNumber:     c.InvoiceNumber,
			SubscriptionStart: c.FormattedSubscriptionDate,
		},
		Customer: Customer{
			Name: record.CustomerName,
			Fields: []CustomerField{
				{Label: "Name:", Value: record.SignerName},
				{Label: "Title:", Value: record.SignerTitle},
				{Label: "Email:", Value: record.SignerEmail},
				{Label: "Phone:", Value: record.SignerPhone},
			},
		},
		LineItems: LineItems(record),
		Totals:    TotalRows(c.Totals, record.AnnualInvoice),
		Terms: Terms{
			Title:    "Purchase Terms",
			Lines:    append([]TermsLine(nil), purchaseTerms...),
			Note:     record.Note,
			NoteHTML: Linkify(record.Note),
			NoteText: SplitLinks(record.Note),
			Contact:  contactTerms,
		},
		Signatures: signatures,
	}, nil
}

// TotalRows aplica las reglas de visibilidad del bloque de totales; el total
// final siempre aparece.
func TotalRows(t billing.Totals, annualInvoice bool) []TotalRow {
	rows := make([]TotalRow, 0, 4)
	if t.OneTime.IsPositive() {
		rows = append(rows, TotalRow{Label: "One-time subtotal:", Value: money.USD(t.OneTime)})
	}
	if t.Monthly.IsPositive() {
		rows = append(rows, TotalRow{Label: "Monthly subtotal:", Value: money.USD(t.Monthly)})
	}
	if t.Annual.IsPositive() && annualInvoice {
		rows = append(rows, TotalRow{Label: "Annual subtotal:", Value: money.USD(t.Annual)})
	}
	return append(rows, TotalRow{Label: "Total:", Value: money.USD(t.Total), Final: true})
}
