package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-renderer/internal/domain/billing"
	"github.com/jhoicas/invoice-renderer/internal/domain/document"
)

// Clock entrega el instante de generación de la factura.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapta una función a Clock.
type ClockFunc func() time.Time

// Now implementa Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock usa la hora local del proceso.
var SystemClock Clock = ClockFunc(time.Now)

// RenderedInvoice es la factura lista para rasterizar: cálculo, modelo y marcado.
type RenderedInvoice struct {
	Computation *billing.Computation
	Document    *document.Document
	Markup      string
}

// PDFRenderer es el puerto de salida hacia el motor de PDF (Chrome, Maroto, fake).
// El contexto acota la duración del render.
type PDFRenderer interface {
	Name() string
	RenderPDF(ctx context.Context, inv *RenderedInvoice) ([]byte, error)
}

// RenderObserver recibe la duración de cada render y el total facturado.
// Es opcional; nil desactiva la observación.
type RenderObserver interface {
	ObserveRender(engine, outcome string, elapsed time.Duration)
	ObserveTotal(total decimal.Decimal)
}
