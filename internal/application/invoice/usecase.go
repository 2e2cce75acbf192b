// Package invoice orquesta el flujo completo: calcular, armar, marcar y
// rasterizar una factura de suscripción.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invoice-renderer/internal/domain/billing"
	"github.com/jhoicas/invoice-renderer/internal/domain/document"
	"github.com/jhoicas/invoice-renderer/internal/domain/entity"
)

// Resultados de render reportados al observador.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// UseCase genera facturas con un reloj y un renderizador inyectados.
type UseCase struct {
	clock    Clock
	renderer PDFRenderer
	observer RenderObserver
}

// NewUseCase construye el caso de uso. clock nil usa SystemClock; observer
// puede ser nil.
func NewUseCase(clock Clock, renderer PDFRenderer, observer RenderObserver) *UseCase {
	if clock == nil {
		clock = SystemClock
	}
	return &UseCase{clock: clock, renderer: renderer, observer: observer}
}

// Engine devuelve el nombre del renderizador configurado.
func (uc *UseCase) Engine() string {
	if uc.renderer == nil {
		return ""
	}
	return uc.renderer.Name()
}

// Prepare calcula y arma la factura sin rasterizarla. El instante se captura
// una sola vez.
func (uc *UseCase) Prepare(record *entity.InvoiceRecord) (*RenderedInvoice, error) {
	now := uc.clock.Now()

	c, err := billing.Compute(record, now)
	if err != nil {
		return nil, err
	}
	doc, err := document.Assemble(record, c)
	if err != nil {
		return nil, err
	}
	markup, err := document.RenderMarkup(doc)
	if err != nil {
		return nil, fmt.Errorf("invoice: marcado: %w", err)
	}
	return &RenderedInvoice{Computation: c, Document: doc, Markup: markup}, nil
}

// GeneratePDF prepara la factura y la rasteriza con el motor configurado.
func (uc *UseCase) GeneratePDF(ctx context.Context, record *entity.InvoiceRecord) ([]byte, *RenderedInvoice, error) {
	if uc.renderer == nil {
		return nil, nil, fmt.Errorf("invoice: renderizador no configurado")
	}
	inv, err := uc.Prepare(record)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	pdfBytes, err := uc.renderer.RenderPDF(ctx, inv)
	elapsed := time.Since(start)
	if err != nil {
		uc.observeRender(OutcomeError, elapsed)
		return nil, inv, fmt.Errorf("invoice: render %s: %w", uc.renderer.Name(), err)
	}
	uc.observeRender(OutcomeSuccess, elapsed)
	if uc.observer != nil {
		uc.observer.ObserveTotal(inv.Computation.Total)
	}
	return pdfBytes, inv, nil
}

func (uc *UseCase) observeRender(outcome string, elapsed time.Duration) {
	if uc.observer != nil {
		uc.observer.ObserveRender(uc.renderer.Name(), outcome, elapsed)
	}
}
