package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
	"github.com/jhoicas/invoice-renderer/internal/domain/entity"
	"github.com/jhoicas/invoice-renderer/internal/infrastructure/pdf"
)

func prepared(t *testing.T, r *entity.InvoiceRecord) *invoice.RenderedInvoice {
	t.Helper()
	uc := invoice.NewUseCase(invoice.ClockFunc(func() time.Time {
		return time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)
	}), pdf.NewMarotoRenderer(), nil)
	inv, err := uc.Prepare(r)
	require.NoError(t, err)
	return inv
}

func TestMarotoRenderer_GeneraPDF(t *testing.T) {
	inv := prepared(t, &entity.InvoiceRecord{
		ID:             "42",
		CustomerName:   "Acme",
		SignerName:     "Jane Roe",
		DeploymentFee:  1500,
		UseTimekeeper:  true,
		BillByUser:     true,
		UserPrice:      12,
		ActiveUsersAvg: 10,
		Note:           "See https://example.com for details",
		CustomServices: []entity.CustomServiceLine{
			{Name: "Loyalty", Price: 50, Term: entity.TermMonthly, Discount: true},
		},
	})

	r := pdf.NewMarotoRenderer()
	assert.Equal(t, pdf.EngineMaroto, r.Name())

	out, err := r.RenderPDF(context.Background(), inv)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestMarotoRenderer_DocumentoNil(t *testing.T) {
	_, err := pdf.NewMarotoRenderer().RenderPDF(context.Background(), &invoice.RenderedInvoice{})
	assert.Error(t, err)
}

func TestMarotoRenderer_ContextoCancelado(t *testing.T) {
	inv := prepared(t, &entity.InvoiceRecord{ID: "1", CustomServices: []entity.CustomServiceLine{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.NewMarotoRenderer().RenderPDF(ctx, inv)
	assert.ErrorIs(t, err, context.Canceled)
}
