package invoice_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
	"github.com/jhoicas/invoice-renderer/internal/domain"
	"github.com/jhoicas/invoice-renderer/internal/domain/entity"
)

var fixedNow = time.Date(2025, time.March, 7, 9, 30, 0, 0, time.UTC)

type fakeRenderer struct {
	out  []byte
	err  error
	seen *invoice.RenderedInvoice
}

func (f *fakeRenderer) Name() string { return "fake" }

func (f *fakeRenderer) RenderPDF(_ context.Context, inv *invoice.RenderedInvoice) ([]byte, error) {
	f.seen = inv
	return f.out, f.err
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
	totals   []decimal.Decimal
}

func (o *recordingObserver) ObserveRender(engine, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, engine+":"+outcome)
}

func (o *recordingObserver) ObserveTotal(total decimal.Decimal) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.totals = append(o.totals, total)
}

type countingClock struct{ calls int }

func (c *countingClock) Now() time.Time {
	c.calls++
	return fixedNow.Add(time.Duration(c.calls-1) * 48 * time.Hour)
}

func sampleRecord() *entity.InvoiceRecord {
	return &entity.InvoiceRecord{
		ID:             "42",
		CustomerName:   "Acme",
		DeploymentFee:  500,
		BillByUser:     true,
		UserPrice:      10,
		ActiveUsersAvg: 3,
		CustomServices: []entity.CustomServiceLine{},
	}
}

func TestPrepare_CapturaElInstanteUnaSolaVez(t *testing.T) {
	clock := &countingClock{}
	uc := invoice.NewUseCase(clock, &fakeRenderer{}, nil)

	inv, err := uc.Prepare(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, 1, clock.calls)
	assert.Equal(t, "20250307-42", inv.Computation.InvoiceNumber)
	assert.Equal(t, "March 14, 2025", inv.Computation.FormattedExpirationDate)
	assert.Equal(t, fixedNow, inv.Computation.GeneratedAt)
	assert.Contains(t, inv.Markup, "20250307-42")
	assert.Equal(t, "Acme", inv.Document.Customer.Name)
}

func TestGeneratePDF_DevuelveBytesDelRenderizador(t *testing.T) {
	renderer := &fakeRenderer{out: []byte("%PDF-1.4 fake")}
	obs := &recordingObserver{}
	uc := invoice.NewUseCase(invoice.ClockFunc(func() time.Time { return fixedNow }), renderer, obs)

	out, inv, err := uc.GeneratePDF(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), out)
	require.NotNil(t, renderer.seen)
	assert.Same(t, inv, renderer.seen)
	assert.Equal(t, []string{"fake:success"}, obs.outcomes)
	require.Len(t, obs.totals, 1)
	assert.True(t, decimal.NewFromInt(530).Equal(obs.totals[0]))
	assert.Equal(t, "fake", uc.Engine())
}

func TestGeneratePDF_ErrorDelRenderizador(t *testing.T) {
	boom := errors.New("chrome caído")
	obs := &recordingObserver{}
	uc := invoice.NewUseCase(invoice.ClockFunc(func() time.Time { return fixedNow }), &fakeRenderer{err: boom}, obs)

	_, _, err := uc.GeneratePDF(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "invoice: render fake")
	assert.Equal(t, []string{"fake:error"}, obs.outcomes)
	assert.Empty(t, obs.totals)
}

func TestGeneratePDF_RegistroInvalidoNoLlegaAlRenderizador(t *testing.T) {
	renderer := &fakeRenderer{}
	uc := invoice.NewUseCase(nil, renderer, nil)

	r := sampleRecord()
	r.CustomServices = nil
	_, _, err := uc.GeneratePDF(context.Background(), r)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	assert.Nil(t, renderer.seen)
}

func TestGeneratePDF_SinRenderizador(t *testing.T) {
	uc := invoice.NewUseCase(nil, nil, nil)
	_, _, err := uc.GeneratePDF(context.Background(), sampleRecord())
	assert.Error(t, err)
	assert.Equal(t, "", uc.Engine())
}
