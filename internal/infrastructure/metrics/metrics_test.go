package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-renderer/internal/infrastructure/metrics"
)

func TestMetrics_CuentaPeticionesYRenders(t *testing.T) {
	m := metrics.New()

	m.ObserveRequest("POST", "/generate-invoice", 200)
	m.ObserveRequest("POST", "/generate-invoice", 200)
	m.ObserveRequest("POST", "/generate-invoice", 422)
	m.ObserveRender("chrome", "success", 1500*time.Millisecond)
	m.ObserveTotal(decimal.NewFromInt(1050))

	expected := `
# HELP invoice_http_requests_total Peticiones HTTP atendidas por método, ruta y estado.
# TYPE invoice_http_requests_total counter
invoice_http_requests_total{method="POST",route="/generate-invoice",status="200"} 2
invoice_http_requests_total{method="POST",route="/generate-invoice",status="422"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "invoice_http_requests_total"))

	n, err := testutil.GatherAndCount(m.Registry(), "invoice_render_duration_seconds", "invoice_totals_amount_usd")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_HandlerExponeTexto(t *testing.T) {
	m := metrics.New()
	m.ObserveRender("maroto", "error", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `invoice_render_duration_seconds_count{engine="maroto",outcome="error"} 1`)
}
