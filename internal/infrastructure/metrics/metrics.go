// Package metrics expone los colectores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
)

// Metrics agrupa los colectores sobre un registro propio.
type Metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	totals         prometheus.Histogram
}

var _ invoice.RenderObserver = (*Metrics)(nil)

// New registra los colectores. Cada instancia usa su propio registro.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_http_requests_total",
			Help: "Peticiones HTTP atendidas por método, ruta y estado.",
		}, []string{"method", "route", "status"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "invoice_render_duration_seconds",
			Help:    "Duración del render de PDF por motor y resultado.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10, 30},
		}, []string{"engine", "outcome"}),
		totals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "invoice_totals_amount_usd",
			Help:    "Total facturado por PDF generado, en USD.",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.renderDuration,
		m.totals,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRender implementa invoice.RenderObserver.
func (m *Metrics) ObserveRender(engine, outcome string, elapsed time.Duration) {
	m.renderDuration.WithLabelValues(engine, outcome).Observe(elapsed.Seconds())
}

// ObserveTotal implementa invoice.RenderObserver.
func (m *Metrics) ObserveTotal(total decimal.Decimal) {
	m.totals.Observe(total.InexactFloat64())
}

// ObserveRequest cuenta una petición HTTP.
func (m *Metrics) ObserveRequest(method, route string, status int) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Registry devuelve el registro (tests y exportadores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler sirve la exposición de texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
