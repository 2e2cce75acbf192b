package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-renderer/internal/application/dto"
)

// HealthHandler responde GET /health.
type HealthHandler struct {
	env     string
	service string
	engine  string
	now     func() time.Time
}

// NewHealthHandler construye el handler. now nil usa time.Now.
func NewHealthHandler(env, service, engine string, now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{env: env, service: service, engine: engine, now: now}
}

// Health estado del servicio.
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		Timestamp:   h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Environment: h.env,
		Service:     h.service,
		Engine:      h.engine,
	})
}
