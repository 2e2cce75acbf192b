package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/invoice-renderer/internal/application/dto"
	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
	"github.com/jhoicas/invoice-renderer/internal/infrastructure/metrics"
	"github.com/jhoicas/invoice-renderer/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Invoice    *invoice.UseCase
	Metrics    *metrics.Metrics // nil desactiva /metrics
	Log        *logger.Logger
	Env        string
	Service    string
	CORSOrigin string
	Now        func() time.Time
}

// AppConfig timeouts del servidor fiber.
type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewApp crea la aplicación fiber con middlewares y rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: errorHandler(deps.Log),
	})
	app.Use(recover.New())
	app.Use(RequestID())
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
	}
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	origin := deps.CORSOrigin
	if origin == "" {
		origin = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origin}))

	health := NewHealthHandler(deps.Env, deps.Service, deps.Invoice.Engine(), deps.Now)
	app.Get("/health", health.Health)

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	invoiceHandler := NewInvoiceHandler(deps.Invoice, deps.Log)
	app.Post("/generate-invoice", invoiceHandler.Generate)

	invoices := app.Group("/api/invoices")
	invoices.Post("/preview", invoiceHandler.Preview)
	invoices.Post("/totals", invoiceHandler.Totals)
}

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("error no controlado")
		}
		return c.Status(code).JSON(dto.ErrorResponse{Code: errorCode(code), Message: err.Error()})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	}
	if status < fiber.StatusInternalServerError {
		return "BAD_REQUEST"
	}
	return "INTERNAL"
}
