package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-renderer/internal/application/dto"
	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
	"github.com/jhoicas/invoice-renderer/internal/domain"
	"github.com/jhoicas/invoice-renderer/internal/domain/entity"
	"github.com/jhoicas/invoice-renderer/pkg/logger"
	"github.com/jhoicas/invoice-renderer/pkg/money"
)

// Códigos de error de la API.
const (
	CodeInvalidBody   = "INVALID_BODY"
	CodeInvalidRecord = "INVALID_RECORD"
	CodeComputation   = "COMPUTATION"
	CodeRenderFailed  = "RENDER_FAILED"
)

// InvoiceHandler maneja las peticiones HTTP de generación de facturas.
type InvoiceHandler struct {
	uc  *invoice.UseCase
	log *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *invoice.UseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, log: log}
}

// Generate godoc
// @Summary      Generar PDF de factura de suscripción
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.InvoiceRequest  true  "registro de factura; custom_services es obligatorio"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /generate-invoice [post]
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	record, err := parseRecord(c)
	if err != nil {
		return writeError(c, err)
	}

	start := time.Now()
	pdfBytes, inv, err := h.uc.GeneratePDF(c.UserContext(), record)
	if err != nil {
		h.log.Error().Err(err).
			Str("request_id", GetRequestID(c)).
			Str("engine", h.uc.Engine()).
			Msg("error generando PDF")
		return writeError(c, err)
	}

	h.log.Info().
		Str("request_id", GetRequestID(c)).
		Str("invoice_number", inv.Computation.InvoiceNumber).
		Str("engine", h.uc.Engine()).
		Int("bytes", len(pdfBytes)).
		Dur("duration", time.Since(start)).
		Msg("PDF generado")

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "inline; filename=invoice.pdf")
	return c.Send(pdfBytes)
}

// Preview godoc
// @Summary      Marcado HTML de la factura, sin rasterizar
// @Tags         invoices
// @Accept       json
// @Produce      html
// @Param        body  body  dto.InvoiceRequest  true  "registro de factura"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	record, err := parseRecord(c)
	if err != nil {
		return writeError(c, err)
	}
	inv, err := h.uc.Prepare(record)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(inv.Markup)
}

// Totals godoc
// @Summary      Totales, fechas y número de la factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceRequest  true  "registro de factura"
// @Success      200   {object}  dto.InvoiceTotalsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/totals [post]
func (h *InvoiceHandler) Totals(c *fiber.Ctx) error {
	record, err := parseRecord(c)
	if err != nil {
		return writeError(c, err)
	}
	inv, err := h.uc.Prepare(record)
	if err != nil {
		return writeError(c, err)
	}

	comp := inv.Computation
	return c.JSON(dto.InvoiceTotalsResponse{
		InvoiceNumber:     comp.InvoiceNumber,
		InvoiceDate:       comp.FormattedDate,
		ExpiresOn:         comp.FormattedExpirationDate,
		SubscriptionStart: comp.FormattedSubscriptionDate,
		GeneratedAt:       comp.GeneratedAt,
		OneTimeTotal:      comp.OneTime,
		MonthlyTotal:      comp.Monthly,
		AnnualTotal:       comp.Annual,
		Total:             comp.Total,
		Formatted: dto.FormattedTotals{
			OneTimeTotal: money.USD(comp.OneTime),
			MonthlyTotal: money.USD(comp.Monthly),
			AnnualTotal:  money.USD(comp.Annual),
			Total:        money.USD(comp.Total),
		},
	})
}

// errInvalidBody marca un cuerpo que no se pudo decodificar.
var errInvalidBody = errors.New("cuerpo inválido")

func parseRecord(c *fiber.Ctx) (*entity.InvoiceRecord, error) {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, errInvalidBody
	}
	return in.ToEntity()
}

func writeError(c *fiber.Ctx, err error) error {
	var ire *domain.InvalidRecordError
	var ce *domain.ComputationError
	switch {
	case errors.Is(err, errInvalidBody):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo JSON inválido"})
	case errors.As(err, &ire):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: CodeInvalidRecord, Message: ire.Error()})
	case errors.As(err, &ce):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: CodeComputation, Message: ce.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeRenderFailed, Message: err.Error()})
	}
}
