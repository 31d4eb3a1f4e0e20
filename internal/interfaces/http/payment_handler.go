package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
)

// HeaderIdempotencyKey reintentos con la misma clave devuelven el pago original.
const HeaderIdempotencyKey = "Idempotency-Key"

// PaymentHandler maneja pagos recibidos y la cartera pendiente.
type PaymentHandler struct {
	uc  *billing.PaymentUseCase
	log *logger.Logger
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *billing.PaymentUseCase, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, log: log}
}

// Record godoc
// @Summary      Registrar pago de una empresa
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id               path    string                    true   "ID de la empresa"
// @Param        Idempotency-Key  header  string                    false  "Clave de idempotencia"
// @Param        body             body    dto.RecordPaymentRequest  true   "Monto y nota"
// @Success      201  {object}  dto.PaymentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Record(c.UserContext(), GetUserID(c), c.Params("id"), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/companies/:id/payments (más recientes primero).
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete revierte un pago y devuelve el monto al saldo.
// DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PendingOverview godoc
// @Summary      Cartera pendiente
// @Description  Empresas con saldo > 0 ordenadas por saldo descendente y el total.
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PendingOverviewResponse
// @Router       /api/payments/pending [get]
func (h *PaymentHandler) PendingOverview(c *fiber.Ctx) error {
	out, err := h.uc.PendingOverview(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
