package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
)

// SettingsHandler datos del emisor y su cuenta bancaria (uno por usuario).
type SettingsHandler struct {
	uc  *usecase.SettingsUseCase
	log *logger.Logger
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, log: log}
}

// GetSeller GET /api/settings/seller
func (h *SettingsHandler) GetSeller(c *fiber.Ctx) error {
	out, err := h.uc.GetSeller(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SaveSeller godoc
// @Summary      Guardar datos del emisor
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SellerInfoRequest  true  "Emisor"
// @Success      200   {object}  dto.SellerInfoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/seller [put]
func (h *SettingsHandler) SaveSeller(c *fiber.Ctx) error {
	var in dto.SellerInfoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SaveSeller(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetBank GET /api/settings/bank
func (h *SettingsHandler) GetBank(c *fiber.Ctx) error {
	out, err := h.uc.GetBank(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SaveBank PUT /api/settings/bank
func (h *SettingsHandler) SaveBank(c *fiber.Ctx) error {
	var in dto.BankDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SaveBank(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
