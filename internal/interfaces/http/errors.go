package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
)

// respondError traduce un error de dominio a status + dto.ErrorResponse.
// Las fallas de almacenamiento no exponen el detalle al cliente.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code, msg := mapDomainError(err)
	if status == fiber.StatusInternalServerError && log != nil {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func mapDomainError(err error) (int, string, string) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrExceedsPending):
		return fiber.StatusBadRequest, "EXCEEDS_PENDING", err.Error()
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, "VALIDATION", verr.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case domain.KindNotFound:
		return fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"
	case domain.KindConflict:
		return fiber.StatusConflict, "CONFLICT", err.Error()
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno"
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

// pageFromQuery lee limit/offset; los topes los aplica PageRequest.Normalize.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	p.Normalize()
	return p
}
