package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// respondError traduce errores de dominio a estados HTTP con el envelope de error.
// Los mensajes de los sentinels (con el contexto del %w) se devuelven tal cual:
// llevan detalle útil como "disponible 3, solicitado 7".
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("VALIDATION", err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Err("NOT_FOUND", err.Error()))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("DUPLICATE", err.Error()))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("CONFLICT", err.Error()))
	case errors.Is(err, domain.ErrNegativeStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("NEGATIVE_STOCK", err.Error()))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("INSUFFICIENT_STOCK", err.Error()))
	case errors.Is(err, domain.ErrOverReservation):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("OVER_RESERVATION", err.Error()))
	case errors.Is(err, domain.ErrTxConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("TX_CONFLICT", "conflicto de concurrencia; reintentar la operación"))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Err("UNAUTHORIZED", "credenciales inválidas"))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Err("FORBIDDEN", "acceso denegado"))
	case errors.Is(err, domain.ErrInvariantViolation):
		// nunca debería llegar aquí: si llega hay un bug en la capa de dominio
		log.Error().Err(err).Str("path", c.Path()).Msg("invariante de stock violado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err("INVARIANT", "estado de stock inconsistente"))
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err("INTERNAL", "error interno"))
	}
}
