package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings orden importa: los sentinels más específicos van primero.
var errorMappings = []errorMapping{
	{domain.ErrEmptyCart, fiber.StatusBadRequest, "EMPTY_CART"},
	{domain.ErrMissingFullName, fiber.StatusBadRequest, "MISSING_FULL_NAME"},
	{domain.ErrWeakPassword, fiber.StatusBadRequest, "WEAK_PASSWORD"},
	{domain.ErrInvalidTransition, fiber.StatusBadRequest, "INVALID_TRANSITION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrPaymentDeclined, fiber.StatusPaymentRequired, "PAYMENT_DECLINED"},
	{domain.ErrAccountDisabled, fiber.StatusForbidden, "ACCOUNT_DISABLED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrOrderNumberTaken, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// respondError traduce errores de dominio a HTTP. Cualquier otro error es 500: se
// registra con el detalle y el cliente recibe un mensaje genérico.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("user_id", GetUserID(c)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno, intente más tarde",
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
