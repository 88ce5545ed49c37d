package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kodamai/recruitr/internal/apperror"
	"github.com/kodamai/recruitr/internal/util"
)

// respondError translates the usecase error taxonomy into HTTP status
// codes. Unclassified errors stay 500 with a generic message so
// internals never leak to the caller.
func respondError(c *fiber.Ctx, err error, message string) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, apperror.ErrUnauthorized):
		code = fiber.StatusForbidden
	case errors.Is(err, apperror.ErrInvalidInput):
		code = fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrExternalService):
		code = fiber.StatusBadGateway
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	}, err)
}
