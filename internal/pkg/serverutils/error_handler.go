package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return writeError(ctx, err)
	}
}

// ErrorHandler is the fiber.Config fallback for errors raised outside the middleware chain.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	return writeError(ctx, err)
}

func writeError(ctx *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		resp := ErrorResponse(fiber.StatusBadRequest, "Validation failed")
		resp.Errors = verr.Fields
		return ctx.Status(fiber.StatusBadRequest).JSON(resp)
	}

	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
}
