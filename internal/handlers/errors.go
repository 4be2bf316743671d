package handlers

import (
	"errors"

	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to an HTTP status and a short generic
// message. Internal error detail is logged by callers, never sent to the
// client.
func respondError(c *fiber.Ctx, err error, fallbackMessage string) error {
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot checkout with an empty cart",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Resource not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fallbackMessage,
		})
	}
}
