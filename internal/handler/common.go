package handler

import (
	"errors"

	"go-mrp-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull user info from JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system" // shouldn't happen on protected routes
	}
	return userID.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// fail maps business errors onto status codes: missing references are 404,
// state conflicts 409, bad input 400. Anything unclassified is an internal
// failure and must not leak driver details to the client.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrJobNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBOMNotFound),
		errors.Is(err, service.ErrWorkOrderNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrProductReferenced),
		errors.Is(err, service.ErrOrderHasHistory),
		errors.Is(err, service.ErrJobCompleted),
		errors.Is(err, service.ErrBOMReleased):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrDuplicateSKU),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrDuplicateEmail):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})

	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
