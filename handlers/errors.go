// handlers/errors.go
package handlers

import (
	"errors"
	"log"

	"character-arena/combat"
	"character-arena/services"

	"github.com/gofiber/fiber/v2"
)

// errorResponse maps service errors onto HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	var budget *combat.BudgetError
	switch {
	case errors.As(err, &budget):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "stat points exceed level budget",
			"cause":  err.Error(),
			"level":  int(budget.Level),
			"total":  budget.Total,
			"budget": budget.Budget,
		})
	case errors.Is(err, combat.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request", "cause": err.Error()})
	case errors.Is(err, combat.ErrInvariantViolation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invariant violation", "cause": err.Error()})
	case errors.Is(err, combat.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found", "cause": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "cause": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "cause": err.Error()})
	}
	log.Printf("❌ [API] %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error", "cause": err.Error()})
}
