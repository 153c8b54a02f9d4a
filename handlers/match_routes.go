// handlers/match_routes.go
package handlers

import (
	"character-arena/combat"
	"character-arena/middleware"
	"character-arena/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMatchRoutes(app *fiber.App, matchService *services.MatchService) {
	app.Post("/matches", middleware.RequireAccount(), func(c *fiber.Ctx) error {
		var req combat.MatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "cause": err.Error()})
		}
		result, err := matchService.CreateMatch(middleware.AccountID(c), req)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	})

	app.Get("/matches", func(c *fiber.Ctx) error {
		results, err := matchService.ListMatches()
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(results)
	})

	app.Get("/matches/:id", func(c *fiber.Ctx) error {
		result, err := matchService.GetMatch(c.Params("id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(result)
	})
}
