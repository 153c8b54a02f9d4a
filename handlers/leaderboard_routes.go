// handlers/leaderboard_routes.go
package handlers

import (
	"character-arena/middleware"
	"character-arena/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboardService *services.LeaderboardService) {
	app.Get("/leaderboards", func(c *fiber.Ctx) error {
		rows, err := leaderboardService.Leaderboard(middleware.AccountID(c), c.Query("class"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{
			"class": c.Query("class"),
			"rows":  rows,
		})
	})
}
