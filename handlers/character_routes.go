// handlers/character_routes.go
package handlers

import (
	"character-arena/middleware"
	"character-arena/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCharacterRoutes(app *fiber.App, characterService *services.CharacterService) {
	// 🔓 Public reads, still behind Gateway auth
	app.Get("/characters", func(c *fiber.Ctx) error {
		chars, err := characterService.List(services.CharacterFilter{
			Class: c.Query("class"),
			Name:  c.Query("name"),
		})
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(services.NewCharacterViews(chars, middleware.AccountID(c)))
	})

	// 🔐 Pools depend on who is asking
	app.Get("/characters/challengers", middleware.RequireAccount(), func(c *fiber.Ctx) error {
		accountID := middleware.AccountID(c)
		chars, err := characterService.Challengers(accountID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(services.NewCharacterViews(chars, accountID))
	})

	app.Get("/characters/opponents", middleware.RequireAccount(), func(c *fiber.Ctx) error {
		accountID := middleware.AccountID(c)
		chars, err := characterService.Opponents(accountID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(services.NewCharacterViews(chars, accountID))
	})

	app.Get("/characters/:id", func(c *fiber.Ctx) error {
		char, err := characterService.Get(c.Params("id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(services.NewCharacterView(*char, middleware.AccountID(c)))
	})

	app.Post("/characters", middleware.RequireAccount(), func(c *fiber.Ctx) error {
		var in services.CharacterInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "cause": err.Error()})
		}
		accountID := middleware.AccountID(c)
		char, err := characterService.Create(accountID, in)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(services.NewCharacterView(*char, accountID))
	})

	app.Put("/characters/:id", middleware.RequireAccount(), func(c *fiber.Ctx) error {
		var in services.CharacterInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "cause": err.Error()})
		}
		accountID := middleware.AccountID(c)
		char, err := characterService.LevelUp(accountID, c.Params("id"), in)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(services.NewCharacterView(*char, accountID))
	})
}
