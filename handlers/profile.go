package handlers

import (
	"study-tracker/app"
	"study-tracker/models"

	"github.com/gofiber/fiber/v2"
)

func GetProfile(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{"profile": a.Repo.GetProfile(c.UserContext())})
	}
}

func SaveProfile(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var profile models.UserProfile
		if err := c.BodyParser(&profile); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Repo.SaveProfile(c.UserContext(), &profile); err != nil {
			return writeError(c, "Failed to save profile", err)
		}

		return success(c, fiber.Map{"success": true, "profile": a.Repo.GetProfile(c.UserContext())})
	}
}
