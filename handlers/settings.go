package handlers

import (
	"study-tracker/app"
	"study-tracker/models"

	"github.com/gofiber/fiber/v2"
)

// GetSettings returns one of the settings documents selected by :kind
func GetSettings(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var settings any
		switch models.SettingsKind(c.Params("kind")) {
		case models.SettingsAI:
			settings = a.Repo.GetAISettings(ctx)
		case models.SettingsRevision:
			settings = a.Repo.GetRevisionSettings(ctx)
		case models.SettingsApp:
			settings = a.Repo.GetAppSettings(ctx)
		default:
			return badRequest(c, "kind must be one of: ai, revision, app")
		}

		return success(c, fiber.Map{"settings": settings})
	}
}

// SaveSettings merges the body into the settings document selected by :kind
func SaveSettings(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var err error
		switch models.SettingsKind(c.Params("kind")) {
		case models.SettingsAI:
			var s models.AISettings
			if err := c.BodyParser(&s); err != nil {
				return badRequest(c, "Invalid request body")
			}
			err = a.Repo.SaveAISettings(ctx, &s)
		case models.SettingsRevision:
			var s models.RevisionSettings
			if err := c.BodyParser(&s); err != nil {
				return badRequest(c, "Invalid request body")
			}
			err = a.Repo.SaveRevisionSettings(ctx, &s)
		case models.SettingsApp:
			var s models.AppSettings
			if err := c.BodyParser(&s); err != nil {
				return badRequest(c, "Invalid request body")
			}
			err = a.Repo.SaveAppSettings(ctx, &s)
		default:
			return badRequest(c, "kind must be one of: ai, revision, app")
		}

		if err != nil {
			return writeError(c, "Failed to save settings", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
