package handlers

import (
	"study-tracker/app"
	"study-tracker/models"

	"github.com/gofiber/fiber/v2"
)

func GetMaterials(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{"materials": a.Repo.GetMaterials(c.UserContext())})
	}
}

// SaveMaterial creates or replaces a material
func SaveMaterial(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var material models.StudyMaterial
		if err := c.BodyParser(&material); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Repo.SaveMaterial(c.UserContext(), &material); err != nil {
			return writeError(c, "Failed to save material", err)
		}

		return created(c, fiber.Map{"success": true, "material": material})
	}
}

func ToggleMaterialActive(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ToggleActiveRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		a.Repo.ToggleMaterialActive(c.UserContext(), c.Params("id"), req.IsActive)

		return success(c, fiber.Map{"success": true})
	}
}

// UpdateMaterial merges the body's fields into :id
func UpdateMaterial(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fields map[string]any
		if err := c.BodyParser(&fields); err != nil || len(fields) == 0 {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Repo.UpdateMaterial(c.UserContext(), c.Params("id"), fields); err != nil {
			return writeError(c, "Failed to update material", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

func DeleteMaterial(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Repo.DeleteMaterial(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, "Failed to delete material", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

func GetMaterialChat(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{"messages": a.Repo.GetMaterialChat(c.UserContext(), c.Params("id"))})
	}
}

func AddMaterialChatMessage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var msg models.MaterialChatMessage
		if err := c.BodyParser(&msg); err != nil {
			return badRequest(c, "Invalid request body")
		}

		id, err := a.Repo.AddMaterialChatMessage(c.UserContext(), c.Params("id"), &msg)
		if err != nil {
			return writeError(c, "Failed to add chat message", err)
		}

		return created(c, fiber.Map{"success": true, "id": id})
	}
}

func ClearMaterialChat(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Repo.ClearMaterialChat(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, "Failed to clear chat", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
