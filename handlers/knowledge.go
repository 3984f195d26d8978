package handlers

import (
	"strconv"

	"study-tracker/app"
	"study-tracker/models"

	"github.com/gofiber/fiber/v2"
)

func GetKnowledgeBase(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries := a.Repo.GetKnowledgeBase(c.UserContext())
		if entries == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Knowledge base unavailable"})
		}
		return success(c, fiber.Map{"entries": entries})
	}
}

// SaveKnowledgeBase bulk-saves entries. On partial failure the response
// reports how many groups were committed.
func SaveKnowledgeBase(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entries []models.KnowledgeBaseEntry
		if err := c.BodyParser(&entries); err != nil {
			return badRequest(c, "Invalid request body")
		}

		result, err := a.Repo.SaveKnowledgeBase(c.UserContext(), entries)
		if err != nil {
			if result.CommittedGroups > 0 {
				a.Logger.Error("knowledge base partially saved", "committed", result.CommittedGroups, "total", result.TotalGroups, "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":  "Knowledge base partially saved",
					"result": result,
				})
			}
			return writeError(c, "Failed to save knowledge base", err)
		}

		return success(c, fiber.Map{"success": true, "result": result})
	}
}

func DeleteKnowledgeBaseEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Params("page"))
		if err != nil || page < 0 {
			return badRequest(c, "page must be a non-negative integer")
		}

		if err := a.Repo.DeleteKnowledgeBaseEntry(c.UserContext(), page); err != nil {
			return writeError(c, "Failed to delete entry", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
