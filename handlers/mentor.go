package handlers

import (
	"study-tracker/app"
	"study-tracker/models"

	"github.com/gofiber/fiber/v2"
)

// GetMentorMessages responds 503 when the conversation could not be read,
// so clients can tell "unknown" apart from "empty"
func GetMentorMessages(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msgs := a.Repo.GetMentorMessages(c.UserContext())
		if msgs == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Messages unavailable"})
		}
		return success(c, fiber.Map{"messages": msgs})
	}
}

func SaveMentorMessage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var msg models.MentorMessage
		if err := c.BodyParser(&msg); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Repo.SaveMentorMessage(c.UserContext(), &msg); err != nil {
			return writeError(c, "Failed to save message", err)
		}
		return created(c, fiber.Map{"success": true, "message": msg})
	}
}

func ClearMentorMessages(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a.Repo.ClearMentorMessages(c.UserContext())
		return success(c, fiber.Map{"success": true})
	}
}

func GetMentorMemory(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{"memory": a.Repo.GetMentorMemory(c.UserContext())})
	}
}

func SaveMentorMemory(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var memory models.MentorMemory
		if err := c.BodyParser(&memory); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Repo.SaveMentorMemory(c.UserContext(), &memory); err != nil {
			return writeError(c, "Failed to save memory", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

func AddToBacklog(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.BacklogItem
		if err := c.BodyParser(&item); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Repo.AddToBacklog(c.UserContext(), &item); err != nil {
			return writeError(c, "Failed to add backlog item", err)
		}
		return created(c, fiber.Map{"success": true, "item": item})
	}
}

func RemoveFromBacklog(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Repo.RemoveFromBacklog(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, "Failed to remove backlog item", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
