package handlers

import (
	"study-tracker/app"
	"study-tracker/models"
	"study-tracker/validator"

	"github.com/gofiber/fiber/v2"
)

// GetTimeLogs returns the time logs for ?date=
func GetTimeLogs(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := c.Query("date")
		if !validator.IsDate(date) {
			return badRequest(c, "date must be in YYYY-MM-DD format")
		}
		return success(c, fiber.Map{"logs": a.Repo.GetTimeLogs(c.UserContext(), date)})
	}
}

func SaveTimeLog(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entry models.TimeLogEntry
		if err := c.BodyParser(&entry); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Repo.SaveTimeLog(c.UserContext(), &entry); err != nil {
			return writeError(c, "Failed to save time log", err)
		}
		return created(c, fiber.Map{"success": true, "log": entry})
	}
}

func DeleteTimeLog(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Repo.DeleteTimeLog(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, "Failed to delete time log", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

func GetFMGEEntries(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{"entries": a.Repo.GetFMGEEntries(c.UserContext())})
	}
}

func SaveFMGEEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entry models.FMGEEntry
		if err := c.BodyParser(&entry); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Repo.SaveFMGEEntry(c.UserContext(), &entry); err != nil {
			return writeError(c, "Failed to save entry", err)
		}
		return created(c, fiber.Map{"success": true, "entry": entry})
	}
}

func DeleteFMGEEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Repo.DeleteFMGEEntry(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, "Failed to delete entry", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

// GetStudyEntries returns the study entries for ?date=
func GetStudyEntries(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := c.Query("date")
		if !validator.IsDate(date) {
			return badRequest(c, "date must be in YYYY-MM-DD format")
		}
		return success(c, fiber.Map{"entries": a.Repo.GetStudyEntries(c.UserContext(), date)})
	}
}

func SaveStudyEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entry models.StudyEntry
		if err := c.BodyParser(&entry); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Repo.SaveStudyEntry(c.UserContext(), &entry); err != nil {
			return writeError(c, "Failed to save entry", err)
		}
		return created(c, fiber.Map{"success": true, "entry": entry})
	}
}

func DeleteStudyEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Repo.DeleteStudyEntry(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, "Failed to delete entry", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
