package handlers

import (
	"study-tracker/app"
	"study-tracker/models"
	"study-tracker/validator"

	"github.com/gofiber/fiber/v2"
)

func GetDayPlan(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := c.Params("date")
		if !validator.IsDate(date) {
			return badRequest(c, "date must be in YYYY-MM-DD format")
		}
		return success(c, fiber.Map{"plan": a.Repo.GetDayPlan(c.UserContext(), date)})
	}
}

// SaveDayPlan replaces the plan for :date
func SaveDayPlan(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var plan models.DayPlan
		if err := c.BodyParser(&plan); err != nil {
			return badRequest(c, "Invalid request body")
		}
		plan.Date = c.Params("date")

		if err := a.Repo.SaveDayPlan(c.UserContext(), &plan); err != nil {
			return writeError(c, "Failed to save day plan", err)
		}
		return success(c, fiber.Map{"success": true, "plan": plan})
	}
}

func DeleteDayPlan(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Repo.DeleteDayPlan(c.UserContext(), c.Params("date")); err != nil {
			return writeError(c, "Failed to delete day plan", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}

func GetDailyTracker(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := c.Params("date")
		if !validator.IsDate(date) {
			return badRequest(c, "date must be in YYYY-MM-DD format")
		}
		return success(c, fiber.Map{"tracker": a.Repo.GetDailyTracker(c.UserContext(), date)})
	}
}

// SaveDailyTracker merges the body into the tracker for :date
func SaveDailyTracker(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tracker models.DailyTracker
		if err := c.BodyParser(&tracker); err != nil {
			return badRequest(c, "Invalid request body")
		}
		tracker.Date = c.Params("date")

		if err := a.Repo.SaveDailyTracker(c.UserContext(), &tracker); err != nil {
			return writeError(c, "Failed to save tracker", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
