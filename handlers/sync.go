package handlers

import (
	"study-tracker/app"

	"github.com/gofiber/fiber/v2"
)

// GetSyncStatus reports how many store operations are currently running
func GetSyncStatus(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inFlight := a.Notifier.InFlight()
		return success(c, fiber.Map{
			"syncing":   inFlight > 0,
			"in_flight": inFlight,
		})
	}
}
