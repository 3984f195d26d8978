package setup

import (
	"study-tracker/app"
	"study-tracker/config"
	"study-tracker/handlers"
	"study-tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App, cfg *config.Config) {
	// Locally stored uploads
	if cfg.BlobBackend == config.BlobLocal {
		fiberApp.Static("/files", cfg.BlobDir, fiber.Static{MaxAge: 3600})
	}

	// Public routes
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	// Auth routes
	fiberApp.Post("/api/auth/login", handlers.Login(application))
	fiberApp.Post("/api/auth/logout", handlers.Logout(application))
	fiberApp.Get("/api/auth/me", handlers.Me(application))

	// Protected API routes
	api := fiberApp.Group("/api",
		middleware.AuthRequired(application.SessionStore),
		RateLimit(userRequestsPerMinute, userKey),
	)

	RegisterAPI(api, application)
}

// RegisterAPI registers the authenticated API on router
func RegisterAPI(api fiber.Router, application *app.App) {
	api.Get("/profile", handlers.GetProfile(application))
	api.Put("/profile", handlers.SaveProfile(application))

	api.Get("/materials", handlers.GetMaterials(application))
	api.Post("/materials", handlers.SaveMaterial(application))
	api.Patch("/materials/:id", handlers.UpdateMaterial(application))
	api.Put("/materials/:id/active", handlers.ToggleMaterialActive(application))
	api.Delete("/materials/:id", handlers.DeleteMaterial(application))
	api.Get("/materials/:id/chat", handlers.GetMaterialChat(application))
	api.Post("/materials/:id/chat", handlers.AddMaterialChatMessage(application))
	api.Delete("/materials/:id/chat", handlers.ClearMaterialChat(application))

	api.Get("/mentor/messages", handlers.GetMentorMessages(application))
	api.Post("/mentor/messages", handlers.SaveMentorMessage(application))
	api.Delete("/mentor/messages", handlers.ClearMentorMessages(application))
	api.Get("/mentor/memory", handlers.GetMentorMemory(application))
	api.Put("/mentor/memory", handlers.SaveMentorMemory(application))
	api.Post("/mentor/backlog", handlers.AddToBacklog(application))
	api.Delete("/mentor/backlog/:id", handlers.RemoveFromBacklog(application))

	api.Get("/settings/:kind", handlers.GetSettings(application))
	api.Put("/settings/:kind", handlers.SaveSettings(application))

	api.Get("/plans/:date", handlers.GetDayPlan(application))
	api.Put("/plans/:date", handlers.SaveDayPlan(application))
	api.Delete("/plans/:date", handlers.DeleteDayPlan(application))
	api.Get("/trackers/:date", handlers.GetDailyTracker(application))
	api.Put("/trackers/:date", handlers.SaveDailyTracker(application))

	api.Get("/knowledge", handlers.GetKnowledgeBase(application))
	api.Post("/knowledge", handlers.SaveKnowledgeBase(application))
	api.Delete("/knowledge/:page", handlers.DeleteKnowledgeBaseEntry(application))

	api.Get("/timelogs", handlers.GetTimeLogs(application))
	api.Post("/timelogs", handlers.SaveTimeLog(application))
	api.Delete("/timelogs/:id", handlers.DeleteTimeLog(application))

	api.Get("/fmge", handlers.GetFMGEEntries(application))
	api.Post("/fmge", handlers.SaveFMGEEntry(application))
	api.Delete("/fmge/:id", handlers.DeleteFMGEEntry(application))

	api.Get("/study", handlers.GetStudyEntries(application))
	api.Post("/study", handlers.SaveStudyEntry(application))
	api.Delete("/study/:id", handlers.DeleteStudyEntry(application))

	api.Post("/attachments", handlers.UploadAttachment(application))
	api.Post("/attachments/temp", handlers.UploadTempAttachment(application))
	api.Delete("/attachments/temp", handlers.DeleteTempAttachment(application))

	api.Get("/sync/status", handlers.GetSyncStatus(application))
}
