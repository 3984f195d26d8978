package setup

import (
	"errors"
	"log/slog"
	"time"

	"study-tracker/config"

	"github.com/gofiber/fiber/v2"
)

// maxUploadSize bounds request bodies, attachments included
const maxUploadSize = 25 * 1024 * 1024

// NewFiberApp creates the Fiber application serving the JSON API
func NewFiberApp(cfg *config.Config, logger *slog.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "study-tracker",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           30 * time.Second,
		DisableStartupMessage: cfg.Env == "production",
		BodyLimit:             maxUploadSize,
		ErrorHandler:          ErrorHandler(logger),
		ReadBufferSize:        8192,
	})
}

// ErrorHandler renders errors that escape the handlers as {"error": ...}.
// Messages of fiber errors are passed through; anything else becomes a 500
// without details, which are logged instead.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		requestID, _ := c.Locals("requestID").(string)
		level := slog.LevelWarn
		if code >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.UserContext(), level, "request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
