package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// StructuredLogger logs one line per request. An incoming X-Request-ID is
// kept so a client can correlate its own logs.
func StructuredLogger(logger *slog.Logger) fiber.Handler {
	logger = logger.With("component", "http")

	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Locals("requestID", requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.IP()),
		}

		if userID, ok := c.Locals("userID").(string); ok && userID != "" {
			attrs = append(attrs, slog.String("user_id", userID))
		}
		if sess := GetSession(c); sess != nil && sess.ShortID != "" {
			attrs = append(attrs, slog.String("short_id", sess.ShortID))
		}

		level, msg := slog.LevelInfo, "request completed"
		switch {
		case err != nil:
			attrs = append(attrs, slog.String("error", err.Error()))
			level, msg = slog.LevelError, "request error"
		case status >= 500:
			level, msg = slog.LevelError, "server error"
		case status >= 400:
			level, msg = slog.LevelWarn, "client error"
		case c.Path() == "/health":
			level = slog.LevelDebug
		}

		logger.LogAttrs(c.Context(), level, msg, attrs...)
		return err
	}
}
