package setup

import (
	"log/slog"
	"strconv"
	"time"

	"study-tracker/config"
	"study-tracker/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Request budgets per minute
const (
	ipRequestsPerMinute   = 200
	userRequestsPerMinute = 100
)

// ApplyMiddleware installs the global middleware chain
func ApplyMiddleware(app *fiber.App, cfg *config.Config, logger *slog.Logger) {
	app.Use(
		recover.New(recover.Config{EnableStackTrace: cfg.Env == "development"}),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:  "Origin,Content-Type,Accept,Authorization,X-Request-ID",
			ExposeHeaders: "X-Request-ID",
			MaxAge:        86400,
		}),
		RateLimit(ipRequestsPerMinute, func(c *fiber.Ctx) string { return c.IP() }),
	)
}

// RateLimit allows limit requests per minute for each key
func RateLimit(limit int, key func(c *fiber.Ctx) string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          limit,
		Expiration:   time.Minute,
		KeyGenerator: key,
		LimitReached: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(time.Minute.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		},
	})
}

// userKey rate-limits signed-in requests per user and the rest per IP
func userKey(c *fiber.Ctx) string {
	if userID := middleware.GetUserID(c); userID != "" {
		return "user:" + userID
	}
	return c.IP()
}
