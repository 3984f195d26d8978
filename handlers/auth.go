package handlers

import (
	"errors"

	"study-tracker/app"
	"study-tracker/config"
	"study-tracker/identity"
	"study-tracker/middleware"
	"study-tracker/models"

	"github.com/gofiber/fiber/v2"
)

// Login signs in with a short id, creating the account on first use
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		resp, err := a.AuthService.Login(c.UserContext(), req.ID)
		if err != nil {
			if errors.Is(err, identity.ErrEmptyID) {
				return badRequest(c, "id is required")
			}
			a.Logger.Warn("login failed", "short_id", identity.Normalize(req.ID), "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication failed",
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     middleware.SessionCookie,
			Value:    resp.Session.ID,
			Expires:  resp.Session.ExpiresAt,
			HTTPOnly: true,
			Secure:   config.AppConfig != nil && config.AppConfig.Env == "production",
			SameSite: "Lax",
			Path:     "/",
		})

		a.Logger.Info("login successful", "uid", resp.Session.UserID, "new_profile", resp.NewProfile)

		return success(c, fiber.Map{
			"success":    true,
			"session_id": resp.Session.ID,
			"user":       resp.Session.User(),
			"profile":    resp.Profile,
			"newProfile": resp.NewProfile,
		})
	}
}

// Logout handles user logout
func Logout(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessionID, _, err := middleware.SessionID(c); err == nil {
			if err := a.AuthService.Logout(c.UserContext(), sessionID); err != nil {
				a.Logger.Warn("failed to delete session", "error", err)
			}
		}

		c.ClearCookie(middleware.SessionCookie)

		return success(c, fiber.Map{
			"success": true,
		})
	}
}

// Me returns the current user's session information
func Me(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID, fromCookie, err := middleware.SessionID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"authenticated": false,
			})
		}

		sess, err := a.AuthService.GetSessionInfo(c.UserContext(), sessionID)
		if err != nil {
			if fromCookie {
				c.ClearCookie(middleware.SessionCookie)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"authenticated": false,
			})
		}

		return success(c, fiber.Map{
			"authenticated": true,
			"user":          sess.User(),
			"expires_at":    sess.ExpiresAt,
		})
	}
}
