package middleware

import (
	"errors"
	"strings"

	"study-tracker/models"
	"study-tracker/session"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the session id
const SessionCookie = "session_id"

// AuthRequired accepts a session id from the session cookie or an
// "Authorization: Bearer <session id>" header and puts the session's user
// into the request's user context.
func AuthRequired(sessionStore session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID, fromCookie, err := SessionID(c)
		if err != nil {
			message := "Missing authorization"
			if errors.Is(err, ErrMalformedAuthHeader) {
				message = "Invalid authorization header format"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": message,
			})
		}

		sess, err := sessionStore.Get(c.UserContext(), sessionID)
		if err != nil || sess == nil {
			if fromCookie {
				c.ClearCookie(SessionCookie)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		c.Locals("userID", sess.UserID)
		c.Locals("userEmail", sess.Email)
		c.Locals("session", sess)
		c.SetUserContext(session.WithUser(c.UserContext(), sess.User()))

		return c.Next()
	}
}

var (
	ErrMissingAuth         = errors.New("missing authorization")
	ErrMalformedAuthHeader = errors.New("malformed authorization header")
)

// SessionID returns the session id from the session cookie or, failing that,
// from an "Authorization: Bearer <session id>" header.
func SessionID(c *fiber.Ctx) (id string, fromCookie bool, err error) {
	if id := c.Cookies(SessionCookie); id != "" {
		return id, true, nil
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false, ErrMissingAuth
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false, ErrMalformedAuthHeader
	}
	return parts[1], false, nil
}

func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}

func GetSession(c *fiber.Ctx) *models.Session {
	sess, _ := c.Locals("session").(*models.Session)
	return sess
}
