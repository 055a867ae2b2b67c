package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"couponweb/internal/model"
	"couponweb/internal/repository"
	"couponweb/internal/service"
)

// SessionLocalKey is the context locals key holding the *model.Session.
const SessionLocalKey = "session"

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

// RequireSession admits only requests carrying a live session cookie.
// Pages are redirected to LoginPath; /api requests get a 401 error.
// Downstream handlers find the session in locals and the coupon service
// token in the user context.
func RequireSession(auth service.AuthService, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.Authenticate(c.UserContext(), c.Cookies(cookieName))
		if err != nil {
			if !errors.Is(err, service.ErrUnauthenticated) {
				return err
			}
			if c.Cookies(cookieName) != "" {
				c.ClearCookie(cookieName)
			}
			if IsAPI(c) {
				return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
			}
			return c.Redirect(LoginPath, fiber.StatusSeeOther)
		}

		c.Locals(SessionLocalKey, sess)
		c.SetUserContext(repository.WithAuthToken(c.UserContext(), sess.Token))
		return c.Next()
	}
}

// SessionFrom returns the session stored by RequireSession, or nil.
func SessionFrom(c *fiber.Ctx) *model.Session {
	if s, ok := c.Locals(SessionLocalKey).(*model.Session); ok {
		return s
	}
	return nil
}

// IsAPI reports whether the request targets the JSON API.
func IsAPI(c *fiber.Ctx) bool {
	p := c.Path()
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
