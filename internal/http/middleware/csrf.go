package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"couponweb/internal/config"
)

const (
	// CSRFFormField is the hidden form input carrying the token.
	CSRFFormField = "_csrf"
	// CSRFCookieName holds the double-submit copy of the token.
	CSRFCookieName = "coupon_csrf"
	// CSRFLocalKey is the locals key holding the token for templates.
	CSRFLocalKey = "csrf"
)

// CSRF protects every state-changing form post. Safe requests get a token
// cookie and the token in locals; unsafe requests must echo it in
// CSRFFormField. The JSON API is read-only and skipped.
func CSRF(cfg config.SessionConfig) fiber.Handler {
	return csrf.New(csrf.Config{
		Next:           IsAPI,
		KeyLookup:      "form:" + CSRFFormField,
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		CookieSecure:   cfg.Secure,
		CookieHTTPOnly: true,
		Expiration:     cfg.TTL,
		ContextKey:     CSRFLocalKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fiber.NewError(fiber.StatusForbidden, "This form has expired. Go back, reload the page and try again.")
		},
	})
}

// CSRFToken returns the token stored by CSRF, or "".
func CSRFToken(c *fiber.Ctx) string {
	if s, ok := c.Locals(CSRFLocalKey).(string); ok {
		return s
	}
	return ""
}
