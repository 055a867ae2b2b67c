package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"couponweb/internal/http/middleware"
	"couponweb/internal/http/view"
	"couponweb/internal/repository"
	"couponweb/internal/service"
)

// render executes a page template. Signed-in requests get the main layout
// with navigation; everything else gets the bare auth layout.
func render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Nav"]; !ok {
		data["Nav"] = ""
	}
	data["CSRF"] = middleware.CSRFToken(c)
	layout := view.AuthLayout
	if sess := middleware.SessionFrom(c); sess != nil {
		data["User"] = sess.User
		layout = view.MainLayout
	}
	return c.Status(status).Render(name, data, layout)
}

// upstreamError converts a coupon service failure into a page response.
// A rejected token sends the user back to the login page.
func upstreamError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrUnauthorized):
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	case errors.Is(err, service.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Coupon not found")
	default:
		return fiber.NewError(fiber.StatusBadGateway, msg)
	}
}

// remoteMessage returns the coupon service's own message for a rejected
// request (4xx), or fallback for anything else.
func remoteMessage(err error, fallback string) (int, string) {
	var apiErr *repository.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		if apiErr.Message != "" {
			return apiErr.Status, apiErr.Message
		}
		return apiErr.Status, fallback
	}
	return fiber.StatusBadGateway, fallback
}

// localRedirect returns target when it is a same-site path, otherwise fallback.
func localRedirect(target, fallback string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.HasPrefix(target, "/\\") {
		return target
	}
	return fallback
}
