package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"couponweb/internal/config"
	"couponweb/internal/service"
)

const registeredNotice = "Registration successful. Please log in."

// LoginPage renders the login form.
func LoginPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := fiber.Map{
			"Title":  "Login",
			"Form":   service.LoginForm{},
			"Errors": service.ValidationErrors(nil),
		}
		if c.Query("registered") != "" {
			data["Notice"] = registeredNotice
		}
		return render(c, fiber.StatusOK, "login", data)
	}
}

// Login authenticates the form, opens a session and sets its cookie.
func Login(auth service.AuthService, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form service.LoginForm
		if err := c.BodyParser(&form); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid form submission")
		}

		sess, err := auth.Login(c.UserContext(), form)
		if err != nil {
			form.Password = ""
			data := fiber.Map{"Title": "Login", "Form": form, "Errors": service.ValidationErrors(nil)}
			status := fiber.StatusUnprocessableEntity
			var verrs service.ValidationErrors
			switch {
			case errors.As(err, &verrs):
				data["Errors"] = verrs
			case errors.Is(err, service.ErrInvalidCredentials):
				status = fiber.StatusUnauthorized
				data["Error"] = "Invalid username or password"
			default:
				status, data["Error"] = remoteMessage(err, "Login failed")
			}
			return render(c, status, "login", data)
		}

		c.Cookie(sessionCookie(cfg, sess.ID, sess.ExpiresAt))
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
}

// RegisterPage renders the registration form.
func RegisterPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, fiber.StatusOK, "register", fiber.Map{
			"Title":  "Register",
			"Form":   service.RegisterForm{},
			"Errors": service.ValidationErrors(nil),
		})
	}
}

// Register creates the account and sends the user to the login page.
func Register(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form service.RegisterForm
		if err := c.BodyParser(&form); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid form submission")
		}

		if _, err := auth.Register(c.UserContext(), form); err != nil {
			form.Password, form.ConfirmPassword = "", ""
			data := fiber.Map{"Title": "Register", "Form": form, "Errors": service.ValidationErrors(nil)}
			status := fiber.StatusUnprocessableEntity
			var verrs service.ValidationErrors
			if errors.As(err, &verrs) {
				data["Errors"] = verrs
			} else {
				status, data["Error"] = remoteMessage(err, "Registration failed")
			}
			return render(c, status, "register", data)
		}

		return c.Redirect("/login?registered=1", fiber.StatusSeeOther)
	}
}

// Logout closes the session and clears the cookie.
func Logout(auth service.AuthService, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.Logout(c.UserContext(), c.Cookies(cfg.CookieName)); err != nil {
			return err
		}
		c.Cookie(sessionCookie(cfg, "", time.Unix(0, 0)))
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
}

func sessionCookie(cfg config.SessionConfig, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
