package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"couponweb/internal/http/middleware"
	"couponweb/internal/logging"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler. /api routes get the JSON
// error payload; pages get the error template.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Something went wrong. Please try again."
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		} else {
			logging.Default().Error("unhandled_error", err, logging.Fields{
				"request_id": middleware.RequestIDFrom(c),
				"path":       c.Path(),
			})
		}

		if middleware.IsAPI(c) {
			return writeAPIError(c, status)
		}

		rerr := render(c, status, "error", fiber.Map{
			"Title":   statusTitle(status),
			"Status":  status,
			"Message": message,
		})
		if rerr != nil {
			return c.Status(status).SendString(message)
		}
		return nil
	}
}

func writeAPIError(c *fiber.Ctx, status int) error {
	switch status {
	case fiber.StatusBadRequest:
		return writeError(c, status, "BAD_REQUEST", "bad request")
	case fiber.StatusUnauthorized:
		return writeError(c, status, "UNAUTHORIZED", "authentication required")
	case fiber.StatusNotFound:
		return writeError(c, status, "NOT_FOUND", "resource not found")
	case fiber.StatusMethodNotAllowed:
		return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
	case fiber.StatusBadGateway:
		return writeError(c, status, "UPSTREAM_ERROR", "coupon service unavailable")
	case fiber.StatusServiceUnavailable:
		return writeError(c, status, "SERVICE_UNAVAILABLE", "service unavailable")
	default:
		return writeError(c, status, "INTERNAL_ERROR", "internal server error")
	}
}

func statusTitle(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusMethodNotAllowed:
		return "Method Not Allowed"
	case fiber.StatusBadGateway:
		return "Coupon Service Unavailable"
	case fiber.StatusServiceUnavailable:
		return "Unavailable"
	}
	if status < fiber.StatusInternalServerError {
		return "Request Error"
	}
	return "Error"
}
