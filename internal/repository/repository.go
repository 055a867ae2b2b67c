// Package repository defines data access for coupons, accounts and sessions.
// Coupons and accounts live in the remote coupon service (see httpapi);
// sessions live in PostgreSQL (see postgres).
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when the coupon service rejects the credentials or token.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the coupon service. It unwraps to
// ErrNotFound for 404 and ErrUnauthorized for 401/403.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("coupon service returned status %d", e.Status)
	}
	return fmt.Sprintf("coupon service returned status %d: %s", e.Status, e.Message)
}

type tokenKey struct{}

// WithAuthToken returns a context carrying the bearer token for coupon service calls.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// AuthToken returns the bearer token stored by WithAuthToken, if any.
func AuthToken(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}
