package httpapi

import (
	"context"
	"errors"
	"net/http"

	"couponweb/internal/model"
	"couponweb/internal/repository"
)

// ErrNoToken is returned when a login succeeds without a token in the response.
var ErrNoToken = errors.New("login response did not include a token")

// AuthHTTP implements repository.AuthRepository over /api/auth.
type AuthHTTP struct {
	c *Client
}

// NewAuthHTTP creates an account repository backed by c.
func NewAuthHTTP(c *Client) *AuthHTTP {
	return &AuthHTTP{c: c}
}

var _ repository.AuthRepository = (*AuthHTTP)(nil)

// Login posts credentials to /api/auth/login.
func (r *AuthHTTP) Login(ctx context.Context, creds model.Credentials) (*model.AuthResult, error) {
	var out model.AuthResult
	if err := r.c.do(ctx, http.MethodPost, "/api/auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, ErrNoToken
	}
	return &out, nil
}

// Register posts a new account to /api/auth/register.
func (r *AuthHTTP) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	var out model.User
	if err := r.c.do(ctx, http.MethodPost, "/api/auth/register", nil, reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
