package repository

import (
	"context"

	"couponweb/internal/model"
)

// AuthRepository is the coupon service's account API.
type AuthRepository interface {
	// Login exchanges credentials for a token. Rejected credentials yield ErrUnauthorized
	// or an *APIError carrying the service's message.
	Login(ctx context.Context, creds model.Credentials) (*model.AuthResult, error)
	// Register creates an account and returns it without a password.
	Register(ctx context.Context, reg model.Registration) (*model.User, error)
}
