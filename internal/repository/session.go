package repository

import (
	"context"
	"time"

	"couponweb/internal/model"
)

// SessionRepository persists login sessions. No business logic here.
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	// FindByID returns the session or ErrNotFound. Expiry is not checked.
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// Delete removes a session. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes every session that expired before now and returns the count.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
