package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"couponweb/internal/model"
	"couponweb/internal/repository"
)

// SessionPostgres is a PostgreSQL implementation of repository.SessionRepository.
type SessionPostgres struct {
	db *sql.DB
}

// NewSessionPostgres creates a new SessionPostgres repository.
func NewSessionPostgres(db *sql.DB) *SessionPostgres {
	return &SessionPostgres{db: db}
}

var _ repository.SessionRepository = (*SessionPostgres)(nil)

// Create inserts a new session row.
func (r *SessionPostgres) Create(ctx context.Context, s *model.Session) error {
	const q = `
		INSERT INTO sessions (id, token, user_id, username, email, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		s.ID,
		s.Token,
		s.User.ID.String(),
		s.User.Username,
		s.User.Email,
		s.CreatedAt,
		s.ExpiresAt,
	)
	return err
}

// FindByID fetches a session by its cookie value.
func (r *SessionPostgres) FindByID(ctx context.Context, id string) (*model.Session, error) {
	const q = `
		SELECT id, token, user_id, username, email, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`
	var (
		s      model.Session
		userID string
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID,
		&s.Token,
		&userID,
		&s.User.Username,
		&s.User.Email,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	s.User.ID = model.ID(userID)
	return &s, nil
}

// Delete removes a session by ID.
func (r *SessionPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM sessions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// DeleteExpired purges sessions whose expiry is not after now.
func (r *SessionPostgres) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `DELETE FROM sessions WHERE expires_at <= $1`
	res, err := r.db.ExecContext(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
