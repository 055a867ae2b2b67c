package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"couponweb/internal/model"
	"couponweb/internal/repository"
)

var (
	// ErrUnauthenticated means the request carries no live session.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials means the coupon service rejected the login.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService manages accounts through the coupon service and login sessions locally.
type AuthService interface {
	// Login authenticates against the coupon service and opens a session.
	Login(ctx context.Context, form LoginForm) (*model.Session, error)
	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, form RegisterForm) (*model.User, error)
	// Authenticate resolves a session cookie value. Expired sessions are removed.
	Authenticate(ctx context.Context, sessionID string) (*model.Session, error)
	// Logout closes the session. Unknown ids are ignored.
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	auth     repository.AuthRepository
	sessions repository.SessionRepository
	ttl      time.Duration
	now      Clock
}

// NewAuthService constructs an AuthService. Sessions live for ttl unless the
// coupon service token expires sooner.
func NewAuthService(auth repository.AuthRepository, sessions repository.SessionRepository, ttl time.Duration, now Clock) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{auth: auth, sessions: sessions, ttl: ttl, now: now}
}

func (s *authService) Login(ctx context.Context, form LoginForm) (*model.Session, error) {
	creds, verrs := form.Validate()
	if verrs != nil {
		return nil, verrs
	}
	res, err := s.auth.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, repository.ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	now := s.now().UTC()
	sess := &model.Session{
		ID:        uuid.New().String(),
		Token:     res.Token,
		User:      res.User,
		CreatedAt: now,
		ExpiresAt: sessionExpiry(res.Token, now, s.ttl),
	}
	if sess.User.Username == "" {
		sess.User.Username = creds.Username
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	// Housekeeping only; a failed purge does not fail the login.
	_, _ = s.sessions.DeleteExpired(ctx, now)
	return sess, nil
}

func (s *authService) Register(ctx context.Context, form RegisterForm) (*model.User, error) {
	reg, verrs := form.Validate()
	if verrs != nil {
		return nil, verrs
	}
	u, err := s.auth.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return u, nil
}

func (s *authService) Authenticate(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sess.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, ErrUnauthenticated
	}
	return sess, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// sessionExpiry is now+ttl, or the token's exp claim when that is earlier.
// The token is issued by the coupon service and is not verified here.
func sessionExpiry(token string, now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return exp
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(exp) {
		return claims.ExpiresAt.Time.UTC()
	}
	return exp
}
