package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"couponweb/internal/model"
	"couponweb/internal/repository"
	repoMocks "couponweb/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func TestSessionExpiry(t *testing.T) {
	ttl := 24 * time.Hour

	assert.Equal(t, testNow.Add(ttl), sessionExpiry("opaque-token", testNow, ttl))

	soon := testNow.Add(time.Hour)
	assert.True(t, soon.Equal(sessionExpiry(signedToken(t, soon), testNow, ttl)))

	late := testNow.Add(48 * time.Hour)
	assert.Equal(t, testNow.Add(ttl), sessionExpiry(signedToken(t, late), testNow, ttl))
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	form := LoginForm{Username: "alice", Password: "secret"}
	creds := model.Credentials{Username: "alice", Password: "secret"}

	t.Run("opens a session", func(t *testing.T) {
		auth := new(repoMocks.MockAuthRepository)
		sessions := new(repoMocks.MockSessionRepository)
		auth.On("Login", ctx, creds).Return(&model.AuthResult{Token: "tok", User: model.User{ID: "1", Username: "alice"}}, nil)
		sessions.On("Create", ctx, mock.MatchedBy(func(s *model.Session) bool {
			return s.ID != "" && s.Token == "tok" && s.ExpiresAt.Equal(testNow.Add(time.Hour))
		})).Return(nil)
		sessions.On("DeleteExpired", ctx, testNow).Return(int64(2), nil)

		sess, err := NewAuthService(auth, sessions, time.Hour, fixedClock()).Login(ctx, form)
		require.NoError(t, err)
		assert.Equal(t, "alice", sess.User.Username)
		auth.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("purge failure is ignored", func(t *testing.T) {
		auth := new(repoMocks.MockAuthRepository)
		sessions := new(repoMocks.MockSessionRepository)
		auth.On("Login", ctx, creds).Return(&model.AuthResult{Token: "tok"}, nil)
		sessions.On("Create", ctx, mock.Anything).Return(nil)
		sessions.On("DeleteExpired", ctx, mock.Anything).Return(int64(0), errors.New("db down"))

		sess, err := NewAuthService(auth, sessions, time.Hour, fixedClock()).Login(ctx, form)
		require.NoError(t, err)
		// falls back to the submitted username
		assert.Equal(t, "alice", sess.User.Username)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		auth := new(repoMocks.MockAuthRepository)
		sessions := new(repoMocks.MockSessionRepository)
		auth.On("Login", ctx, creds).Return(nil, &repository.APIError{Status: 401, Message: "Invalid credentials"})

		_, err := NewAuthService(auth, sessions, time.Hour, fixedClock()).Login(ctx, form)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty form", func(t *testing.T) {
		auth := new(repoMocks.MockAuthRepository)
		_, err := NewAuthService(auth, new(repoMocks.MockSessionRepository), time.Hour, fixedClock()).Login(ctx, LoginForm{})
		var verrs ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("session store failure", func(t *testing.T) {
		auth := new(repoMocks.MockAuthRepository)
		sessions := new(repoMocks.MockSessionRepository)
		auth.On("Login", ctx, creds).Return(&model.AuthResult{Token: "tok"}, nil)
		sessions.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

		_, err := NewAuthService(auth, sessions, time.Hour, fixedClock()).Login(ctx, form)
		assert.EqualError(t, err, "save session: insert failed")
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	auth := new(repoMocks.MockAuthRepository)
	reg := model.Registration{Username: "bob", Email: "bob@example.com", Password: "secret"}
	auth.On("Register", ctx, reg).Return(&model.User{ID: "2", Username: "bob"}, nil)

	svc := NewAuthService(auth, new(repoMocks.MockSessionRepository), time.Hour, fixedClock())
	u, err := svc.Register(ctx, RegisterForm{Username: "bob", Email: "Bob@Example.com", Password: "secret", ConfirmPassword: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = svc.Register(ctx, RegisterForm{Username: "bob"})
	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	auth.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	live := &model.Session{ID: "live", ExpiresAt: testNow.Add(time.Minute)}
	stale := &model.Session{ID: "stale", ExpiresAt: testNow}

	sessions := new(repoMocks.MockSessionRepository)
	sessions.On("FindByID", ctx, "live").Return(live, nil)
	sessions.On("FindByID", ctx, "stale").Return(stale, nil)
	sessions.On("Delete", ctx, "stale").Return(nil)
	sessions.On("FindByID", ctx, "gone").Return(nil, repository.ErrNotFound)
	sessions.On("FindByID", ctx, "broken").Return(nil, errors.New("db down"))

	svc := NewAuthService(new(repoMocks.MockAuthRepository), sessions, time.Hour, fixedClock())

	got, err := svc.Authenticate(ctx, "live")
	require.NoError(t, err)
	assert.Same(t, live, got)

	_, err = svc.Authenticate(ctx, "stale")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "gone")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)

	sessions.AssertExpectations(t)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	sessions := new(repoMocks.MockSessionRepository)
	sessions.On("Delete", ctx, "abc").Return(nil)

	svc := NewAuthService(new(repoMocks.MockAuthRepository), sessions, time.Hour, fixedClock())
	assert.NoError(t, svc.Logout(ctx, "abc"))
	assert.NoError(t, svc.Logout(ctx, ""))
	sessions.AssertNumberOfCalls(t, "Delete", 1)
}
