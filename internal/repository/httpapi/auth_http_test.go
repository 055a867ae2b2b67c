package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"couponweb/internal/model"
	"couponweb/internal/repository"
)

func newAuthRepo(srv *httptest.Server) *AuthHTTP {
	return NewAuthHTTP(NewClientWithHTTP(srv.URL, &http.Client{Timeout: 2 * time.Second}))
}

func TestAuthHTTP_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, rec := newTestServer(t, http.StatusOK, `{"token":"jwt","user":{"id":1,"username":"alice","email":"a@example.com"}}`)

		res, err := newAuthRepo(srv).Login(context.Background(), model.Credentials{Username: "alice", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "jwt", res.Token)
		assert.Equal(t, "alice", res.User.Username)
		assert.Equal(t, "/api/auth/login", rec.path)

		var sent model.Credentials
		require.NoError(t, json.Unmarshal([]byte(rec.body), &sent))
		assert.Equal(t, "secret1", sent.Password)
	})

	t.Run("rejected", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusUnauthorized, `{"message":"Invalid username or password"}`)

		res, err := newAuthRepo(srv).Login(context.Background(), model.Credentials{Username: "alice", Password: "bad"})

		assert.Nil(t, res)
		assert.ErrorIs(t, err, repository.ErrUnauthorized)
		assert.Contains(t, err.Error(), "Invalid username or password")
	})

	t.Run("no token", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{"user":{"username":"alice"}}`)

		res, err := newAuthRepo(srv).Login(context.Background(), model.Credentials{Username: "alice"})

		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrNoToken)
	})
}

func TestAuthHTTP_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		srv, rec := newTestServer(t, http.StatusCreated, `{"id":2,"username":"bob","email":"bob@example.com"}`)

		u, err := newAuthRepo(srv).Register(context.Background(), model.Registration{Username: "bob", Email: "bob@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, model.ID("2"), u.ID)
		assert.Equal(t, http.MethodPost, rec.method)
		assert.Equal(t, "/api/auth/register", rec.path)
	})

	t.Run("duplicate", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusBadRequest, `{"message":"Username already exists"}`)

		u, err := newAuthRepo(srv).Register(context.Background(), model.Registration{Username: "bob"})

		assert.Nil(t, u)
		var apiErr *repository.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Username already exists", apiErr.Message)
	})
}
