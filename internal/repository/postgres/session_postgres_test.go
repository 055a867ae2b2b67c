package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"couponweb/internal/model"
	"couponweb/internal/repository"
)

var sessionColumns = []string{"id", "token", "user_id", "username", "email", "created_at", "expires_at"}

func TestSessionPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSessionPostgres(db)
	now := time.Now().UTC()
	s := &model.Session{
		ID:        "5f0c7d8e-2b1a-4c3d-9e8f-0a1b2c3d4e5f",
		Token:     "jwt-token",
		User:      model.User{ID: "7", Username: "alice", Email: "alice@example.com"},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(s.ID, s.Token, "7", "alice", "alice@example.com", s.CreatedAt, s.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), s)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSessionPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now().UTC()
		rows := sqlmock.NewRows(sessionColumns).
			AddRow("sid", "tok", "7", "alice", "alice@example.com", now, now.Add(time.Hour))

		mock.ExpectQuery("SELECT (.+) FROM sessions WHERE id = ?").
			WithArgs("sid").
			WillReturnRows(rows)

		s, err := repo.FindByID(ctx, "sid")

		require.NoError(t, err)
		assert.Equal(t, "tok", s.Token)
		assert.Equal(t, model.ID("7"), s.User.ID)
		assert.Equal(t, "alice", s.User.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM sessions WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		s, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, s)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM sessions WHERE id = ?").
			WithArgs("sid").
			WillReturnError(errors.New("conn refused"))

		s, err := repo.FindByID(ctx, "sid")

		assert.EqualError(t, err, "conn refused")
		assert.Nil(t, s)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSessionPostgres(db)

	mock.ExpectExec("DELETE FROM sessions WHERE id = ?").
		WithArgs("sid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "sid")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionPostgres_DeleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSessionPostgres(db)
	now := time.Now().UTC()

	mock.ExpectExec("DELETE FROM sessions WHERE expires_at <= ?").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
