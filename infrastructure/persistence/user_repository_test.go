package persistence

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"vidnotes/domain/model"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	createdAt := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password, google_id, avatar, is_admin, created_at, updated_at FROM users WHERE email = $1`)).
		WithArgs("maya@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "google_id", "avatar", "is_admin", "created_at", "updated_at"}).
			AddRow(1, "Maya", "maya@example.com", "a252f77af72638ea5a0f9e5fbe5f2b2e", nil, nil, false, createdAt, createdAt))

	user, err := repository.GetByEmail(context.Background(), "maya@example.com")

	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "Maya", user.Name)
	require.Nil(t, user.GoogleID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password, google_id, avatar, is_admin, created_at, updated_at FROM users WHERE email = $1`)).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err = repository.GetByEmail(context.Background(), "nobody@example.com")

	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("Maya", "maya@example.com", "hash", nil, nil, false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := repository.CreateUser(context.Background(), model.User{Name: "Maya", Email: "maya@example.com", Password: "hash"})

	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_IsPremium(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1 AND stripe_status = 'active')`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	premium, err := repository.IsPremium(context.Background(), 1)

	require.NoError(t, err)
	require.True(t, premium)
	require.NoError(t, mock.ExpectationsWereMet())
}
