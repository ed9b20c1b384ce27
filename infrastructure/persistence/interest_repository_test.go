package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var errForeignKey = errors.New("foreign key violation")

func TestInterestCategoryRepository_CountByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewInterestCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(DISTINCT id) FROM interest_categories WHERE id = ANY($1)`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repository.CountByIDs(context.Background(), []int64{1, 2})

	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInterestCategoryRepository_CountByIDs_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewInterestCategoryRepository(db)

	count, err := repository.CountByIDs(context.Background(), nil)

	require.NoError(t, err)
	require.Zero(t, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInterestRepository_GetByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewInterestRepository(db)

	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	columns := []string{"id", "user_id", "interest_category_id", "custom_keyword", "created_at",
		"id", "name", "slug", "icon", "color", "sort_order"}

	mock.ExpectQuery("SELECT ui.id, ui.user_id, ui.interest_category_id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(10, 1, 3, nil, createdAt, 3, "Cooking", "cooking", "utensils", "#f59e0b", 3).
			AddRow(11, 1, nil, "chess", createdAt, nil, nil, nil, nil, nil, nil))

	interests, err := repository.GetByUser(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, interests, 2)
	require.Equal(t, "Cooking", interests[0].Category.Name)
	require.Equal(t, "Cooking", interests[0].SearchTerm())
	require.Nil(t, interests[1].Category)
	require.Equal(t, "chess", interests[1].SearchTerm())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInterestRepository_ReplaceForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewInterestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_interests WHERE user_id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_interests (user_id, interest_category_id, created_at)`)).
		WithArgs(int64(1), int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_interests (user_id, custom_keyword, created_at)`)).
		WithArgs(int64(1), "chess", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err = repository.ReplaceForUser(context.Background(), 1, []int64{3}, []string{"chess"})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInterestRepository_ReplaceForUser_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewInterestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_interests WHERE user_id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_interests (user_id, interest_category_id, created_at)`)).
		WithArgs(int64(1), int64(99), sqlmock.AnyArg()).
		WillReturnError(errForeignKey)
	mock.ExpectRollback()

	err = repository.ReplaceForUser(context.Background(), 1, []int64{99}, nil)

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
