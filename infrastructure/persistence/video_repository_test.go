package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"vidnotes/domain/model"
)

func videoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "youtube_id", "title", "thumbnail", "channel_name",
		"last_position", "last_watched_at", "created_at", "updated_at"})
}

func TestVideoRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO videos`)).
		WithArgs(int64(1), "dQw4w9WgXcQ", "Never Gonna Give You Up", nil, nil, sqlmock.AnyArg()).
		WillReturnRows(videoRows().
			AddRow(7, 1, "dQw4w9WgXcQ", "Never Gonna Give You Up", nil, nil, 0, nil, createdAt, createdAt))

	video, err := repository.Upsert(context.Background(), model.Video{
		UserID:    1,
		YouTubeID: "dQw4w9WgXcQ",
		Title:     "Never Gonna Give You Up",
	})

	require.NoError(t, err)
	require.Equal(t, int64(7), video.ID)
	require.Zero(t, video.LastPosition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(1) FROM videos WHERE user_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT v.id, v.user_id, v.youtube_id").
		WithArgs(int64(1), 12, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "youtube_id", "title", "thumbnail", "channel_name",
			"last_position", "last_watched_at", "created_at", "updated_at", "notes_count"}).
			AddRow(7, 1, "dQw4w9WgXcQ", "Never Gonna Give You Up", nil, nil, 42, nil, createdAt, createdAt, 3))

	videos, total, err := repository.ListByUser(context.Background(), 1, 1, 12)

	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, videos, 1)
	require.Equal(t, 3, videos[0].NotesCount)
	require.Equal(t, 42, videos[0].LastPosition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_UpdatePosition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE videos SET last_position = $2, last_watched_at = NOW(), updated_at = NOW() WHERE id = $1`)).
		WithArgs(int64(7), 130).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repository.UpdatePosition(context.Background(), 7, 130))
	require.NoError(t, mock.ExpectationsWereMet())
}
