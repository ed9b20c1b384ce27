package persistence

import (
	"context"
	"database/sql"
	"time"

	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"
)

// VideoRepository persists the saved video library.
type VideoRepository struct{ db *sql.DB }

func NewVideoRepository(db *sql.DB) repository.IVideo { return &VideoRepository{db} }

const videoColumns = `id, user_id, youtube_id, title, thumbnail, channel_name, last_position, last_watched_at, created_at, updated_at`

func scanVideo(row interface{ Scan(...interface{}) error }) (model.Video, error) {
	var v model.Video
	err := row.Scan(&v.ID, &v.UserID, &v.YouTubeID, &v.Title, &v.Thumbnail, &v.ChannelName,
		&v.LastPosition, &v.LastWatchedAt, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *VideoRepository) GetByID(ctx context.Context, id int64) (model.Video, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	v, err := scanVideo(row)
	if err != nil && err != sql.ErrNoRows {
		logger.GetLogger().WithField("error", err).Error("query video by id failed")
	}
	return v, err
}

func (r *VideoRepository) ListByUser(ctx context.Context, userID int64, page, perPage int) ([]model.Video, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 12
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM videos WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	q := `SELECT v.id, v.user_id, v.youtube_id, v.title, v.thumbnail, v.channel_name,
	             v.last_position, v.last_watched_at, v.created_at, v.updated_at,
	             COUNT(n.id) AS notes_count
	      FROM videos v
	      LEFT JOIN notes n ON n.video_id = v.id
	      WHERE v.user_id = $1
	      GROUP BY v.id
	      ORDER BY v.updated_at DESC
	      LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, userID, perPage, (page-1)*perPage)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("list videos failed")
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Video, 0, perPage)
	for rows.Next() {
		var v model.Video
		if err := rows.Scan(&v.ID, &v.UserID, &v.YouTubeID, &v.Title, &v.Thumbnail, &v.ChannelName,
			&v.LastPosition, &v.LastWatchedAt, &v.CreatedAt, &v.UpdatedAt, &v.NotesCount); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

func (r *VideoRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM videos WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *VideoRepository) Upsert(ctx context.Context, video model.Video) (model.Video, error) {
	now := time.Now().UTC()
	q := `INSERT INTO videos (user_id, youtube_id, title, thumbnail, channel_name, created_at, updated_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$6)
	      ON CONFLICT (user_id, youtube_id) DO UPDATE SET
	        title = EXCLUDED.title, thumbnail = EXCLUDED.thumbnail,
	        channel_name = EXCLUDED.channel_name, updated_at = EXCLUDED.updated_at
	      RETURNING ` + videoColumns
	row := r.db.QueryRowContext(ctx, q, video.UserID, video.YouTubeID, video.Title, video.Thumbnail, video.ChannelName, now)
	v, err := scanVideo(row)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("upsert video failed")
	}
	return v, err
}

func (r *VideoRepository) UpdatePosition(ctx context.Context, id int64, position int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE videos SET last_position = $2, last_watched_at = NOW(), updated_at = NOW() WHERE id = $1`,
		id, position)
	return err
}

func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	return err
}
