package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vidnotes/domain/dto"
	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"

	"github.com/lib/pq"
)

// NoteRepository persists quick notes and their tag links.
type NoteRepository struct{ db *sql.DB }

func NewNoteRepository(db *sql.DB) repository.INote { return &NoteRepository{db} }

func (r *NoteRepository) GetByID(ctx context.Context, id int64) (model.Note, error) {
	var n model.Note
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, video_id, content, "timestamp", created_at, updated_at FROM notes WHERE id = $1`, id)
	if err := row.Scan(&n.ID, &n.UserID, &n.VideoID, &n.Content, &n.Timestamp, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return n, err
	}
	tags, err := r.tagsForNotes(ctx, []int64{n.ID})
	if err != nil {
		return n, err
	}
	n.Tags = tags[n.ID]
	if n.Tags == nil {
		n.Tags = []model.Tag{}
	}
	return n, nil
}

func (r *NoteRepository) List(ctx context.Context, userID int64, filter dto.NoteFilter) ([]model.Note, int64, error) {
	where := `WHERE n.user_id = $1`
	args := []interface{}{userID}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND n.content ILIKE $%d`, len(args))
	}
	if filter.VideoID != 0 {
		args = append(args, filter.VideoID)
		where += fmt.Sprintf(` AND n.video_id = $%d`, len(args))
	}
	if filter.TagID != 0 {
		args = append(args, filter.TagID)
		where += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM note_tags nt WHERE nt.note_id = n.id AND nt.tag_id = $%d)`, len(args))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM notes n `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}
	args = append(args, perPage, (page-1)*perPage)
	q := fmt.Sprintf(`SELECT n.id, n.user_id, n.video_id, n.content, n."timestamp", n.created_at, n.updated_at,
	             v.id, v.user_id, v.youtube_id, v.title, v.thumbnail, v.channel_name, v.last_position, v.last_watched_at, v.created_at, v.updated_at
	      FROM notes n
	      JOIN videos v ON v.id = n.video_id
	      %s
	      ORDER BY n.updated_at DESC
	      LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("list notes failed")
		return nil, 0, err
	}
	defer rows.Close()

	notes := make([]model.Note, 0, perPage)
	var noteIDs []int64
	for rows.Next() {
		var n model.Note
		var v model.Video
		if err := rows.Scan(&n.ID, &n.UserID, &n.VideoID, &n.Content, &n.Timestamp, &n.CreatedAt, &n.UpdatedAt,
			&v.ID, &v.UserID, &v.YouTubeID, &v.Title, &v.Thumbnail, &v.ChannelName, &v.LastPosition, &v.LastWatchedAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		n.Video = &v
		n.Tags = []model.Tag{}
		notes = append(notes, n)
		noteIDs = append(noteIDs, n.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	tagsByNote, err := r.tagsForNotes(ctx, noteIDs)
	if err != nil {
		return nil, 0, err
	}
	for i := range notes {
		if tags, ok := tagsByNote[notes[i].ID]; ok {
			notes[i].Tags = tags
		}
	}
	return notes, total, nil
}

func (r *NoteRepository) tagsForNotes(ctx context.Context, noteIDs []int64) (map[int64][]model.Tag, error) {
	out := make(map[int64][]model.Tag)
	if len(noteIDs) == 0 {
		return out, nil
	}
	q := `SELECT nt.note_id, t.id, t.user_id, t.name, t.color, t.created_at
	      FROM note_tags nt
	      JOIN tags t ON t.id = nt.tag_id
	      WHERE nt.note_id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(noteIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var noteID int64
		var t model.Tag
		if err := rows.Scan(&noteID, &t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, err
		}
		out[noteID] = append(out[noteID], t)
	}
	return out, rows.Err()
}

func (r *NoteRepository) CountByVideo(ctx context.Context, userID, videoID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM notes WHERE user_id = $1 AND video_id = $2`, userID, videoID).Scan(&count)
	return count, err
}

func (r *NoteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO notes (user_id, video_id, content, "timestamp", created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$5)
		 RETURNING id, created_at, updated_at`,
		note.UserID, note.VideoID, note.Content, note.Timestamp, now)
	if err := row.Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt); err != nil {
		logger.GetLogger().WithField("error", err).Error("create note failed")
		return note, err
	}
	if note.Tags == nil {
		note.Tags = []model.Tag{}
	}
	return note, nil
}

func (r *NoteRepository) Update(ctx context.Context, note model.Note) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET content = $2, "timestamp" = $3, updated_at = NOW() WHERE id = $1`,
		note.ID, note.Content, note.Timestamp)
	return err
}

func (r *NoteRepository) SyncTags(ctx context.Context, noteID int64, tagIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = $1`, noteID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO note_tags (note_id, tag_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`, noteID, tagID); err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	return err
}
