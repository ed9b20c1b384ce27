package persistence

import (
	"context"
	"database/sql"
	"time"

	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"

	"github.com/lib/pq"
)

// TagRepository persists per-user tags.
type TagRepository struct{ db *sql.DB }

func NewTagRepository(db *sql.DB) repository.ITag { return &TagRepository{db} }

func (r *TagRepository) GetByID(ctx context.Context, id int64) (model.Tag, error) {
	var t model.Tag
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, name, color, created_at FROM tags WHERE id = $1`, id)
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt)
	return t, err
}

func (r *TagRepository) ListByUser(ctx context.Context, userID int64) ([]model.Tag, error) {
	q := `SELECT t.id, t.user_id, t.name, t.color, t.created_at, COUNT(nt.note_id) AS notes_count
	      FROM tags t
	      LEFT JOIN note_tags nt ON nt.tag_id = t.id
	      WHERE t.user_id = $1
	      GROUP BY t.id
	      ORDER BY t.name`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("list tags failed")
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt, &t.NotesCount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TagRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tags WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *TagRepository) CountByIDsForUser(ctx context.Context, userID int64, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT id) FROM tags WHERE user_id = $1 AND id = ANY($2)`,
		userID, pq.Array(ids)).Scan(&count)
	return count, err
}

func (r *TagRepository) Create(ctx context.Context, tag model.Tag) (model.Tag, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO tags (user_id, name, color, created_at) VALUES ($1,$2,$3,$4) RETURNING id, created_at`,
		tag.UserID, tag.Name, tag.Color, now)
	if err := row.Scan(&tag.ID, &tag.CreatedAt); err != nil {
		logger.GetLogger().WithField("error", err).Error("create tag failed")
		return tag, err
	}
	return tag, nil
}

func (r *TagRepository) Update(ctx context.Context, tag model.Tag) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tags SET name = $2, color = $3 WHERE id = $1`, tag.ID, tag.Name, tag.Color)
	return err
}

func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	return err
}
