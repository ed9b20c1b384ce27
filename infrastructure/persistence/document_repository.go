package persistence

import (
	"context"
	"database/sql"
	"time"

	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"
)

// DocumentRepository persists per-video rich-text documents and their tag
// links.
type DocumentRepository struct{ db *sql.DB }

func NewDocumentRepository(db *sql.DB) repository.IDocument { return &DocumentRepository{db} }

func (r *DocumentRepository) GetByVideo(ctx context.Context, userID, videoID int64) (model.Document, error) {
	var d model.Document
	var contentJSON []byte
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, video_id, content, content_json, created_at, updated_at
		 FROM documents WHERE user_id = $1 AND video_id = $2`, userID, videoID)
	if err := row.Scan(&d.ID, &d.UserID, &d.VideoID, &d.Content, &contentJSON, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if err != sql.ErrNoRows {
			logger.GetLogger().WithField("error", err).Error("get document failed")
		}
		return d, err
	}
	d.ContentJSON = contentJSON
	tags, err := r.tagsForDocument(ctx, d.ID)
	if err != nil {
		return d, err
	}
	d.Tags = tags
	return d, nil
}

func (r *DocumentRepository) Upsert(ctx context.Context, document model.Document) (model.Document, error) {
	now := time.Now().UTC()
	var contentJSON interface{}
	if len(document.ContentJSON) > 0 {
		contentJSON = []byte(document.ContentJSON)
	}
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO documents (user_id, video_id, content, content_json, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$5)
		 ON CONFLICT (user_id, video_id) DO UPDATE SET
		   content = EXCLUDED.content, content_json = EXCLUDED.content_json, updated_at = EXCLUDED.updated_at
		 RETURNING id, created_at, updated_at`,
		document.UserID, document.VideoID, document.Content, contentJSON, now)
	if err := row.Scan(&document.ID, &document.CreatedAt, &document.UpdatedAt); err != nil {
		logger.GetLogger().WithField("error", err).Error("upsert document failed")
		return document, err
	}
	if document.Tags == nil {
		document.Tags = []model.Tag{}
	}
	return document, nil
}

func (r *DocumentRepository) tagsForDocument(ctx context.Context, documentID int64) ([]model.Tag, error) {
	q := `SELECT t.id, t.user_id, t.name, t.color, t.created_at
	      FROM document_tags dt
	      JOIN tags t ON t.id = dt.tag_id
	      WHERE dt.document_id = $1`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *DocumentRepository) SyncTags(ctx context.Context, documentID int64, tagIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM document_tags WHERE document_id = $1`, documentID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO document_tags (document_id, tag_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`, documentID, tagID); err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}
