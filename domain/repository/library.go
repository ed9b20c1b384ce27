package repository

import (
	"context"

	"vidnotes/domain/dto"
	"vidnotes/domain/model"
)

// IVideo persists a user's saved video library.
type IVideo interface {
	GetByID(ctx context.Context, id int64) (model.Video, error)
	// ListByUser returns a page of videos with note counts, most recently
	// updated first.
	ListByUser(ctx context.Context, userID int64, page, perPage int) ([]model.Video, int64, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	// Upsert saves a video keyed on (user, youtube id) and returns the row.
	Upsert(ctx context.Context, video model.Video) (model.Video, error)
	UpdatePosition(ctx context.Context, id int64, position int) error
	Delete(ctx context.Context, id int64) error
}

// INote persists quick notes and their tag links.
type INote interface {
	GetByID(ctx context.Context, id int64) (model.Note, error)
	List(ctx context.Context, userID int64, filter dto.NoteFilter) ([]model.Note, int64, error)
	CountByVideo(ctx context.Context, userID, videoID int64) (int, error)
	Create(ctx context.Context, note model.Note) (model.Note, error)
	Update(ctx context.Context, note model.Note) error
	// SyncTags replaces the note's tag set.
	SyncTags(ctx context.Context, noteID int64, tagIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// IDocument persists per-video rich-text documents, one per (user, video).
type IDocument interface {
	// GetByVideo returns the user's document for a video, sql.ErrNoRows
	// when none exists yet.
	GetByVideo(ctx context.Context, userID, videoID int64) (model.Document, error)
	// Upsert inserts or replaces the document keyed on (user, video).
	Upsert(ctx context.Context, document model.Document) (model.Document, error)
	// SyncTags replaces the document's tag set.
	SyncTags(ctx context.Context, documentID int64, tagIDs []int64) error
}

// ITag persists per-user tags.
type ITag interface {
	GetByID(ctx context.Context, id int64) (model.Tag, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Tag, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountByIDsForUser(ctx context.Context, userID int64, ids []int64) (int, error)
	Create(ctx context.Context, tag model.Tag) (model.Tag, error)
	Update(ctx context.Context, tag model.Tag) error
	Delete(ctx context.Context, id int64) error
}
