package usecase

import (
	"context"
	"database/sql"

	"vidnotes/domain/dto"
	"vidnotes/domain/model"
	"vidnotes/domain/repository"
)

type INoteUsecase interface {
	List(ctx context.Context, user model.User, filter dto.NoteFilter) (*dto.NoteListResponse, error)
	Store(ctx context.Context, user model.User, req dto.StoreNoteRequest) (model.Note, error)
	Update(ctx context.Context, user model.User, noteID int64, req dto.UpdateNoteRequest) (model.Note, error)
	Delete(ctx context.Context, user model.User, noteID int64) error
}

type noteUsecase struct {
	noteRepo     repository.INote
	videoRepo    repository.IVideo
	tagRepo      repository.ITag
	freePerVideo int
}

func NewNoteUsecase(noteRepo repository.INote, videoRepo repository.IVideo, tagRepo repository.ITag, freePerVideo int) INoteUsecase {
	return &noteUsecase{noteRepo: noteRepo, videoRepo: videoRepo, tagRepo: tagRepo, freePerVideo: freePerVideo}
}

func (u *noteUsecase) List(ctx context.Context, user model.User, filter dto.NoteFilter) (*dto.NoteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}
	notes, total, err := u.noteRepo.List(ctx, user.ID, filter)
	if err != nil {
		return nil, err
	}
	return &dto.NoteListResponse{
		Notes:       notes,
		CurrentPage: filter.Page,
		LastPage:    lastPage(total, filter.PerPage),
		PerPage:     filter.PerPage,
		Total:       total,
	}, nil
}

func (u *noteUsecase) Store(ctx context.Context, user model.User, req dto.StoreNoteRequest) (model.Note, error) {
	video, err := u.videoRepo.GetByID(ctx, req.VideoID)
	if err == sql.ErrNoRows {
		return model.Note{}, ErrNotFound
	}
	if err != nil {
		return model.Note{}, err
	}
	if video.UserID != user.ID {
		return model.Note{}, ErrForbidden
	}

	if !user.IsPremium {
		count, err := u.noteRepo.CountByVideo(ctx, user.ID, req.VideoID)
		if err != nil {
			return model.Note{}, err
		}
		if count >= u.freePerVideo {
			return model.Note{}, ErrLimitReached
		}
	}

	if err := u.checkTags(ctx, user, req.Tags); err != nil {
		return model.Note{}, err
	}

	note, err := u.noteRepo.Create(ctx, model.Note{
		UserID:    user.ID,
		VideoID:   req.VideoID,
		Content:   req.Content,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		return model.Note{}, err
	}
	if len(req.Tags) > 0 {
		if err := u.noteRepo.SyncTags(ctx, note.ID, req.Tags); err != nil {
			return model.Note{}, err
		}
		return u.noteRepo.GetByID(ctx, note.ID)
	}
	return note, nil
}

func (u *noteUsecase) Update(ctx context.Context, user model.User, noteID int64, req dto.UpdateNoteRequest) (model.Note, error) {
	note, err := u.noteRepo.GetByID(ctx, noteID)
	if err == sql.ErrNoRows {
		return model.Note{}, ErrNotFound
	}
	if err != nil {
		return model.Note{}, err
	}
	if note.UserID != user.ID {
		return model.Note{}, ErrForbidden
	}

	note.Content = req.Content
	if req.Timestamp != nil {
		note.Timestamp = req.Timestamp
	}
	if err := u.noteRepo.Update(ctx, note); err != nil {
		return model.Note{}, err
	}
	if req.Tags != nil {
		if err := u.checkTags(ctx, user, *req.Tags); err != nil {
			return model.Note{}, err
		}
		if err := u.noteRepo.SyncTags(ctx, note.ID, *req.Tags); err != nil {
			return model.Note{}, err
		}
	}
	return u.noteRepo.GetByID(ctx, note.ID)
}

func (u *noteUsecase) Delete(ctx context.Context, user model.User, noteID int64) error {
	note, err := u.noteRepo.GetByID(ctx, noteID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if note.UserID != user.ID {
		return ErrForbidden
	}
	return u.noteRepo.Delete(ctx, noteID)
}

// checkTags rejects tag ids that do not exist or belong to another user.
func (u *noteUsecase) checkTags(ctx context.Context, user model.User, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	unique := dedupeIDs(tagIDs)
	count, err := u.tagRepo.CountByIDsForUser(ctx, user.ID, unique)
	if err != nil {
		return err
	}
	if count != len(unique) {
		return newValidationError("tags", "One or more selected tags do not exist.")
	}
	return nil
}
