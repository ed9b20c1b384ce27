package usecase

import (
	"context"
	"database/sql"

	"vidnotes/domain/dto"
	"vidnotes/domain/model"
	"vidnotes/domain/repository"
)

type IDocumentUsecase interface {
	// Show returns the user's document for a video, nil when none exists.
	Show(ctx context.Context, user model.User, videoID int64) (*model.Document, error)
	Store(ctx context.Context, user model.User, videoID int64, req dto.StoreDocumentRequest) (model.Document, error)
}

type documentUsecase struct {
	documentRepo repository.IDocument
	videoRepo    repository.IVideo
	tagRepo      repository.ITag
}

func NewDocumentUsecase(documentRepo repository.IDocument, videoRepo repository.IVideo, tagRepo repository.ITag) IDocumentUsecase {
	return &documentUsecase{documentRepo: documentRepo, videoRepo: videoRepo, tagRepo: tagRepo}
}

func (u *documentUsecase) Show(ctx context.Context, user model.User, videoID int64) (*model.Document, error) {
	if err := u.checkVideo(ctx, user, videoID); err != nil {
		return nil, err
	}
	document, err := u.documentRepo.GetByVideo(ctx, user.ID, videoID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (u *documentUsecase) Store(ctx context.Context, user model.User, videoID int64, req dto.StoreDocumentRequest) (model.Document, error) {
	if err := u.checkVideo(ctx, user, videoID); err != nil {
		return model.Document{}, err
	}

	if req.Tags != nil {
		if err := u.checkTags(ctx, user, *req.Tags); err != nil {
			return model.Document{}, err
		}
	}

	content := ""
	if req.Content != nil {
		content = *req.Content
	}
	document, err := u.documentRepo.Upsert(ctx, model.Document{
		UserID:      user.ID,
		VideoID:     videoID,
		Content:     content,
		ContentJSON: req.ContentJSON,
	})
	if err != nil {
		return model.Document{}, err
	}
	if req.Tags != nil {
		if err := u.documentRepo.SyncTags(ctx, document.ID, *req.Tags); err != nil {
			return model.Document{}, err
		}
		return u.documentRepo.GetByVideo(ctx, user.ID, videoID)
	}
	return document, nil
}

func (u *documentUsecase) checkVideo(ctx context.Context, user model.User, videoID int64) error {
	video, err := u.videoRepo.GetByID(ctx, videoID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if video.UserID != user.ID {
		return ErrForbidden
	}
	return nil
}

func (u *documentUsecase) checkTags(ctx context.Context, user model.User, tagIDs []int64) error {
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
