package usecase

import (
	"context"
	"database/sql"

	"vidnotes/domain/dto"
	"vidnotes/domain/model"
	"vidnotes/domain/repository"
)

type ITagUsecase interface {
	List(ctx context.Context, user model.User) ([]model.Tag, error)
	Store(ctx context.Context, user model.User, req dto.StoreTagRequest) (model.Tag, error)
	Update(ctx context.Context, user model.User, tagID int64, req dto.StoreTagRequest) (model.Tag, error)
	Delete(ctx context.Context, user model.User, tagID int64) error
}

type tagUsecase struct {
	tagRepo   repository.ITag
	freeLimit int
}

func NewTagUsecase(tagRepo repository.ITag, freeLimit int) ITagUsecase {
	return &tagUsecase{tagRepo: tagRepo, freeLimit: freeLimit}
}

func (u *tagUsecase) List(ctx context.Context, user model.User) ([]model.Tag, error) {
	return u.tagRepo.ListByUser(ctx, user.ID)
}

func (u *tagUsecase) Store(ctx context.Context, user model.User, req dto.StoreTagRequest) (model.Tag, error) {
	if !user.IsPremium {
		count, err := u.tagRepo.CountByUser(ctx, user.ID)
		if err != nil {
			return model.Tag{}, err
		}
		if count >= u.freeLimit {
			return model.Tag{}, ErrLimitReached
		}
	}
	return u.tagRepo.Create(ctx, model.Tag{
		UserID: user.ID,
		Name:   req.Name,
		Color:  req.Color,
	})
}

func (u *tagUsecase) Update(ctx context.Context, user model.User, tagID int64, req dto.StoreTagRequest) (model.Tag, error) {
	tag, err := u.ownedBy(ctx, user, tagID)
	if err != nil {
		return model.Tag{}, err
	}
	tag.Name = req.Name
	tag.Color = req.Color
	if err := u.tagRepo.Update(ctx, tag); err != nil {
		return model.Tag{}, err
	}
	return tag, nil
}

func (u *tagUsecase) Delete(ctx context.Context, user model.User, tagID int64) error {
	if _, err := u.ownedBy(ctx, user, tagID); err != nil {
		return err
	}
	return u.tagRepo.Delete(ctx, tagID)
}

func (u *tagUsecase) ownedBy(ctx context.Context, user model.User, tagID int64) (model.Tag, error) {
	tag, err := u.tagRepo.GetByID(ctx, tagID)
	if err == sql.ErrNoRows {
		return model.Tag{}, ErrNotFound
	}
	if err != nil {
		return model.Tag{}, err
	}
	if tag.UserID != user.ID {
		return model.Tag{}, ErrForbidden
	}
	return tag, nil
}
