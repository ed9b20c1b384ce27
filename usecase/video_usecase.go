package usecase

import (
	"context"
	"database/sql"

	"vidnotes/domain/dto"
	"vidnotes/domain/model"
	"vidnotes/domain/repository"
)

const videosPerPage = 12

type IVideoUsecase interface {
	List(ctx context.Context, user model.User, page int) (*dto.VideoListResponse, error)
	Search(ctx context.Context, query string) []model.SuggestedVideo
	Store(ctx context.Context, user model.User, req dto.StoreVideoRequest) (model.Video, error)
	Delete(ctx context.Context, user model.User, videoID int64) error
	UpdatePosition(ctx context.Context, user model.User, videoID int64, position int) error
}

type videoUsecase struct {
	videoRepo repository.IVideo
	search    repository.IVideoSearch
	freeLimit int
}

func NewVideoUsecase(videoRepo repository.IVideo, search repository.IVideoSearch, freeLimit int) IVideoUsecase {
	return &videoUsecase{videoRepo: videoRepo, search: search, freeLimit: freeLimit}
}

func (u *videoUsecase) List(ctx context.Context, user model.User, page int) (*dto.VideoListResponse, error) {
	videos, total, err := u.videoRepo.ListByUser(ctx, user.ID, page, videosPerPage)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	return &dto.VideoListResponse{
		Videos:      videos,
		CurrentPage: page,
		LastPage:    lastPage(total, videosPerPage),
		PerPage:     videosPerPage,
		Total:       total,
	}, nil
}

// Search proxies a keyword search so the front end never holds the API key.
func (u *videoUsecase) Search(ctx context.Context, query string) []model.SuggestedVideo {
	if query == "" {
		return []model.SuggestedVideo{}
	}
	return u.search.Search(ctx, query, videosPerPage)
}

func (u *videoUsecase) Store(ctx context.Context, user model.User, req dto.StoreVideoRequest) (model.Video, error) {
	if !user.IsPremium {
		count, err := u.videoRepo.CountByUser(ctx, user.ID)
		if err != nil {
			return model.Video{}, err
		}
		if count >= u.freeLimit {
			return model.Video{}, ErrLimitReached
		}
	}
	return u.videoRepo.Upsert(ctx, model.Video{
		UserID:      user.ID,
		YouTubeID:   req.YouTubeID,
		Title:       req.Title,
		Thumbnail:   req.Thumbnail,
		ChannelName: req.ChannelName,
	})
}

func (u *videoUsecase) Delete(ctx context.Context, user model.User, videoID int64) error {
	if err := u.ownedBy(ctx, user, videoID); err != nil {
		return err
	}
	return u.videoRepo.Delete(ctx, videoID)
}

func (u *videoUsecase) UpdatePosition(ctx context.Context, user model.User, videoID int64, position int) error {
	if err := u.ownedBy(ctx, user, videoID); err != nil {
		return err
	}
	return u.videoRepo.UpdatePosition(ctx, videoID, position)
}

func (u *videoUsecase) ownedBy(ctx context.Context, user model.User, videoID int64) error {
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

func lastPage(total int64, perPage int) int {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}
