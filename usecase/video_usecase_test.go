package usecase_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"vidnotes/domain/dto"
	"vidnotes/domain/model"
	"vidnotes/usecase"
)

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id int64) (model.Video, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoRepository) ListByUser(ctx context.Context, userID int64, page, perPage int) ([]model.Video, int64, error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).([]model.Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockVideoRepository) Upsert(ctx context.Context, video model.Video) (model.Video, error) {
	args := m.Called(ctx, video)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoRepository) UpdatePosition(ctx context.Context, id int64, position int) error {
	args := m.Called(ctx, id, position)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestVideoListPagination(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	videoRepo.On("ListByUser", mock.Anything, int64(1), 2, 12).
		Return([]model.Video{{ID: 13, UserID: 1}}, int64(25), nil)

	uc := usecase.NewVideoUsecase(videoRepo, new(MockVideoSearch), 10)

	res, err := uc.List(context.Background(), model.User{ID: 1}, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, 3, res.LastPage)
	assert.Equal(t, 12, res.PerPage)
	assert.Equal(t, int64(25), res.Total)
}

func TestVideoSearchEmptyQuery(t *testing.T) {
	search := new(MockVideoSearch)

	uc := usecase.NewVideoUsecase(new(MockVideoRepository), search, 10)

	videos := uc.Search(context.Background(), "")

	assert.Empty(t, videos)
	search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestVideoStoreFreeLimit(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	videoRepo.On("CountByUser", mock.Anything, int64(1)).Return(10, nil)

	uc := usecase.NewVideoUsecase(videoRepo, new(MockVideoSearch), 10)

	_, err := uc.Store(context.Background(), model.User{ID: 1}, dto.StoreVideoRequest{YouTubeID: "abc", Title: "t"})

	assert.ErrorIs(t, err, usecase.ErrLimitReached)
	videoRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestVideoStorePremiumSkipsLimit(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	videoRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(v model.Video) bool {
		return v.UserID == 1 && v.YouTubeID == "abc"
	})).Return(model.Video{ID: 7, UserID: 1, YouTubeID: "abc"}, nil)

	uc := usecase.NewVideoUsecase(videoRepo, new(MockVideoSearch), 10)

	video, err := uc.Store(context.Background(), model.User{ID: 1, IsPremium: true}, dto.StoreVideoRequest{YouTubeID: "abc", Title: "t"})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), video.ID)
	videoRepo.AssertNotCalled(t, "CountByUser", mock.Anything, mock.Anything)
}

func TestVideoDeleteOwnership(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	videoRepo.On("GetByID", mock.Anything, int64(5)).Return(model.Video{ID: 5, UserID: 2}, nil)

	uc := usecase.NewVideoUsecase(videoRepo, new(MockVideoSearch), 10)

	err := uc.Delete(context.Background(), model.User{ID: 1}, 5)

	assert.ErrorIs(t, err, usecase.ErrForbidden)
	videoRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVideoUpdatePositionNotFound(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	videoRepo.On("GetByID", mock.Anything, int64(5)).Return(model.Video{}, sql.ErrNoRows)

	uc := usecase.NewVideoUsecase(videoRepo, new(MockVideoSearch), 10)

	err := uc.UpdatePosition(context.Background(), model.User{ID: 1}, 5, 120)

	assert.ErrorIs(t, err, usecase.ErrNotFound)
}
