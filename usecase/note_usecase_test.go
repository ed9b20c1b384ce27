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

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) GetByID(ctx context.Context, id int64) (model.Note, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *MockNoteRepository) List(ctx context.Context, userID int64, filter dto.NoteFilter) ([]model.Note, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]model.Note), args.Get(1).(int64), args.Error(2)
}

func (m *MockNoteRepository) CountByVideo(ctx context.Context, userID, videoID int64) (int, error) {
	args := m.Called(ctx, userID, videoID)
	return args.Int(0), args.Error(1)
}

func (m *MockNoteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, note model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) SyncTags(ctx context.Context, noteID int64, tagIDs []int64) error {
	args := m.Called(ctx, noteID, tagIDs)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetByID(ctx context.Context, id int64) (model.Tag, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Tag), args.Error(1)
}

func (m *MockTagRepository) ListByUser(ctx context.Context, userID int64) ([]model.Tag, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockTagRepository) CountByIDsForUser(ctx context.Context, userID int64, ids []int64) (int, error) {
	args := m.Called(ctx, userID, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockTagRepository) Create(ctx context.Context, tag model.Tag) (model.Tag, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).(model.Tag), args.Error(1)
}

func (m *MockTagRepository) Update(ctx context.Context, tag model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestNoteStoreOnForeignVideo(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	videoRepo := new(MockVideoRepository)
	videoRepo.On("GetByID", mock.Anything, int64(9)).Return(model.Video{ID: 9, UserID: 2}, nil)

	uc := usecase.NewNoteUsecase(noteRepo, videoRepo, new(MockTagRepository), 20)

	_, err := uc.Store(context.Background(), model.User{ID: 1}, dto.StoreNoteRequest{VideoID: 9, Content: "x"})

	assert.ErrorIs(t, err, usecase.ErrForbidden)
	noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNoteStoreFreeLimitPerVideo(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	videoRepo := new(MockVideoRepository)
	videoRepo.On("GetByID", mock.Anything, int64(9)).Return(model.Video{ID: 9, UserID: 1}, nil)
	noteRepo.On("CountByVideo", mock.Anything, int64(1), int64(9)).Return(20, nil)

	uc := usecase.NewNoteUsecase(noteRepo, videoRepo, new(MockTagRepository), 20)

	_, err := uc.Store(context.Background(), model.User{ID: 1}, dto.StoreNoteRequest{VideoID: 9, Content: "x"})

	assert.ErrorIs(t, err, usecase.ErrLimitReached)
}

func TestNoteStoreWithTags(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	videoRepo := new(MockVideoRepository)
	tagRepo := new(MockTagRepository)

	videoRepo.On("GetByID", mock.Anything, int64(9)).Return(model.Video{ID: 9, UserID: 1}, nil)
	noteRepo.On("CountByVideo", mock.Anything, int64(1), int64(9)).Return(3, nil)
	tagRepo.On("CountByIDsForUser", mock.Anything, int64(1), []int64{4, 5}).Return(2, nil)
	ts := 90
	noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return n.UserID == 1 && n.VideoID == 9 && n.Content == "pause here" && *n.Timestamp == 90
	})).Return(model.Note{ID: 31, UserID: 1, VideoID: 9, Content: "pause here", Timestamp: &ts}, nil)
	noteRepo.On("SyncTags", mock.Anything, int64(31), []int64{4, 5}).Return(nil)
	noteRepo.On("GetByID", mock.Anything, int64(31)).
		Return(model.Note{ID: 31, UserID: 1, VideoID: 9, Tags: []model.Tag{{ID: 4}, {ID: 5}}}, nil)

	uc := usecase.NewNoteUsecase(noteRepo, videoRepo, tagRepo, 20)

	note, err := uc.Store(context.Background(), model.User{ID: 1}, dto.StoreNoteRequest{
		VideoID: 9, Content: "pause here", Timestamp: &ts, Tags: []int64{4, 5},
	})

	assert.NoError(t, err)
	assert.Len(t, note.Tags, 2)
	noteRepo.AssertExpectations(t)
}

func TestNoteStoreUnknownTags(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	videoRepo := new(MockVideoRepository)
	tagRepo := new(MockTagRepository)

	videoRepo.On("GetByID", mock.Anything, int64(9)).Return(model.Video{ID: 9, UserID: 1}, nil)
	noteRepo.On("CountByVideo", mock.Anything, int64(1), int64(9)).Return(0, nil)
	tagRepo.On("CountByIDsForUser", mock.Anything, int64(1), []int64{99}).Return(0, nil)

	uc := usecase.NewNoteUsecase(noteRepo, videoRepo, tagRepo, 20)

	_, err := uc.Store(context.Background(), model.User{ID: 1}, dto.StoreNoteRequest{VideoID: 9, Content: "x", Tags: []int64{99}})

	var ve *usecase.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "tags")
	noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNoteUpdateResyncsTags(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	tagRepo := new(MockTagRepository)

	noteRepo.On("GetByID", mock.Anything, int64(31)).Return(model.Note{ID: 31, UserID: 1, VideoID: 9, Content: "old"}, nil).Once()
	noteRepo.On("Update", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return n.ID == 31 && n.Content == "new"
	})).Return(nil)
	tagRepo.On("CountByIDsForUser", mock.Anything, int64(1), []int64{4}).Return(1, nil)
	noteRepo.On("SyncTags", mock.Anything, int64(31), []int64{4}).Return(nil)
	noteRepo.On("GetByID", mock.Anything, int64(31)).Return(model.Note{ID: 31, UserID: 1, Content: "new", Tags: []model.Tag{{ID: 4}}}, nil)

	uc := usecase.NewNoteUsecase(noteRepo, new(MockVideoRepository), tagRepo, 20)

	tags := []int64{4}
	note, err := uc.Update(context.Background(), model.User{ID: 1}, 31, dto.UpdateNoteRequest{Content: "new", Tags: &tags})

	assert.NoError(t, err)
	assert.Equal(t, "new", note.Content)
	noteRepo.AssertExpectations(t)
}

func TestNoteDeleteNotFound(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	noteRepo.On("GetByID", mock.Anything, int64(404)).Return(model.Note{}, sql.ErrNoRows)

	uc := usecase.NewNoteUsecase(noteRepo, new(MockVideoRepository), new(MockTagRepository), 20)

	err := uc.Delete(context.Background(), model.User{ID: 1}, 404)

	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestNoteListDefaults(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	noteRepo.On("List", mock.Anything, int64(1), dto.NoteFilter{Page: 1, PerPage: 20}).
		Return([]model.Note{}, int64(0), nil)

	uc := usecase.NewNoteUsecase(noteRepo, new(MockVideoRepository), new(MockTagRepository), 20)

	res, err := uc.List(context.Background(), model.User{ID: 1}, dto.NoteFilter{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 1, res.LastPage)
}

func TestTagStoreFreeLimit(t *testing.T) {
	tagRepo := new(MockTagRepository)
	tagRepo.On("CountByUser", mock.Anything, int64(1)).Return(10, nil)

	uc := usecase.NewTagUsecase(tagRepo, 10)

	_, err := uc.Store(context.Background(), model.User{ID: 1}, dto.StoreTagRequest{Name: "ideas"})

	assert.ErrorIs(t, err, usecase.ErrLimitReached)
	tagRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTagUpdateForeign(t *testing.T) {
	tagRepo := new(MockTagRepository)
	tagRepo.On("GetByID", mock.Anything, int64(4)).Return(model.Tag{ID: 4, UserID: 2}, nil)

	uc := usecase.NewTagUsecase(tagRepo, 10)

	_, err := uc.Update(context.Background(), model.User{ID: 1}, 4, dto.StoreTagRequest{Name: "x"})

	assert.ErrorIs(t, err, usecase.ErrForbidden)
}
