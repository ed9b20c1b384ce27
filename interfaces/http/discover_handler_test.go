package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"vidnotes/domain/dto"
	"vidnotes/domain/model"
	httpHandler "vidnotes/interfaces/http"
	"vidnotes/usecase"
)

type MockDiscoverUsecase struct {
	mock.Mock
}

func (m *MockDiscoverUsecase) Categories(ctx context.Context) ([]model.InterestCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.InterestCategory), args.Error(1)
}

func (m *MockDiscoverUsecase) Interests(ctx context.Context, userID int64) ([]model.Interest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Interest), args.Error(1)
}

func (m *MockDiscoverUsecase) UpdateInterests(ctx context.Context, userID int64, req dto.UpdateInterestsRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockDiscoverUsecase) Suggestions(ctx context.Context, user model.User) (*dto.SuggestionsResponse, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SuggestionsResponse), args.Error(1)
}

func (m *MockDiscoverUsecase) Refresh(ctx context.Context, user model.User) (*dto.SuggestionsResponse, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SuggestionsResponse), args.Error(1)
}

func discoverRouter(uc usecase.IDiscoverUsecase, user model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	})
	handler := httpHandler.NewDiscoverHandler(uc)
	router.GET("/api/discover/suggestions", handler.Suggestions)
	router.POST("/api/discover/refresh", handler.Refresh)
	router.POST("/api/discover/interests", handler.UpdateInterests)
	return router
}

func TestDiscoverSuggestionsOK(t *testing.T) {
	uc := new(MockDiscoverUsecase)
	remaining := 3
	uc.On("Suggestions", mock.Anything, mock.Anything).Return(&dto.SuggestionsResponse{
		Videos:             []model.SuggestedVideo{{YouTubeID: "abc", Title: "t", Interest: "chess"}},
		Interests:          []string{"chess"},
		RemainingRefreshes: &remaining,
	}, nil)

	router := discoverRouter(uc, model.User{ID: 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/discover/suggestions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["remaining_refreshes"])
	assert.Equal(t, false, body["is_premium"])
}

func TestDiscoverRefreshLimitReached(t *testing.T) {
	uc := new(MockDiscoverUsecase)
	uc.On("Refresh", mock.Anything, mock.Anything).Return(nil, usecase.ErrLimitReached)

	router := discoverRouter(uc, model.User{ID: 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/discover/refresh", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "limit_reached", body["error"])
	assert.Equal(t, float64(0), body["remaining_refreshes"])
	assert.Equal(t, false, body["is_premium"])
}

func TestDiscoverUpdateInterestsValidation(t *testing.T) {
	uc := new(MockDiscoverUsecase)
	uc.On("UpdateInterests", mock.Anything, int64(1), mock.Anything).
		Return(&usecase.ValidationError{Fields: map[string]string{"category_ids": "One or more selected categories do not exist."}})

	router := discoverRouter(uc, model.User{ID: 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/discover/interests", strings.NewReader(`{"category_ids":[99]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body map[string]map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["errors"], "category_ids")
}

func TestDiscoverSuggestionsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := httpHandler.NewDiscoverHandler(new(MockDiscoverUsecase))
	router.GET("/api/discover/suggestions", handler.Suggestions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/discover/suggestions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
