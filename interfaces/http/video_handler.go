package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"vidnotes/domain/dto"
	"vidnotes/infrastructure/logger"
	"vidnotes/usecase"
)

type IVideoHandler interface {
	List(c *gin.Context)
	Search(c *gin.Context)
	Store(c *gin.Context)
	UpdatePosition(c *gin.Context)
	Delete(c *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase}
}

func (h *VideoHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	res, err := h.videoUsecase.List(c.Request.Context(), user, page)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while listing library videos")
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *VideoHandler) Search(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	query := c.Query("q")
	videos := h.videoUsecase.Search(c.Request.Context(), query)
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *VideoHandler) Store(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.StoreVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	video, err := h.videoUsecase.Store(c.Request.Context(), user, req)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

func (h *VideoHandler) UpdatePosition(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, err := strconv.ParseInt(c.Param("videoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video id"})
		return
	}
	var req dto.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.videoUsecase.UpdatePosition(c.Request.Context(), user, videoID, req.Position); err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "position updated"})
}

func (h *VideoHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, err := strconv.ParseInt(c.Param("videoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video id"})
		return
	}
	if err := h.videoUsecase.Delete(c.Request.Context(), user, videoID); err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "video removed"})
}
