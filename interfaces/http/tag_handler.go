package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"vidnotes/domain/dto"
	"vidnotes/infrastructure/logger"
	"vidnotes/usecase"
)

type ITagHandler interface {
	List(c *gin.Context)
	Store(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type TagHandler struct {
	tagUsecase usecase.ITagUsecase
}

func NewTagHandler(tagUsecase usecase.ITagUsecase) ITagHandler {
	return &TagHandler{tagUsecase: tagUsecase}
}

func (h *TagHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	tags, err := h.tagUsecase.List(c.Request.Context(), user)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while listing tags")
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *TagHandler) Store(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.StoreTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := h.tagUsecase.Store(c.Request.Context(), user, req)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	tagID, err := strconv.ParseInt(c.Param("tagId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}
	var req dto.StoreTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := h.tagUsecase.Update(c.Request.Context(), user, tagID, req)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	tagID, err := strconv.ParseInt(c.Param("tagId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}
	if err := h.tagUsecase.Delete(c.Request.Context(), user, tagID); err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}
