package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"vidnotes/domain/dto"
	"vidnotes/infrastructure/logger"
	"vidnotes/usecase"
)

type IDocumentHandler interface {
	Show(c *gin.Context)
	Store(c *gin.Context)
}

type DocumentHandler struct {
	documentUsecase usecase.IDocumentUsecase
}

func NewDocumentHandler(documentUsecase usecase.IDocumentUsecase) IDocumentHandler {
	return &DocumentHandler{documentUsecase: documentUsecase}
}

// Show returns the video's document, or a null document when none was
// written yet.
func (h *DocumentHandler) Show(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, err := strconv.ParseInt(c.Param("videoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video id"})
		return
	}
	document, err := h.documentUsecase.Show(c.Request.Context(), user, videoID)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": document})
}

func (h *DocumentHandler) Store(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, err := strconv.ParseInt(c.Param("videoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video id"})
		return
	}
	var req dto.StoreDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	document, err := h.documentUsecase.Store(c.Request.Context(), user, videoID, req)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": document})
}
