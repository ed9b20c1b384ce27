package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"vidnotes/domain/dto"
	"vidnotes/infrastructure/logger"
	"vidnotes/usecase"
)

type INoteHandler interface {
	List(c *gin.Context)
	Store(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type NoteHandler struct {
	noteUsecase usecase.INoteUsecase
}

func NewNoteHandler(noteUsecase usecase.INoteUsecase) INoteHandler {
	return &NoteHandler{noteUsecase: noteUsecase}
}

func (h *NoteHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	filter := dto.NoteFilter{Search: c.Query("search")}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	filter.TagID, _ = strconv.ParseInt(c.Query("tag_id"), 10, 64)
	filter.VideoID, _ = strconv.ParseInt(c.Query("video_id"), 10, 64)

	res, err := h.noteUsecase.List(c.Request.Context(), user, filter)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while listing notes")
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *NoteHandler) Store(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.StoreNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note, err := h.noteUsecase.Store(c.Request.Context(), user, req)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	noteID, err := strconv.ParseInt(c.Param("noteId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note, err := h.noteUsecase.Update(c.Request.Context(), user, noteID, req)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	noteID, err := strconv.ParseInt(c.Param("noteId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}
	if err := h.noteUsecase.Delete(c.Request.Context(), user, noteID); err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "note deleted"})
}
