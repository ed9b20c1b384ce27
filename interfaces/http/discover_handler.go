package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"vidnotes/domain/dto"
	"vidnotes/infrastructure/logger"
	"vidnotes/usecase"
)

type IDiscoverHandler interface {
	Categories(c *gin.Context)
	Interests(c *gin.Context)
	UpdateInterests(c *gin.Context)
	Suggestions(c *gin.Context)
	Refresh(c *gin.Context)
}

type DiscoverHandler struct {
	discoverUsecase usecase.IDiscoverUsecase
}

func NewDiscoverHandler(discoverUsecase usecase.IDiscoverUsecase) IDiscoverHandler {
	return &DiscoverHandler{discoverUsecase: discoverUsecase}
}

func (h *DiscoverHandler) Categories(c *gin.Context) {
	categories, err := h.discoverUsecase.Categories(c.Request.Context())
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while listing interest categories")
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *DiscoverHandler) Interests(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	interests, err := h.discoverUsecase.Interests(c.Request.Context(), user.ID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while listing user interests")
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interests": interests})
}

func (h *DiscoverHandler) UpdateInterests(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateInterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.discoverUsecase.UpdateInterests(c.Request.Context(), user.ID, req); err != nil {
		var ve *usecase.ValidationError
		if !errors.As(err, &ve) {
			logger.GetLogger().WithField("error", err).Error("Error while updating interests")
		}
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *DiscoverHandler) Suggestions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	res, err := h.discoverUsecase.Suggestions(c.Request.Context(), user)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while building suggestions")
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *DiscoverHandler) Refresh(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	res, err := h.discoverUsecase.Refresh(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, usecase.ErrLimitReached) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":               "limit_reached",
				"message":             "Daily refresh limit reached. Upgrade to premium for unlimited refreshes.",
				"remaining_refreshes": 0,
				"is_premium":          false,
			})
			return
		}
		logger.GetLogger().WithField("error", err).Error("Error while refreshing suggestions")
		writeUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
