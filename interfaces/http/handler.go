package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"vidnotes/domain/model"
	"vidnotes/usecase"
)

const userContextKey = "user"

// currentUser pulls the authenticated user placed in the context by the auth
// middleware. A missing or mistyped value aborts with 401.
func currentUser(c *gin.Context) (model.User, bool) {
	value, ok := c.Get(userContextKey)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return model.User{}, false
	}
	user, ok := value.(model.User)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return model.User{}, false
	}
	return user, true
}

// writeUsecaseError maps the usecase error vocabulary onto HTTP statuses.
func writeUsecaseError(c *gin.Context, err error) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve.Fields})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, usecase.ErrLimitReached):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "limit_reached",
			"message": "Free plan limit reached. Upgrade to premium for unlimited access.",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
