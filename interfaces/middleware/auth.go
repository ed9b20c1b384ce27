package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"
)

// Auth validates the Bearer token, loads the user it names and stores the
// user (with the live premium flag) in the gin context under "user".
func Auth(userRepository repository.IUser, secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" {
			unauthorized(ctx, "missing token")
			return
		}
		parts := strings.SplitN(authorization, "Bearer ", 2)
		if len(parts) != 2 || parts[1] == "" {
			unauthorized(ctx, "malformed authorization header")
			return
		}

		claims, token, err := parseToken(parts[1], secretKey)
		if err != nil || !token.Valid {
			unauthorized(ctx, tokenErrorMessage(err))
			return
		}

		userID, err := strconv.ParseInt(claims.Issuer, 10, 64)
		if err != nil {
			unauthorized(ctx, "invalid subject")
			return
		}

		user, err := userRepository.GetByID(ctx.Request.Context(), userID)
		if err != nil {
			unauthorized(ctx, "user not found")
			return
		}

		premium, err := userRepository.IsPremium(ctx.Request.Context(), user.ID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while resolving premium status")
		}
		user.IsPremium = premium

		ctx.Set("user", user)
		ctx.Next()
	}
}

func unauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": message,
	})
}

func parseToken(raw, secretKey string) (*model.UserClaims, *jwt.Token, error) {
	var claims model.UserClaims
	token, err := jwt.ParseWithClaims(
		raw,
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
	)
	return &claims, token, err
}

func tokenErrorMessage(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			return "malformed token"
		}
		if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			return "token expired"
		}
	}
	return "invalid token"
}
