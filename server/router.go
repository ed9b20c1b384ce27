package server

import (
	"net/http"
	"time"

	"vidnotes/domain/repository"
	httpHandler "vidnotes/interfaces/http"
	"vidnotes/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	discoverHandler httpHandler.IDiscoverHandler,
	videoHandler httpHandler.IVideoHandler,
	noteHandler httpHandler.INoteHandler,
	documentHandler httpHandler.IDocumentHandler,
	tagHandler httpHandler.ITagHandler,
	userRepository repository.IUser,
	secretKey string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", userHandler.Login)
	router.POST("/register", userHandler.Register)
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository, secretKey))

	api.GET("/me", userHandler.Me)

	discover := api.Group("/discover")
	{
		discover.GET("/categories", discoverHandler.Categories)
		discover.GET("/interests", discoverHandler.Interests)
		discover.POST("/interests", discoverHandler.UpdateInterests)
		discover.GET("/suggestions", discoverHandler.Suggestions)
		discover.POST("/refresh", discoverHandler.Refresh)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", videoHandler.List)
		videos.GET("/search", videoHandler.Search)
		videos.POST("", videoHandler.Store)
		videos.PATCH("/:videoId/position", videoHandler.UpdatePosition)
		videos.DELETE("/:videoId", videoHandler.Delete)
		videos.GET("/:videoId/document", documentHandler.Show)
		videos.POST("/:videoId/document", documentHandler.Store)
	}

	notes := api.Group("/notes")
	{
		notes.GET("", noteHandler.List)
		notes.POST("", noteHandler.Store)
		notes.PUT("/:noteId", noteHandler.Update)
		notes.DELETE("/:noteId", noteHandler.Delete)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", tagHandler.List)
		tags.POST("", tagHandler.Store)
		tags.PUT("/:tagId", tagHandler.Update)
		tags.DELETE("/:tagId", tagHandler.Delete)
	}

	return router
}
