package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidnotes/infrastructure/cache"
	youtubeclient "vidnotes/infrastructure/clients/youtube"
	"vidnotes/infrastructure/configuration"
	"vidnotes/infrastructure/logger"
	"vidnotes/infrastructure/persistence"
	httpHandler "vidnotes/interfaces/http"
	"vidnotes/server"
	"vidnotes/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to PostgreSQL")
		os.Exit(1)
	}
	if err := persistence.EnsureSchema(psqlDb); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while ensuring schema")
		os.Exit(1)
	}
	if err := persistence.SeedInterestCategories(psqlDb); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while seeding interest categories")
	}
	logger.GetLogger().Info("Database connected.")

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to Redis")
		os.Exit(1)
	}
	logger.GetLogger().Info("Redis client initialized successfully.")

	searchClient, err := youtubeclient.NewSearchClient(ctx, &youtubeclient.Config{
		APIKey:       configuration.C.YouTube.APIKey,
		ClientID:     configuration.C.YouTube.ClientID,
		ClientSecret: configuration.C.YouTube.ClientSecret,
		RedirectURL:  configuration.C.YouTube.RedirectURI,
		AccessToken:  configuration.C.YouTube.AccessToken,
		RefreshToken: configuration.C.YouTube.RefreshToken,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("YouTube search unavailable - suggestions will be empty")
	}

	userRepository := persistence.NewUserRepository(psqlDb)
	categoryRepository := persistence.NewInterestCategoryRepository(psqlDb)
	interestRepository := persistence.NewInterestRepository(psqlDb)
	videoRepository := persistence.NewVideoRepository(psqlDb)
	noteRepository := persistence.NewNoteRepository(psqlDb)
	documentRepository := persistence.NewDocumentRepository(psqlDb)
	tagRepository := persistence.NewTagRepository(psqlDb)

	suggestionCache := cache.NewSuggestionCache(redisClient)
	refreshQuota := cache.NewRefreshQuota(redisClient, configuration.C.Limits.FreeRefreshes)

	userUsecase := usecase.NewUserUsecase(userRepository)
	discoverUsecase := usecase.NewDiscoverUsecase(categoryRepository, interestRepository, searchClient, suggestionCache, refreshQuota)
	videoUsecase := usecase.NewVideoUsecase(videoRepository, searchClient, configuration.C.Limits.FreeVideos)
	noteUsecase := usecase.NewNoteUsecase(noteRepository, videoRepository, tagRepository, configuration.C.Limits.FreeNotesPerVideo)
	documentUsecase := usecase.NewDocumentUsecase(documentRepository, videoRepository, tagRepository)
	tagUsecase := usecase.NewTagUsecase(tagRepository, configuration.C.Limits.FreeTags)

	userHandler := httpHandler.NewUserHandler(userUsecase)
	discoverHandler := httpHandler.NewDiscoverHandler(discoverUsecase)
	videoHandler := httpHandler.NewVideoHandler(videoUsecase)
	noteHandler := httpHandler.NewNoteHandler(noteUsecase)
	documentHandler := httpHandler.NewDocumentHandler(documentUsecase)
	tagHandler := httpHandler.NewTagHandler(tagUsecase)

	router := server.InitiateRouter(
		userHandler,
		discoverHandler,
		videoHandler,
		noteHandler,
		documentHandler,
		tagHandler,
		userRepository,
		app.SecretKey,
	)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
