package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/speaktime/speaktime-api/internal/auth"
	"github.com/speaktime/speaktime-api/internal/config"
	"github.com/speaktime/speaktime-api/internal/handler"
	"github.com/speaktime/speaktime-api/internal/middleware"
	"github.com/speaktime/speaktime-api/internal/repository"
	"github.com/speaktime/speaktime-api/internal/security"
	"github.com/speaktime/speaktime-api/internal/server"
	"github.com/speaktime/speaktime-api/internal/usecase"
	"github.com/speaktime/speaktime-api/internal/validation"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}
	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	groupRepo := repository.NewGroupMongoRepository(db)
	meetingRepo := repository.NewMeetingMongoRepository(db)

	tokens, err := auth.NewTokenService(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.ExpiresIn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize token service")
	}
	hasher := security.NewHasher(cfg.Hash)

	validate, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, tokens, hasher)
	userUsecase := usecase.NewUserUsecase(userRepo, hasher)
	groupUsecase := usecase.NewGroupUsecase(groupRepo)
	meetingUsecase := usecase.NewMeetingUsecase(meetingRepo, groupRepo)

	authGuard := middleware.NewAuth(tokens, userRepo, &logger)
	authHandler := handler.NewAuthHandler(authUsecase, validate, &logger)
	userHandler := handler.NewUserHandler(userUsecase, validate, &logger)
	groupHandler := handler.NewGroupHandler(groupUsecase, validate, &logger)
	meetingHandler := handler.NewMeetingHandler(meetingUsecase, validate, &logger)

	router := server.NewRouter(cfg, &logger, authGuard, authHandler, userHandler, groupHandler, meetingHandler)
	srv := server.New(":"+cfg.Port, router, &logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
