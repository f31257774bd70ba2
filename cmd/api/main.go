// Command api serves the Q&A HTTP API.
//
// @title                       Q&A API
// @version                     1.0
// @description                 Questions, answers, likes and a follow graph behind token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/questionhub/qa-api/internal/api"
	"github.com/questionhub/qa-api/internal/api/handler"
	"github.com/questionhub/qa-api/internal/core/service"
	mongostore "github.com/questionhub/qa-api/internal/infrastructure/db/mongo"
	"github.com/questionhub/qa-api/internal/infrastructure/db/postgres"
	redisstore "github.com/questionhub/qa-api/internal/infrastructure/db/redis"
	"github.com/questionhub/qa-api/internal/pkg/config"
	"github.com/questionhub/qa-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "qa-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Postgres ---
	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:        cfg.Postgres.URL,
		MaxConns:   cfg.Postgres.MaxConns,
		MaxRetries: cfg.Postgres.MaxRetries,
		RetryDelay: cfg.Postgres.RetryDelay,
	}, logger.Component(log, "postgres"))
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, logger.Component(log, "postgres")); err != nil {
		return err
	}

	// --- MongoDB ---
	mongoClient, mongoDB, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	activityRepo := mongostore.NewActivityRepository(mongoDB)
	if err := activityRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Redis ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Services ---
	userRepo := postgres.NewUserRepository(pool)
	followRepo := postgres.NewFollowRepository(pool)
	questionRepo := postgres.NewQuestionRepository(pool)
	answerRepo := postgres.NewAnswerRepository(pool)
	tokenStore := redisstore.NewTokenStore(rdb)

	authService := service.NewAuthService(userRepo, tokenStore, activityRepo, service.TokenConfig{
		Secret:     cfg.Auth.JWTSecret,
		AccessTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
	}, log)
	userService := service.NewUserService(userRepo, followRepo, questionRepo, answerRepo, activityRepo, log)
	questionService := service.NewQuestionService(questionRepo, userRepo, activityRepo, log)
	answerService := service.NewAnswerService(answerRepo, questionRepo, activityRepo, log)

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Users:     userService,
		Questions: questionService,
		Answers:   answerService,
		Checks: map[string]handler.Check{
			"postgres": pool.Ping,
			"mongodb":  func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Logger: logger.Component(log, "http"),
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
