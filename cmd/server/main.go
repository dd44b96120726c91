package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamenighthq/gamenight/internal/common/clock"
	"github.com/gamenighthq/gamenight/internal/common/token"
	"github.com/gamenighthq/gamenight/internal/common/uuid"
	"github.com/gamenighthq/gamenight/internal/handlers/httpapi"
	attachmentRepo "github.com/gamenighthq/gamenight/internal/repositories/attachment"
	commentRepo "github.com/gamenighthq/gamenight/internal/repositories/comment"
	friendRepo "github.com/gamenighthq/gamenight/internal/repositories/friend"
	matchRepo "github.com/gamenighthq/gamenight/internal/repositories/match"
	sessionRepo "github.com/gamenighthq/gamenight/internal/repositories/session"
	friendService "github.com/gamenighthq/gamenight/internal/services/friend"
	matchService "github.com/gamenighthq/gamenight/internal/services/match"
	sessionService "github.com/gamenighthq/gamenight/internal/services/session"
	statsService "github.com/gamenighthq/gamenight/internal/services/stats"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type config struct {
	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":8080"`
	RedisAddr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD"`
	RedisDB          int           `envconfig:"REDIS_DB" default:"0"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	StructureLockTTL time.Duration `envconfig:"STRUCTURE_LOCK_TTL" default:"5s"`
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process("gamenight", &cfg); err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config, logger *zap.Logger) error {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() { _ = redisClient.Close() }()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return err
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}
	matches, err := matchRepo.NewRedis(&matchRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}
	friends, err := friendRepo.NewRedis(&friendRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}
	comments, err := commentRepo.NewRedis(&commentRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}
	attachments, err := attachmentRepo.NewRedis(&attachmentRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	systemClock := &clock.DefaultClock{}
	uuidGen := uuid.New()
	tokenGen := token.New()

	sessionSvc, err := sessionService.New(&sessionService.Config{
		SessionRepo:      sessions,
		FriendRepo:       friends,
		MatchRepo:        matches,
		CommentRepo:      comments,
		AttachmentRepo:   attachments,
		Clock:            systemClock,
		UUIDGenerator:    uuidGen,
		TokenGenerator:   tokenGen,
		StructureLockTTL: cfg.StructureLockTTL,
	})
	if err != nil {
		return err
	}

	matchSvc, err := matchService.New(&matchService.Config{
		MatchRepo:     matches,
		SessionRepo:   sessions,
		Clock:         systemClock,
		UUIDGenerator: uuidGen,
	})
	if err != nil {
		return err
	}

	friendSvc, err := friendService.New(&friendService.Config{
		FriendRepo:    friends,
		Clock:         systemClock,
		UUIDGenerator: uuidGen,
	})
	if err != nil {
		return err
	}

	statsSvc, err := statsService.New(&statsService.Config{
		FriendRepo: friends,
		MatchRepo:  matches,
	})
	if err != nil {
		return err
	}

	handler, err := httpapi.New(&httpapi.Config{
		SessionService: sessionSvc,
		MatchService:   matchSvc,
		FriendService:  friendSvc,
		StatsService:   statsSvc,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
