package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/probooking/probooking-api/internal/api"
	"github.com/probooking/probooking-api/internal/api/metrics"
	"github.com/probooking/probooking-api/internal/core/ports"
	"github.com/probooking/probooking-api/internal/core/service"
	"github.com/probooking/probooking-api/internal/core/token"
	"github.com/probooking/probooking-api/internal/infrastructure/config"
	"github.com/probooking/probooking-api/internal/infrastructure/credentials"
	mongodb "github.com/probooking/probooking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/probooking/probooking-api/internal/infrastructure/db/redis"
	"github.com/probooking/probooking-api/internal/infrastructure/queue"
	"github.com/probooking/probooking-api/internal/infrastructure/session"
	"github.com/probooking/probooking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Optional backends ---
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
	}

	var mongoClient *mongo.Client
	var mongoDB *mongo.Database
	if cfg.Mongo.URI != "" {
		var err error
		mongoClient, mongoDB, err = mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
	}

	// --- Session slot store ---
	var store ports.SessionStore
	switch cfg.Session.Backend {
	case "memory":
		store = session.NewMemoryStore()
	case "redis":
		if rdb == nil {
			log.Fatal().Msg("SESSION_BACKEND=redis requires REDIS_ADDR")
		}
		store = redisdb.NewSessionStore(rdb, cfg.Session.Key)
	case "file":
		store = session.NewFileStore(cfg.Session.File)
	default:
		log.Fatal().Str("backend", cfg.Session.Backend).Msg("unknown session backend")
	}

	// --- Core wiring ---
	creds, err := credentials.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("credential store init failed")
	}
	codec := token.NewCodec()

	authService := service.NewAuthService(creds, codec, store, service.Options{
		LoginDelay:        cfg.Auth.LoginDelay,
		LoginTimeout:      cfg.Auth.LoginTimeout,
		ErrorDismissAfter: cfg.Auth.ErrorDismissAfter,
		StrictPasswords:   cfg.Auth.StrictPasswords,
	}, log)

	if rdb != nil && cfg.Auth.MaxAttempts > 0 {
		authService.WithLimiter(redisdb.NewAttemptLimiter(rdb, cfg.Auth.MaxAttempts, cfg.Auth.AttemptWindow))
	}

	var auditRepo ports.AuditRepository
	if mongoDB != nil {
		repo := mongodb.NewAuditRepository(mongoDB)
		auditRepo = repo

		dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, repo, log)
		dispatcher.Start(ctx)
		authService.WithAudit(dispatcher)
	}

	// --- Startup session restore ---
	if user, ok := authService.Restore(ctx); ok {
		metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
		metrics.ActiveSessions.Set(1)
		log.Info().Str("email", user.Email).Msg("previous session restored")
	} else {
		metrics.SessionRestoresTotal.WithLabelValues("none").Inc()
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		Codec:       codec,
		AuditRepo:   auditRepo,
		Mongo:       mongoDB,
		Redis:       rdb,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}
}
