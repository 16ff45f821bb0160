// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

// Command api is the entry point for the Taskhive HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis (optional; enables distributed rate limiting).
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers and background jobs.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskhive/api/internal/api"
	"github.com/taskhive/api/internal/auth"
	"github.com/taskhive/api/internal/jobs"
	"github.com/taskhive/api/internal/platform/config"
	"github.com/taskhive/api/internal/platform/constants"
	"github.com/taskhive/api/internal/platform/migration"
	pgstore "github.com/taskhive/api/internal/platform/postgres"
	"github.com/taskhive/api/internal/platform/ratelimit"
	redisstore "github.com/taskhive/api/internal/platform/redis"
	"github.com/taskhive/api/internal/platform/sec"
	"github.com/taskhive/api/internal/todo"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	// Without Redis the rate limiter falls back to per-process counters,
	// which is fine for a single instance.
	var rateLimitStore ratelimit.Store
	var memoryStore *ratelimit.MemoryStore
	var checkCache func() error

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		rateLimitStore = ratelimit.NewRedisStore(rdb)
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	} else {
		log.Info("redis_not_configured", slog.String("rate_limit_store", "memory"))
		memoryStore = ratelimit.NewMemoryStore()
		rateLimitStore = memoryStore
	}

	limiter := ratelimit.New(rateLimitStore, cfg.RateLimitMaxRequests, cfg.RateLimitWindow)

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService := sec.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: checkCache,
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	tokenRepository := auth.NewRefreshTokenRepository(pool)
	authService := auth.NewService(userRepository, tokenRepository, tokenService, cfg.RefreshTokenTTL)
	authHandler := auth.NewHandler(authService)

	todoRepository := todo.NewPostgresRepository(pool)
	todoService := todo.NewService(todoRepository)
	todoHandler := todo.NewHandler(todoService)

	// ── 9. Background Jobs ────────────────────────────────────────────────
	jobsCtx, jobsCancel := context.WithCancel(context.Background())
	defer jobsCancel()

	runner := jobs.NewRunner(log)
	runner.Add(jobs.Job{
		Name:     "refresh_token_purge",
		Interval: constants.RefreshTokenPurgeInterval,
		Run: func(ctx context.Context) error {
			removed, err := authService.PurgeExpiredTokens(ctx)
			if err == nil && removed > 0 {
				log.Info("refresh_tokens_purged", slog.Int64("removed", removed))
			}
			return err
		},
	})
	if memoryStore != nil {
		runner.Add(jobs.Job{
			Name:     "rate_limit_prune",
			Interval: constants.RateLimitPruneInterval,
			Run: func(context.Context) error {
				memoryStore.Prune(cfg.RateLimitWindow)
				return nil
			},
		})
	}
	runner.Start(jobsCtx)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Todo:      todoHandler,
	}

	server := api.NewServer(cfg, log, tokenService, limiter, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	jobsCancel()
	runner.Wait()

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
