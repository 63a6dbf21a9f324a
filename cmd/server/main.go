package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"company_intel/internal/app/di"
	"company_intel/internal/app/router"
	analysishandler "company_intel/internal/feature/analysis/transport/handler"
	historyhandler "company_intel/internal/feature/history/transport/handler"
	historyusecase "company_intel/internal/feature/history/usecase"
	"company_intel/internal/platform/db"
	"company_intel/internal/platform/env"
	"company_intel/internal/platform/http/handler"
	infraredis "company_intel/internal/platform/redis"
)

func main() {
	env.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.Check{}

	// db
	historyRepo, gdb, err := di.NewHistoryRepository(db.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to initialize analysis history", "error", err)
		os.Exit(1)
	}
	if gdb != nil {
		checks["db"] = func(ctx context.Context) error { return db.Ping(gdb.WithContext(ctx)) }
	}

	// Redis
	redisCfg := infraredis.LoadConfig()
	var rdb *redisv9.Client
	if redisCfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable. Running without search cache.")
		} else {
			rdb = tmp
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// LLM / Search
	llm, err := di.NewChatModel(ctx)
	if err != nil {
		slog.Error("failed to initialize LLM client", "error", err)
		os.Exit(1)
	}
	searcher := di.NewSearcher(rdb, redisCfg.CacheTTL)

	// Usecase
	historyUC := historyusecase.NewHistoryUsecase(historyRepo)
	orchestrator := di.NewOrchestrator(llm, searcher, historyUC)

	// Handler
	healthH := handler.NewHealthHandler(checks)
	analyzeH := analysishandler.NewAnalyzeHandler(orchestrator)
	historyH := historyhandler.NewHistoryHandler(historyUC)

	// ルータ生成
	routerCfg := router.LoadConfig()
	if routerCfg.AuthEnabled && routerCfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}
	engine := router.NewRouter(routerCfg, healthH, analyzeH, historyH)

	srv := &http.Server{
		Addr:              ":" + env.Get("PORT", "8080"),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		// WriteTimeout is left unset: /analyze streams for as long as the pipeline runs.
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func logLevel() slog.Level {
	switch strings.ToLower(env.Get("LOG_LEVEL", "info")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
