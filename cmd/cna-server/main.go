// cmd/cna-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cna-backend/internal/catalog"
	"cna-backend/internal/common/cache"
	"cna-backend/internal/common/config"
	apperrors "cna-backend/internal/common/errors"
	"cna-backend/internal/common/logger"
	"cna-backend/internal/common/observability"
	cnahttp "cna-backend/internal/http"
	httpH "cna-backend/internal/http/handlers"
	"cna-backend/internal/workers/drafting"
	draftreply "cna-backend/internal/workers/drafting/draft-reply"

	"github.com/gin-gonic/gin"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting CNA draft service...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	obs := observability.New(cfg.App.Name, nil, log)
	obs.InitTracing(ctx, cfg.App, cfg.Observability, nil, log)
	defer obs.Shutdown()

	cat, err := catalog.Default()
	if err != nil {
		zapLog.Fatal("template catalog is invalid", zap.Error(err))
	}
	zapLog.Info("Template catalog loaded",
		zap.String("catalogVersion", cat.Version()),
		zap.Int("entries", len(cat.Entries())),
	)

	opts := []draftreply.Option{draftreply.WithRecorder(obs)}

	// --- Optional draft cache ---
	var redis *cache.RedisClient
	if cfg.Cache.Enabled {
		redis = cache.NewRedis(cfg.Cache)
		err = retryWithBackoff(func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return redis.Ping(pingCtx)
		}, 5, time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("draft cache unavailable, continuing without it", zap.Error(err))
			_ = redis.Close()
			redis = nil
		} else {
			defer redis.Close()
			opts = append(opts, draftreply.WithCache(redis))
			zapLog.Info("Redis connected successfully")
		}
	}

	pipeline := drafting.NewPipeline(cat, draftreply.LoadConfig(cfg), log, opts...)

	server := cnahttp.NewServer(cfg.Server, cnahttp.RouterConfig{
		ServiceName: cfg.App.Name,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      log,
		HealthHandler: httpH.NewHealthHandler(cfg.App.Version, func() bool {
			if redis == nil {
				return true
			}
			pingCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			return redis.Ping(pingCtx) == nil
		}),
		DraftingHandler: httpH.NewDraftingHandler(httpH.DraftingDeps{
			Resolver:            pipeline.Resolver,
			Analyzer:            pipeline.Analyzer,
			Renderer:            pipeline.Renderer,
			Orchestrator:        pipeline.Orchestrator,
			ErrHandler:          apperrors.NewErrorHandler(log),
			ExplicitStatusCodes: cfg.Server.ExplicitStatusCodes,
		}),
		TemplatesHandler: httpH.NewTemplatesHandler(cat),
	})

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.Run(); err != nil {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	if err := server.Shutdown(ctx, config.GetDuration(cfg.Server.ShutdownTimeout)); err != nil {
		zapLog.Error("Error during HTTP shutdown", zap.Error(err))
	}

	zapLog.Info("CNA draft service stopped gracefully")
}
