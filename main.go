package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seo-optimizer/toolkit/api"
	"github.com/seo-optimizer/toolkit/config"
	"github.com/seo-optimizer/toolkit/logging"
	"github.com/seo-optimizer/toolkit/middleware"
	"github.com/seo-optimizer/toolkit/toolkit"
)

func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if !envLoaded {
		logger.Info("no .env file found, using environment variables")
	}

	gin.SetMode(cfg.GinMode)

	tools, err := toolkit.New(cfg.DataDir,
		toolkit.WithLogger(logger),
		toolkit.WithRetention(cfg.RetainMonths, 24*time.Hour),
	)
	if err != nil {
		logger.Fatal("failed to initialize toolkit", zap.Error(err))
	}
	traffic := logging.NewTraffic(cfg.DevMode)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.CORS())
	r.Use(rateLimiter.RateLimit())
	r.Use(middleware.Traffic(traffic))

	api.NewHandler(tools, traffic, logger).Register(r.Group("/api"))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", "http://localhost"+cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := tools.Shutdown(); err != nil {
		logger.Error("toolkit shutdown", zap.Error(err))
	}
}
