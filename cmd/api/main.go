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

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/config"
	"github.com/spacesedan/trendscope/internal/app"
	"github.com/spacesedan/trendscope/internal/logging"
	"github.com/spacesedan/trendscope/internal/server"
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg, err := config.Load()
	if err != nil {
		slog.Error("[API] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		slog.Error("[API] Invalid profile", slog.String("error", err.Error()))
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()
	pipeline, err := app.BuildPipeline(cfg, profile, clock)
	if err != nil {
		slog.Error("[API] Failed to build pipeline", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, closeStore, err := app.OpenStore(cfg, clock)
	if err != nil {
		slog.Error("[API] Failed to open report store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()
	if store != nil {
		pipeline.WithStore(store)
	}

	news := app.BuildAggregator(cfg, clock)
	router := server.SetupRouter(server.Deps{
		Pipeline: pipeline,
		News:     news,
		Sources:  news.Sources(),
		Store:    store,
		Clock:    clock,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("[API] Listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[API] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[API] Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[API] Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
