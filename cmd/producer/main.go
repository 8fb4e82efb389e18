package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spacesedan/trendscope/config"
	"github.com/spacesedan/trendscope/internal/app"
	"github.com/spacesedan/trendscope/internal/clients"
	"github.com/spacesedan/trendscope/internal/clients/kafka_client"
	"github.com/spacesedan/trendscope/internal/logging"
	"github.com/spacesedan/trendscope/internal/processing"
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Producer] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if len(cfg.Watchlist) == 0 {
		slog.Error("[Producer] WATCHLIST is empty, nothing to fetch")
		os.Exit(1)
	}

	kafkaCfg := kafka_client.GetKafkaConfig()
	var producer *kafka_client.Producer
	for {
		producer, err = kafka_client.NewProducer(kafkaCfg)
		if err == nil {
			break
		}
		slog.Warn("[Producer] Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer producer.Close()

	valkey := clients.InitValkey()
	defer clients.CloseValkey()

	newsProducer := &processing.NewsProducer{
		Fetcher:   app.BuildAggregator(cfg, nil),
		Deduper:   valkey,
		Publisher: producer,
		Topic:     kafka_client.KAFKA_TOPIC_NEWS_BATCHES,
		Limit:     cfg.FetchLimit,
		Hours:     cfg.FetchHours,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCycle := func() {
		if err := newsProducer.RunWatchlist(ctx, cfg.Watchlist); err != nil {
			slog.Warn("[Producer] Watchlist cycle had failures", slog.String("error", err.Error()))
		}
	}

	// Skip a tick while the previous cycle is still running.
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(cfg.FetchSchedule, runCycle); err != nil {
		slog.Error("[Producer] Invalid FETCH_SCHEDULE",
			slog.String("schedule", cfg.FetchSchedule),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Producer] Starting",
		slog.String("schedule", cfg.FetchSchedule),
		slog.Any("watchlist", cfg.Watchlist))

	runCycle()
	c.Start()

	<-ctx.Done()
	slog.Info("[Producer] Shutting down producer gracefully...")
	<-c.Stop().Done()
}
