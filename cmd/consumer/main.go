package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/config"
	"github.com/spacesedan/trendscope/internal/app"
	"github.com/spacesedan/trendscope/internal/clients"
	"github.com/spacesedan/trendscope/internal/clients/kafka_client"
	"github.com/spacesedan/trendscope/internal/consumers"
	"github.com/spacesedan/trendscope/internal/logging"
	"github.com/spacesedan/trendscope/internal/monitoring"
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Consumer] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	kafkaCfg := kafka_client.GetKafkaConfig()

	switch kafkaCfg.Topic {
	case kafka_client.KAFKA_TOPIC_NEWS_BATCHES:
		registerNewsBatchConsumer(ctx, cfg, kafkaCfg, clock)
	case kafka_client.KAFKA_TOPIC_TREND_REPORTS:
		registerReportConsumer(ctx, cfg, clock)
	}

	if err := kafka_client.StartConsumer(ctx, kafkaCfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func registerNewsBatchConsumer(ctx context.Context, cfg *config.Config, kafkaCfg kafka_client.KafkaConfig, clock clockwork.Clock) {
	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		slog.Error("[Consumer] Invalid profile", slog.String("error", err.Error()))
		os.Exit(1)
	}
	pipeline, err := app.BuildPipeline(cfg, profile, clock)
	if err != nil {
		slog.Error("[Consumer] Failed to build pipeline", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var producer *kafka_client.Producer
	for {
		producer, err = kafka_client.NewProducer(kafkaCfg)
		if err == nil {
			break
		}
		slog.Warn("[Consumer] Kafka producer init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	context.AfterFunc(ctx, producer.Close)

	valkey := clients.InitValkey()
	context.AfterFunc(ctx, clients.CloseValkey)

	valkeyHealthy := &atomic.Bool{}
	valkeyHealthy.Store(true)
	go monitoring.Monitor(ctx, clock, "valkey", monitoring.HEALTHCHECK_INTERVAL, valkey.Ping, valkeyHealthy)

	c := consumers.NewNewsBatchConsumer(pipeline, valkey, producer)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_NEWS_BATCHES,
		consumers.WrapConsumer(c.Start).WithHealthCheck(valkeyHealthy).Handler())
}

func registerReportConsumer(ctx context.Context, cfg *config.Config, clock clockwork.Clock) {
	store, closeStore, err := app.OpenStore(cfg, clock)
	if err != nil {
		slog.Error("[Consumer] Failed to open report store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if store == nil {
		slog.Error("[Consumer] REPORT_STORE=none leaves the report consumer nothing to do")
		os.Exit(1)
	}
	context.AfterFunc(ctx, func() { _ = closeStore() })

	storeHealthy := &atomic.Bool{}
	storeHealthy.Store(true)
	go monitoring.Monitor(ctx, clock, "report-store", monitoring.HEALTHCHECK_INTERVAL, app.StoreCheck(store), storeHealthy)

	c := consumers.NewReportConsumer(store)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_TREND_REPORTS,
		consumers.WrapConsumer(c.Start, storeHealthy).Handler())
}
