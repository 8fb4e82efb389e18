package consumers

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/trendscope/internal/clients/kafka_client"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/spacesedan/trendscope/internal/processing"
	"github.com/spacesedan/trendscope/internal/utils"
)

// NewsBatchConsumer analyses news batches and publishes one report each.
type NewsBatchConsumer struct {
	pipeline  *processing.Pipeline
	deduper   processing.Deduper
	publisher processing.Publisher
	topic     string
}

func NewNewsBatchConsumer(pipeline *processing.Pipeline, deduper processing.Deduper, publisher processing.Publisher) *NewsBatchConsumer {
	return &NewsBatchConsumer{
		pipeline:  pipeline,
		deduper:   deduper,
		publisher: publisher,
		topic:     kafka_client.KAFKA_TOPIC_TREND_REPORTS,
	}
}

// Handle processes one message. Malformed payloads are logged and dropped
// so they do not block the partition.
func (c *NewsBatchConsumer) Handle(ctx context.Context, msg *kafka.Message) error {
	var batch models.NewsBatch
	if err := utils.DeserializeFromJSON(msg.Value, &batch); err != nil {
		slog.Warn("[NewsBatchConsumer] Dropping malformed batch", slog.String("error", err.Error()))
		return nil
	}

	if batch.BatchID != "" && c.deduper != nil && c.deduper.IsProcessed(ctx, processing.NAMESPACE_BATCH, batch.BatchID) {
		slog.Info("[NewsBatchConsumer] Skipping already analysed batch", slog.String("batch_id", batch.BatchID))
		return nil
	}

	report := c.pipeline.Analyze(batch.Keyword, batch.Records)
	if err := c.publisher.PublishJSON(c.topic, report.Keyword, report); err != nil {
		return fmt.Errorf("[NewsBatchConsumer] publish report for batch %s: %w", batch.BatchID, err)
	}

	if batch.BatchID != "" && c.deduper != nil {
		if err := c.deduper.MarkProcessed(ctx, processing.NAMESPACE_BATCH, batch.BatchID); err != nil {
			slog.Warn("[NewsBatchConsumer] Failed to mark batch processed",
				slog.String("batch_id", batch.BatchID),
				slog.String("error", err.Error()))
		}
	}

	slog.Info("[NewsBatchConsumer] Batch analysed",
		slog.String("batch_id", batch.BatchID),
		slog.String("keyword", batch.Keyword),
		slog.Int("articles", report.ArticleCount),
		slog.String("trend", string(report.Trend.Trend)))
	return nil
}

// Start consumes until ctx ends, committing each message once handled.
func (c *NewsBatchConsumer) Start(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[NewsBatchConsumer] Listening for messages...")
	for {
		if !waitHealthy(ctx, "NewsBatchConsumer", health) {
			slog.Warn("[NewsBatchConsumer] Stopping consumer...")
			return
		}

		msg, err := iterator.Next()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			utils.HandleConsumerError(err)
			continue
		}
		if msg == nil {
			continue
		}

		if err := c.Handle(ctx, msg); err != nil {
			utils.HandleConsumerError(err)
			continue
		}
		if err := committer.Commit(msg); err != nil {
			slog.Warn("[NewsBatchConsumer] Failed to commit offset", slog.String("error", err.Error()))
		}
	}
}
