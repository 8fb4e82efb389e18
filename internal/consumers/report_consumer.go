package consumers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/trendscope/internal/clients/kafka_client"
	"github.com/spacesedan/trendscope/internal/metrics"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/spacesedan/trendscope/internal/processing"
	"github.com/spacesedan/trendscope/internal/utils"
)

// Committer commits the offset of a handled message.
type Committer interface {
	Commit(msg *kafka.Message) error
}

// ReportConsumer buffers reports and writes them to the store in batches.
// Offsets are committed only for reports that were stored.
type ReportConsumer struct {
	store   processing.ReportStore
	buffer  *utils.BatchBuffer[models.Report]
	tracker utils.MessageTracker
	retries int
}

func NewReportConsumer(store processing.ReportStore) *ReportConsumer {
	return &ReportConsumer{
		store:   store,
		buffer:  utils.NewBatchBuffer[models.Report](utils.REPORT_BATCH_SIZE),
		retries: 3,
	}
}

// Handle buffers the report in msg and returns true when the buffer is full.
func (c *ReportConsumer) Handle(msg *kafka.Message) bool {
	var report models.Report
	if err := utils.DeserializeFromJSON(msg.Value, &report); err != nil {
		slog.Warn("[ReportConsumer] Dropping malformed report", slog.String("error", err.Error()))
		return false
	}
	c.tracker.Track(report.ID, msg)
	return c.buffer.Add(report)
}

// Flush stores everything buffered and commits the messages behind it.
// A batch that cannot be stored is put back for the next flush.
func (c *ReportConsumer) Flush(ctx context.Context, committer Committer) {
	batch := c.buffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var err error
	for i := 0; i < c.retries; i++ {
		if err = c.store.SaveReports(ctx, batch); err == nil {
			break
		}
		slog.Error("[ReportConsumer] Failed to write reports to store",
			slog.String("error", err.Error()),
			slog.Int("attempt", i+1))
	}
	if err != nil {
		metrics.ReportsStoredTotal.WithLabelValues("error").Add(float64(len(batch)))
		for _, report := range batch {
			c.buffer.Add(report)
		}
		return
	}
	metrics.ReportsStoredTotal.WithLabelValues("success").Add(float64(len(batch)))

	for _, report := range batch {
		msg, found := c.tracker.Release(report.ID)
		if !found {
			continue
		}
		if err := committer.Commit(msg); err != nil {
			slog.Warn("[ReportConsumer] Failed to commit offset",
				slog.String("report_id", report.ID),
				slog.String("error", err.Error()))
		}
	}
	slog.Info("[ReportConsumer] Stored reports", slog.Int("count", len(batch)))
}

func (c *ReportConsumer) Start(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	slog.Info("[ReportConsumer] Listening for messages...")
	for {
		select {
		case <-ctx.Done():
			slog.Warn("[ReportConsumer] Stopping consumer...")
			c.Flush(context.Background(), kafka_client.NewCommitHandler(context.Background(), consumer))
			return
		case <-ticker.C:
			if allHealthy(health) {
				c.Flush(ctx, committer)
			}
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}
			if msg == nil {
				continue
			}
			if c.Handle(msg) && allHealthy(health) {
				c.Flush(ctx, committer)
			}
		}
	}
}
