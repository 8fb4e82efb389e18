package consumers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/trendscope/internal/clients/kafka_client"
)

const UNHEALTHY_BACKOFF = 5 * time.Second

type ConsumerWrapper struct {
	fn     func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool)
	health []*atomic.Bool
}

func WrapConsumer(fn func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool), health ...*atomic.Bool) ConsumerWrapper {
	return ConsumerWrapper{
		fn:     fn,
		health: health,
	}
}

func (cw ConsumerWrapper) WithHealthCheck(health *atomic.Bool) ConsumerWrapper {
	cw.health = append(cw.health, health)
	return cw
}

func (cw ConsumerWrapper) Handler() kafka_client.ConsumerFunc {
	return func(ctx context.Context, consumer *kafka.Consumer) {
		cw.fn(ctx, consumer, cw.health...)
	}
}

// allHealthy reports whether every dependency flag is set.
func allHealthy(health []*atomic.Bool) bool {
	for _, h := range health {
		if h != nil && !h.Load() {
			return false
		}
	}
	return true
}

// waitHealthy blocks until every dependency is healthy or ctx ends.
func waitHealthy(ctx context.Context, name string, health []*atomic.Bool) bool {
	logged := false
	for !allHealthy(health) {
		if !logged {
			slog.Warn("[" + name + "] Dependency unhealthy, pausing consumption")
			logged = true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(UNHEALTHY_BACKOFF):
		}
	}
	return ctx.Err() == nil
}
