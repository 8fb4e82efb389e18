package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorTracksCheckResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClock()
	var up atomic.Bool
	up.Store(true)
	results := make(chan bool, 1)

	healthy := &atomic.Bool{}
	healthy.Store(true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		Monitor(ctx, clock, "valkey", time.Second, func(context.Context) bool {
			v := up.Load()
			results <- v
			return v
		}, healthy)
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	up.Store(false)
	clock.Advance(time.Second)
	assert.False(t, <-results)
	assert.Eventually(t, func() bool { return !healthy.Load() }, time.Second, 5*time.Millisecond)

	up.Store(true)
	clock.Advance(time.Second)
	assert.True(t, <-results)
	assert.Eventually(t, healthy.Load, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
