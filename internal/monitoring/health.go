package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

const HEALTHCHECK_INTERVAL = 15 * time.Second

// Check reports whether a dependency is usable right now.
type Check func(ctx context.Context) bool

// Monitor runs check on every tick and stores the outcome in healthy until
// ctx is done. Transitions are logged once.
func Monitor(ctx context.Context, clock clockwork.Clock, name string, interval time.Duration, check Check, healthy *atomic.Bool) {
	if interval <= 0 {
		interval = HEALTHCHECK_INTERVAL
	}
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			checkCtx, cancel := context.WithTimeout(ctx, interval/2)
			isHealthy := check(checkCtx)
			cancel()

			if was := healthy.Swap(isHealthy); was != isHealthy {
				if isHealthy {
					slog.Info("[HealthCheck] Dependency recovered", slog.String("name", name))
				} else {
					slog.Warn("[HealthCheck] Dependency is unhealthy", slog.String("name", name))
				}
			}
		}
	}
}
