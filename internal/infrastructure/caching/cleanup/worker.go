// Package cleanup provides background worker
package cleanup

import (
	"context"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

// Worker handles background cache cleanup operations
type Worker struct {
	stores   []interfaces.Expirable
	interval time.Duration
	logger   *logging.ChanneledLogger
}

// NewWorker creates a new cleanup worker sweeping the given stores
func NewWorker(interval time.Duration, logger *logging.ChanneledLogger, stores ...interfaces.Expirable) *Worker {
	return &Worker{
		stores:   stores,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the cleanup worker routine, using the configured interval
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.Sweep(time.Now().UTC())
		}
	}
}

// Sweep purges expired entries from every store once and returns the total.
func (w *Worker) Sweep(now time.Time) int {
	start := time.Now()
	total := 0
	for _, store := range w.stores {
		purged := store.PurgeExpired(now)
		if purged > 0 {
			w.logger.Cache().Debug("Purged expired cache entries", "store", store.Name(), "count", purged)
		}
		total += purged
	}
	if total > 0 {
		w.logger.Cache().Info("Cache cleanup finished", "cleaned", total, "duration", time.Since(start))
	}
	return total
}
