package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/stretchr/testify/assert"
)

func TestWorker_SweepAllStores(t *testing.T) {
	blocks := stores.NewBlocksStore(time.Minute)
	fragments := stores.NewFragmentsStore(time.Minute)
	blocks.SetBlock(&hero.Block{ID: "b1"})
	fragments.SetFragment("b1", interfaces.ModeStatic, "<div></div>", 0)

	w := NewWorker(time.Hour, logging.NewDiscardLogger(), blocks, fragments)

	assert.Equal(t, 0, w.Sweep(time.Now().UTC()))
	assert.Equal(t, 2, w.Sweep(time.Now().UTC().Add(time.Hour)))
}

func TestWorker_StopsOnCancel(t *testing.T) {
	w := NewWorker(time.Millisecond, logging.NewDiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
