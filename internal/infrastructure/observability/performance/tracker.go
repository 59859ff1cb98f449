package performance

import (
	"sort"
	"sync"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers    int           `json:"maxMarkers"`    // Completed markers retained for stats
	SlowThreshold time.Duration `json:"slowThreshold"` // Operations slower than this are logged
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers:    2000,
		SlowThreshold: 500 * time.Millisecond,
	}
}

// Tracker records operation markers and aggregates them per operation.
type Tracker struct {
	completed []Marker
	active    int
	config    *TrackerConfig
	logger    *logging.ChanneledLogger
	started   time.Time
	mu        sync.Mutex
}

// NewTracker creates a tracker. logger may be nil.
func NewTracker(config *TrackerConfig, logger *logging.ChanneledLogger) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}
	return &Tracker{
		config:  config,
		logger:  logger,
		started: time.Now(),
	}
}

// StartOperation creates a marker that reports back on Complete.
func (t *Tracker) StartOperation(operation, blockID string) *Marker {
	t.mu.Lock()
	t.active++
	t.mu.Unlock()

	return &Marker{
		Operation: operation,
		BlockID:   blockID,
		StartTime: time.Now(),
		Success:   true, // Assume success until proven otherwise
		tracker:   t,
	}
}

func (t *Tracker) complete(m *Marker) {
	t.mu.Lock()
	t.active--
	t.completed = append(t.completed, *m)
	if over := len(t.completed) - t.config.MaxMarkers; over > 0 {
		t.completed = append(t.completed[:0], t.completed[over:]...)
	}
	t.mu.Unlock()

	if t.logger != nil && t.config.SlowThreshold > 0 && m.Duration > t.config.SlowThreshold {
		t.logger.Perf().Warn("Slow operation",
			"operation", m.Operation,
			"blockId", m.BlockID,
			"duration", m.Duration,
			"success", m.Success,
		)
	}
}

// TakeSnapshot aggregates the retained markers, ordered by operation name.
func (t *Tracker) TakeSnapshot() *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	byOp := make(map[string]*OperationStats)
	var total = make(map[string]time.Duration)
	for _, m := range t.completed {
		stats, ok := byOp[m.Operation]
		if !ok {
			stats = &OperationStats{Operation: m.Operation}
			byOp[m.Operation] = stats
		}
		stats.Count++
		if !m.Success {
			stats.Failures++
		}
		if t.config.SlowThreshold > 0 && m.Duration > t.config.SlowThreshold {
			stats.Slow++
		}
		if m.Duration > stats.Max {
			stats.Max = m.Duration
		}
		total[m.Operation] += m.Duration
	}

	snapshot := &Snapshot{
		Timestamp:        time.Now(),
		Uptime:           time.Since(t.started),
		ActiveOperations: t.active,
		Operations:       make([]OperationStats, 0, len(byOp)),
	}
	for op, stats := range byOp {
		stats.Average = total[op] / time.Duration(stats.Count)
		snapshot.Operations = append(snapshot.Operations, *stats)
	}
	sort.Slice(snapshot.Operations, func(i, j int) bool {
		return snapshot.Operations[i].Operation < snapshot.Operations[j].Operation
	})
	return snapshot
}
