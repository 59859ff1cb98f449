package stores

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/caching/interfaces"
)

// HTMLChunk is one rendered fragment.
type HTMLChunk struct {
	HTML        string
	BlockID     string
	Mode        interfaces.RenderMode
	LastUpdated time.Time
}

// FragmentsStore implements HTML fragment caching per block and render mode.
// Each block carries a generation that InvalidateFragments bumps; a fill tagged
// with an older generation is dropped.
type FragmentsStore struct {
	chunks      map[string]*HTMLChunk
	generations map[string]uint64
	ttl         time.Duration
	mu          sync.RWMutex
}

// NewFragmentsStore creates a new fragments cache store
func NewFragmentsStore(ttl time.Duration) *FragmentsStore {
	return &FragmentsStore{
		chunks:      make(map[string]*HTMLChunk),
		generations: make(map[string]uint64),
		ttl:         ttl,
	}
}

// BuildChunkKey creates a unique key for HTML chunks based on block ID and mode
func (fs *FragmentsStore) BuildChunkKey(blockID string, mode interfaces.RenderMode) string {
	return blockID + ":" + string(mode)
}

func (fs *FragmentsStore) GetFragment(blockID string, mode interfaces.RenderMode) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	chunk, exists := fs.chunks[fs.BuildChunkKey(blockID, mode)]
	if !exists || time.Since(chunk.LastUpdated) > fs.ttl {
		return "", false
	}
	return chunk.HTML, true
}

// Generation returns the current generation of a block. Read it before loading
// the block a fragment is rendered from.
func (fs *FragmentsStore) Generation(blockID string) uint64 {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.generations[blockID]
}

// SetFragment stores html unless the block was invalidated after generation
// was read. It reports whether the fragment was stored.
func (fs *FragmentsStore) SetFragment(blockID string, mode interfaces.RenderMode, html string, generation uint64) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.generations[blockID] != generation {
		return false
	}
	fs.chunks[fs.BuildChunkKey(blockID, mode)] = &HTMLChunk{
		HTML:        html,
		BlockID:     blockID,
		Mode:        mode,
		LastUpdated: time.Now().UTC(),
	}
	return true
}

// InvalidateFragments drops every mode rendered for a block and returns the
// block's new generation.
func (fs *FragmentsStore) InvalidateFragments(blockID string) uint64 {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, mode := range []interfaces.RenderMode{interfaces.ModeEditor, interfaces.ModeStatic} {
		delete(fs.chunks, fs.BuildChunkKey(blockID, mode))
	}
	fs.generations[blockID]++
	return fs.generations[blockID]
}

func (fs *FragmentsStore) PurgeExpired(now time.Time) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	purged := 0
	for key, chunk := range fs.chunks {
		if now.Sub(chunk.LastUpdated) > fs.ttl {
			delete(fs.chunks, key)
			purged++
		}
	}
	return purged
}

func (fs *FragmentsStore) Name() string { return "fragments" }
