// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
)

type blockEntry struct {
	block       *hero.Block
	lastUpdated time.Time
}

// BlocksStore caches loaded blocks by id.
type BlocksStore struct {
	blocks map[string]blockEntry
	ttl    time.Duration
	mu     sync.RWMutex
}

// NewBlocksStore creates a block cache whose entries expire after ttl.
func NewBlocksStore(ttl time.Duration) *BlocksStore {
	return &BlocksStore{
		blocks: make(map[string]blockEntry),
		ttl:    ttl,
	}
}

// GetBlock returns a copy of the cached block so callers cannot mutate the cache.
func (s *BlocksStore) GetBlock(id string) (*hero.Block, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.blocks[id]
	if !exists || time.Since(entry.lastUpdated) > s.ttl {
		return nil, false
	}
	return copyBlock(entry.block), true
}

func (s *BlocksStore) SetBlock(block *hero.Block) {
	if block == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[block.ID] = blockEntry{block: copyBlock(block), lastUpdated: time.Now().UTC()}
}

func (s *BlocksStore) InvalidateBlock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blocks, id)
}

// PurgeExpired drops entries older than the TTL and returns how many went.
func (s *BlocksStore) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, entry := range s.blocks {
		if now.Sub(entry.lastUpdated) > s.ttl {
			delete(s.blocks, id)
			purged++
		}
	}
	return purged
}

func (s *BlocksStore) Name() string { return "blocks" }

// Len returns the number of cached blocks, expired or not.
func (s *BlocksStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}

func copyBlock(b *hero.Block) *hero.Block {
	out := *b
	out.Attributes = b.Attributes.Clone()
	if b.PublishedHTML != nil {
		html := *b.PublishedHTML
		out.PublishedHTML = &html
	}
	if b.Published != nil {
		at := *b.Published
		out.Published = &at
	}
	return &out
}
