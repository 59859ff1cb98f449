// Package interfaces defines cache operation contracts for hero blocks.
package interfaces

import (
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
)

// RenderMode distinguishes the editor markup from the published markup.
type RenderMode string

const (
	ModeEditor RenderMode = "editor"
	ModeStatic RenderMode = "static"
)

// BlockCache defines operations for block caching
type BlockCache interface {
	GetBlock(id string) (*hero.Block, bool)
	SetBlock(block *hero.Block)
	InvalidateBlock(id string)
}

// FragmentCache defines operations for rendered HTML caching. SetFragment is
// ignored when the block was invalidated after generation was read.
type FragmentCache interface {
	GetFragment(blockID string, mode RenderMode) (string, bool)
	Generation(blockID string) uint64
	SetFragment(blockID string, mode RenderMode, html string, generation uint64) bool
	InvalidateFragments(blockID string) uint64
}

// Expirable is implemented by stores the cleanup worker can sweep.
type Expirable interface {
	PurgeExpired(now time.Time) int
	Name() string
}
