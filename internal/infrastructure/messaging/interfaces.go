// Package messaging pushes live hero previews to connected editors.
package messaging

import (
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
)

// Preview message types.
const (
	MessageUpdate  = "update"
	MessageDeleted = "deleted"
)

// PreviewMessage is sent to every subscriber of a block after it changes.
type PreviewMessage struct {
	Type         string             `json:"type"`
	BlockID      string             `json:"blockId"`
	Variant      string             `json:"variant,omitempty"`
	Presentation *hero.Presentation `json:"presentation,omitempty"`
	HTML         string             `json:"html,omitempty"`
	Changed      time.Time          `json:"changed"`
}

// PreviewPublisher is what the block service needs from the hub.
type PreviewPublisher interface {
	Publish(msg PreviewMessage)
	SubscriberCount(blockID string) int
}
