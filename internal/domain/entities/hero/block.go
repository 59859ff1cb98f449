package hero

import (
	"errors"
	"time"
)

var (
	// ErrBlockNotFound is returned when no block exists for an id.
	ErrBlockNotFound = errors.New("hero block not found")
	// ErrNoImage is returned when a render or publish needs an image the block lacks.
	ErrNoImage = errors.New("hero block has no image")
	// ErrUnknownVariant is returned for an unregistered variant name.
	ErrUnknownVariant = errors.New("unknown hero variant")
)

// Block is one stored hero block instance.
type Block struct {
	ID            string     `json:"id"`
	Variant       string     `json:"variant"`
	Attributes    Attributes `json:"attributes"`
	PublishedHTML *string    `json:"publishedHtml,omitempty"`
	Created       time.Time  `json:"created"`
	Changed       time.Time  `json:"changed"`
	Published     *time.Time `json:"published,omitempty"`
}

// IsPublished reports whether the block has been published and not changed since.
func (b *Block) IsPublished() bool {
	return b.Published != nil && !b.Changed.After(*b.Published)
}

// Media is one uploaded background image.
type Media struct {
	ID         string            `json:"id"`
	Filename   string            `json:"filename"`
	URL        string            `json:"url"`
	MimeType   string            `json:"mimeType"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	Renditions map[string]string `json:"renditions,omitempty"`
	Created    time.Time         `json:"created"`
}

// MediaSelection is what a media picker hands back to the block.
type MediaSelection struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}
