// Package repositories defines the repository interfaces for hero entities.
// These repositories abstract the data persistence details, ensuring the core
// application is clean and decoupled from the database.
package repositories

import (
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
)

type BlockRepository interface {
	FindByID(id string) (*hero.Block, error)
	FindAll() ([]*hero.Block, error)
	Store(block *hero.Block) error
	Update(block *hero.Block) error
	MarkPublished(id, html string, at time.Time) error
	Delete(id string) error
}

type MediaRepository interface {
	FindByID(id string) (*hero.Media, error)
	Store(media *hero.Media) error
	Delete(id string) error
}
