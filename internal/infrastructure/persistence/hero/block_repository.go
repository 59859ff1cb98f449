// Package hero provides the hero block and media repositories
package hero

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/pkg/config"
)

const timeLayout = time.RFC3339Nano

type BlockRepository struct {
	db     *sql.DB
	cache  interfaces.BlockCache
	logger *logging.ChanneledLogger
}

func NewBlockRepository(db *sql.DB, cache interfaces.BlockCache, logger *logging.ChanneledLogger) *BlockRepository {
	return &BlockRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// FindByID returns the block or nil when it does not exist.
func (r *BlockRepository) FindByID(id string) (*hero.Block, error) {
	if block, found := r.cache.GetBlock(id); found {
		return block, nil
	}

	block, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, nil
	}

	r.cache.SetBlock(block)
	return block, nil
}

func (r *BlockRepository) FindAll() ([]*hero.Block, error) {
	query := `SELECT id, variant, attributes, published_html, created, changed, published
              FROM hero_blocks ORDER BY changed DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading all blocks from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query blocks", "error", err.Error())
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer rows.Close()

	blocks := []*hero.Block{}
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			r.logger.Database().Warn("Skipping malformed block row", "error", err.Error())
			continue
		}
		r.cache.SetBlock(block)
		blocks = append(blocks, block)
	}

	r.logger.Database().Info("Loaded blocks from database", "count", len(blocks), "duration", time.Since(start))
	r.checkSlow(query, start)
	return blocks, rows.Err()
}

func (r *BlockRepository) Store(block *hero.Block) error {
	attrsJSON, err := json.Marshal(block.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}

	query := `INSERT INTO hero_blocks (id, variant, attributes, created, changed) VALUES (?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing block insert", "id", block.ID)

	_, err = r.db.Exec(query, block.ID, block.Variant, string(attrsJSON),
		block.Created.UTC().Format(timeLayout), block.Changed.UTC().Format(timeLayout))
	if err != nil {
		r.logger.Database().Error("Block insert failed", "error", err.Error(), "id", block.ID)
		return fmt.Errorf("failed to insert block: %w", err)
	}

	r.logger.Database().Info("Block insert completed", "id", block.ID, "duration", time.Since(start))
	r.checkSlow(query, start)
	r.cache.SetBlock(block)
	return nil
}

func (r *BlockRepository) Update(block *hero.Block) error {
	attrsJSON, err := json.Marshal(block.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}

	query := `UPDATE hero_blocks SET variant = ?, attributes = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing block update", "id", block.ID)

	res, err := r.db.Exec(query, block.Variant, string(attrsJSON), block.Changed.UTC().Format(timeLayout), block.ID)
	if err != nil {
		r.logger.Database().Error("Block update failed", "error", err.Error(), "id", block.ID)
		return fmt.Errorf("failed to update block: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.cache.InvalidateBlock(block.ID)
		return hero.ErrBlockNotFound
	}

	r.logger.Database().Info("Block update completed", "id", block.ID, "duration", time.Since(start))
	r.checkSlow(query, start)
	r.cache.SetBlock(block)
	return nil
}

// MarkPublished stores the published markup and the publish time.
func (r *BlockRepository) MarkPublished(id, html string, at time.Time) error {
	query := `UPDATE hero_blocks SET published_html = ?, published = ? WHERE id = ?`

	start := time.Now()
	res, err := r.db.Exec(query, html, at.UTC().Format(timeLayout), id)
	if err != nil {
		r.logger.Database().Error("Block publish update failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to mark block published: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return hero.ErrBlockNotFound
	}

	r.logger.Database().Info("Block publish update completed", "id", id, "duration", time.Since(start))
	r.checkSlow(query, start)
	r.cache.InvalidateBlock(id)
	return nil
}

func (r *BlockRepository) Delete(id string) error {
	query := `DELETE FROM hero_blocks WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing block delete", "id", id)

	res, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Block delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete block: %w", err)
	}
	r.cache.InvalidateBlock(id)
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return hero.ErrBlockNotFound
	}

	r.logger.Database().Info("Block delete completed", "id", id, "duration", time.Since(start))
	r.checkSlow(query, start)
	return nil
}

func (r *BlockRepository) loadFromDB(id string) (*hero.Block, error) {
	query := `SELECT id, variant, attributes, published_html, created, changed, published
              FROM hero_blocks WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading block from database", "id", id)

	block, err := scanBlock(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan block", "error", err.Error(), "id", id)
		return nil, err
	}

	r.logger.Database().Info("Block loaded from database", "id", id, "duration", time.Since(start))
	r.checkSlow(query, start)
	return block, nil
}

func (r *BlockRepository) checkSlow(query string, start time.Time) {
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlock(row rowScanner) (*hero.Block, error) {
	var block hero.Block
	var attrsJSON, created, changed string
	var publishedHTML, published sql.NullString

	if err := row.Scan(&block.ID, &block.Variant, &attrsJSON, &publishedHTML, &created, &changed, &published); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan block: %w", err)
	}

	if err := json.Unmarshal([]byte(attrsJSON), &block.Attributes); err != nil {
		return nil, fmt.Errorf("failed to parse block attributes: %w", err)
	}

	var err error
	if block.Created, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("failed to parse created time: %w", err)
	}
	if block.Changed, err = time.Parse(timeLayout, changed); err != nil {
		return nil, fmt.Errorf("failed to parse changed time: %w", err)
	}
	if publishedHTML.Valid {
		html := publishedHTML.String
		block.PublishedHTML = &html
	}
	if published.Valid && published.String != "" {
		at, err := time.Parse(timeLayout, published.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse published time: %w", err)
		}
		block.Published = &at
	}
	return &block, nil
}
