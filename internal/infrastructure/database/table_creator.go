package database

import (
	"database/sql"
	"fmt"
)

// TableCreator handles the creation of the block store schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS hero_media (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		url TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		width INTEGER NOT NULL DEFAULT 0,
		height INTEGER NOT NULL DEFAULT 0,
		renditions TEXT,
		created DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS hero_blocks (
		id TEXT PRIMARY KEY,
		variant TEXT NOT NULL,
		attributes TEXT NOT NULL,
		published_html TEXT,
		created DATETIME NOT NULL,
		changed DATETIME NOT NULL,
		published DATETIME
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_hero_blocks_changed ON hero_blocks(changed)`,
	`CREATE INDEX IF NOT EXISTS idx_hero_blocks_variant ON hero_blocks(variant)`,
}

// CreateSchema executes all necessary queries to build the tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}
