// Package database opens the block store on SQLite or, when configured, Turso.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Config selects and addresses the backing database.
type Config struct {
	SQLitePath    string
	TursoEnabled  bool
	TursoDatabase string
	TursoToken    string
}

// ConfigFromEnv builds a Config from the loaded environment.
func ConfigFromEnv() *Config {
	return &Config{
		SQLitePath:    config.SQLitePath,
		TursoEnabled:  config.TursoEnabled,
		TursoDatabase: config.TursoDatabase,
		TursoToken:    config.TursoToken,
	}
}

type Database struct {
	Conn     *sql.DB
	UseTurso bool
}

func NewDatabase(cfg *Config) (*Database, error) {
	var conn *sql.DB
	var err error
	useTurso := false

	if cfg.TursoEnabled && cfg.TursoDatabase != "" && cfg.TursoToken != "" {
		connStr := cfg.TursoDatabase + "?authToken=" + cfg.TursoToken
		conn, err = sql.Open("libsql", connStr)
		if err != nil {
			return nil, fmt.Errorf("turso connection failed: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("turso ping failed: %w", err)
		}
		useTurso = true
	} else {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		conn, err = sql.Open("sqlite3", cfg.SQLitePath+"?_foreign_keys=on&_busy_timeout=5000")
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("SQLite database ping failed: %w", err)
		}
	}

	conn.SetMaxOpenConns(config.DBMaxOpenConns)
	conn.SetMaxIdleConns(config.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)

	return &Database{
		Conn:     conn,
		UseTurso: useTurso,
	}, nil
}

func (db *Database) Close() error {
	if db.Conn != nil {
		return db.Conn.Close()
	}
	return nil
}

func (db *Database) GetConnectionInfo() string {
	if db.UseTurso {
		return "Turso"
	}
	return "SQLite"
}

// Stats reports pool statistics for the status endpoint.
func (db *Database) Stats() map[string]any {
	stats := db.Conn.Stats()
	return map[string]any{
		"backend":      db.GetConnectionInfo(),
		"healthy":      db.Conn.Ping() == nil,
		"maxOpen":      stats.MaxOpenConnections,
		"open":         stats.OpenConnections,
		"inUse":        stats.InUse,
		"idle":         stats.Idle,
		"waitCount":    stats.WaitCount,
		"waitDuration": stats.WaitDuration.String(),
	}
}
