package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/adarsha-ai/backend/internal/infrastructure/config"
)

// OpenDB opens the metadata database at the configured path, creating
// the parent directory if needed.
func OpenDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// migrate creates the schema. Safe to run on every startup.
func migrate(db *sql.DB) error {
	createChunksSQL := `
	CREATE TABLE IF NOT EXISTS index_records (
		chunk_id TEXT PRIMARY KEY,
		section TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		char_count INTEGER NOT NULL,
		word_count INTEGER NOT NULL,
		indexed_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createChunksSQL); err != nil {
		return fmt.Errorf("failed to create index_records table: %w", err)
	}

	createSourceSQL := `
	CREATE TABLE IF NOT EXISTS source_files (
		path TEXT PRIMARY KEY,
		mtime INTEGER NOT NULL,
		content_hash TEXT NOT NULL,
		chunk_count INTEGER NOT NULL,
		indexed_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createSourceSQL); err != nil {
		return fmt.Errorf("failed to create source_files table: %w", err)
	}

	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_index_records_section ON index_records(section);`

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}
