package storage

import (
	"database/sql"
	"fmt"

	"github.com/adarsha-ai/backend/internal/domain/knowledge"
)

var _ knowledge.IndexRepository = (*IndexRepository)(nil)

// IndexRepository is the sqlite-backed chunk index metadata store.
type IndexRepository struct {
	db *sql.DB
}

// NewIndexRepository creates the repository.
func NewIndexRepository(db *sql.DB) knowledge.IndexRepository {
	return &IndexRepository{
		db: db,
	}
}

// SaveRecord upserts one index record.
func (r *IndexRepository) SaveRecord(record *knowledge.IndexRecord) error {
	query := `
		INSERT OR REPLACE INTO index_records (
			chunk_id, section, content_hash, char_count, word_count, indexed_at
		) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(
		query,
		record.ChunkID,
		record.Section,
		record.ContentHash,
		record.CharCount,
		record.WordCount,
		record.IndexedAt,
	)

	return err
}

// SaveRecords upserts a batch of records in a single transaction.
func (r *IndexRepository) SaveRecords(records []*knowledge.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO index_records (
			chunk_id, section, content_hash, char_count, word_count, indexed_at
		) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.Exec(
			record.ChunkID,
			record.Section,
			record.ContentHash,
			record.CharCount,
			record.WordCount,
			record.IndexedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save record %s: %w", record.ChunkID, err)
		}
	}

	return tx.Commit()
}

// CountRecords returns the number of indexed chunks.
func (r *IndexRepository) CountRecords() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM index_records`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetSourceFile returns the tracked source file, or nil when unknown.
func (r *IndexRepository) GetSourceFile(path string) (*knowledge.SourceFile, error) {
	query := `
		SELECT path, mtime, content_hash, chunk_count, indexed_at
		FROM source_files
		WHERE path = ?`

	var file knowledge.SourceFile
	err := r.db.QueryRow(query, path).Scan(
		&file.Path,
		&file.Mtime,
		&file.ContentHash,
		&file.ChunkCount,
		&file.IndexedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &file, nil
}

// SaveSourceFile upserts the source file record.
func (r *IndexRepository) SaveSourceFile(file *knowledge.SourceFile) error {
	query := `
		INSERT OR REPLACE INTO source_files (
			path, mtime, content_hash, chunk_count, indexed_at
		) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Exec(
		query,
		file.Path,
		file.Mtime,
		file.ContentHash,
		file.ChunkCount,
		file.IndexedAt,
	)

	return err
}

// ClearAll drops every record before a full re-index.
func (r *IndexRepository) ClearAll() error {
	if _, err := r.db.Exec(`DELETE FROM index_records`); err != nil {
		return fmt.Errorf("failed to clear index records: %w", err)
	}
	if _, err := r.db.Exec(`DELETE FROM source_files`); err != nil {
		return fmt.Errorf("failed to clear source files: %w", err)
	}
	return nil
}
