package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the sqlite-backed index.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the index database at path. Use ":memory:" for
// an ephemeral index.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`
        PRAGMA foreign_keys = ON;
        PRAGMA journal_mode = WAL;
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set PRAGMA: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) WithTx(fn func(Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(&sqliteTx{tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}

	return nil
}

func (s *Store) GetFile(path string) (*FileRecord, error) {
	var record FileRecord
	err := s.db.QueryRow(
		"SELECT path, checksum, last_modified FROM files WHERE path = ?",
		path,
	).Scan(&record.Path, &record.Checksum, &record.LastModified)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query file: %w", err)
	}

	return &record, nil
}

func (s *Store) GetAllFiles() ([]FileRecord, error) {
	rows, err := s.db.Query("SELECT path, checksum, last_modified FROM files")
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var record FileRecord
		if err := rows.Scan(&record.Path, &record.Checksum, &record.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file records: %w", err)
	}

	return records, nil
}

func (s *Store) GetHeadings(path string) ([]HeadingRecord, error) {
	rows, err := s.db.Query(`
        SELECT level, text, slug, start_line, end_line, end_character
        FROM headings
        WHERE path = ?
        ORDER BY seq
    `, path)
	if err != nil {
		return nil, fmt.Errorf("failed to query headings: %w", err)
	}
	defer rows.Close()

	var records []HeadingRecord
	for rows.Next() {
		var record HeadingRecord
		if err := rows.Scan(
			&record.Level, &record.Text, &record.Slug,
			&record.StartLine, &record.EndLine, &record.EndCharacter,
		); err != nil {
			return nil, fmt.Errorf("failed to scan heading record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating heading records: %w", err)
	}

	return records, nil
}

func (s *Store) GetDefinitions(path string) ([]DefinitionRecord, error) {
	rows, err := s.db.Query(`
        SELECT label, destination, line, dest_start, dest_end, line_length
        FROM definitions
        WHERE path = ?
        ORDER BY seq
    `, path)
	if err != nil {
		return nil, fmt.Errorf("failed to query definitions: %w", err)
	}
	defer rows.Close()

	var records []DefinitionRecord
	for rows.Next() {
		var record DefinitionRecord
		if err := rows.Scan(
			&record.Label, &record.Destination, &record.Line,
			&record.DestStart, &record.DestEnd, &record.LineLength,
		); err != nil {
			return nil, fmt.Errorf("failed to scan definition record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating definition records: %w", err)
	}

	return records, nil
}

// ReplaceFile atomically replaces a file's record and all its derived rows.
func (s *Store) ReplaceFile(file *FileRecord, headings []HeadingRecord, definitions []DefinitionRecord) error {
	return s.WithTx(func(tx Tx) error {
		return tx.ReplaceFile(file, headings, definitions)
	})
}

func (s *Store) DeleteFile(path string) error {
	result, err := s.db.Exec("DELETE FROM files WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM files"); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
