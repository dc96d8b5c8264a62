package index

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 1

func initSchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if version == schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := createTables(tx); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}

	return tx.Commit()
}

func createTables(tx *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS files (
            path TEXT PRIMARY KEY,
            checksum BLOB NOT NULL,
            last_modified INTEGER NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS headings (
            path TEXT NOT NULL,
            seq INTEGER NOT NULL,
            level INTEGER NOT NULL,
            text TEXT NOT NULL,
            slug TEXT NOT NULL,
            start_line INTEGER NOT NULL,
            end_line INTEGER NOT NULL,
            end_character INTEGER NOT NULL,
            FOREIGN KEY (path) REFERENCES files(path) ON DELETE CASCADE,
            PRIMARY KEY (path, seq)
        )`,
		`CREATE TABLE IF NOT EXISTS definitions (
            path TEXT NOT NULL,
            seq INTEGER NOT NULL,
            label TEXT NOT NULL,
            destination TEXT NOT NULL,
            line INTEGER NOT NULL,
            dest_start INTEGER NOT NULL,
            dest_end INTEGER NOT NULL,
            line_length INTEGER NOT NULL,
            FOREIGN KEY (path) REFERENCES files(path) ON DELETE CASCADE,
            PRIMARY KEY (path, seq)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_headings_slug
            ON headings(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_definitions_label
            ON definitions(label)`,
	}

	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %q: %w", query, err)
		}
	}

	return nil
}
