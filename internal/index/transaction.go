package index

import (
	"database/sql"
	"fmt"
)

// Tx is the unit of work the store runs inside one sqlite transaction.
type Tx interface {
	ReplaceFile(file *FileRecord, headings []HeadingRecord, definitions []DefinitionRecord) error
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) ReplaceFile(file *FileRecord, headings []HeadingRecord, definitions []DefinitionRecord) error {
	if _, err := t.tx.Exec(`
        INSERT INTO files (path, checksum, last_modified)
        VALUES (?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            checksum = excluded.checksum,
            last_modified = excluded.last_modified
    `, file.Path, file.Checksum, file.LastModified); err != nil {
		return fmt.Errorf("failed to upsert file: %w", err)
	}

	if _, err := t.tx.Exec("DELETE FROM headings WHERE path = ?", file.Path); err != nil {
		return fmt.Errorf("failed to delete existing headings: %w", err)
	}
	if _, err := t.tx.Exec("DELETE FROM definitions WHERE path = ?", file.Path); err != nil {
		return fmt.Errorf("failed to delete existing definitions: %w", err)
	}

	if len(headings) > 0 {
		stmt, err := t.tx.Prepare(`
            INSERT INTO headings (path, seq, level, text, slug, start_line, end_line, end_character)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        `)
		if err != nil {
			return fmt.Errorf("failed to prepare heading insert statement: %w", err)
		}
		defer stmt.Close()

		for i, h := range headings {
			if _, err := stmt.Exec(
				file.Path, i, h.Level, h.Text, h.Slug,
				h.StartLine, h.EndLine, h.EndCharacter,
			); err != nil {
				return fmt.Errorf("failed to insert heading: %w", err)
			}
		}
	}

	if len(definitions) > 0 {
		stmt, err := t.tx.Prepare(`
            INSERT INTO definitions (path, seq, label, destination, line, dest_start, dest_end, line_length)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        `)
		if err != nil {
			return fmt.Errorf("failed to prepare definition insert statement: %w", err)
		}
		defer stmt.Close()

		for i, d := range definitions {
			if _, err := stmt.Exec(
				file.Path, i, d.Label, d.Destination, d.Line,
				d.DestStart, d.DestEnd, d.LineLength,
			); err != nil {
				return fmt.Errorf("failed to insert definition: %w", err)
			}
		}
	}

	return nil
}
