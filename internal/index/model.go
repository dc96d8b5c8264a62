// Package index persists per-file heading and link-definition data in
// sqlite, so cross-file queries don't re-parse unchanged documents.
package index

import "errors"

var (
	ErrNotFound           = errors.New("record does not exist in index")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// FileRecord tracks one indexed file. Checksum decides staleness: a file
// whose current content hashes differently is re-parsed on next use.
type FileRecord struct {
	Path         string
	Checksum     []byte
	LastModified int64
}

// HeadingRecord is one stored heading row.
type HeadingRecord struct {
	Level        int
	Text         string
	Slug         string
	StartLine    uint32
	EndLine      uint32
	EndCharacter uint32
}

// DefinitionRecord is one stored link-definition row.
type DefinitionRecord struct {
	Label       string
	Destination string
	Line        uint32
	DestStart   uint32
	DestEnd     uint32
	LineLength  uint32
}
