package index

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/commonlog"

	"marklink/internal/document"
	"marklink/internal/markdown"
)

var indexLog = commonlog.GetLogger("marklink.index")

// Scanner walks the workspace root and brings the store up to date with the
// files on disk.
type Scanner struct {
	store      *Store
	root       string
	extensions []string
	ignoreDirs map[string]struct{}
}

// ScanStats summarizes one scan pass.
type ScanStats struct {
	Scanned int // markdown files visited
	Updated int // files (re)parsed because their checksum changed
	Removed int // index rows dropped for files no longer on disk
}

func NewScanner(store *Store, root string, extensions []string, ignoreDirs []string) *Scanner {
	ignored := make(map[string]struct{}, len(ignoreDirs))
	for _, dir := range ignoreDirs {
		ignored[dir] = struct{}{}
	}
	return &Scanner{
		store:      store,
		root:       filepath.Clean(root),
		extensions: extensions,
		ignoreDirs: ignored,
	}
}

// Scan refreshes stale files and prunes rows for deleted ones.
func (s *Scanner) Scan(ctx context.Context) (ScanStats, error) {
	var stats ScanStats
	onDisk := make(map[string]struct{})

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			name := d.Name()
			if path != s.root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, ignored := s.ignoreDirs[name]; ignored {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.hasKnownExtension(path) {
			return nil
		}

		onDisk[path] = struct{}{}
		stats.Scanned++

		updated, err := s.refresh(path)
		if err != nil {
			indexLog.Errorf("failed to index %s: %s", path, err.Error())
			return nil
		}
		if updated {
			stats.Updated++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	records, err := s.store.GetAllFiles()
	if err != nil {
		return stats, fmt.Errorf("failed to list indexed files: %w", err)
	}
	for _, record := range records {
		if _, exists := onDisk[record.Path]; exists {
			continue
		}
		if err := s.store.DeleteFile(record.Path); err != nil && err != ErrNotFound {
			indexLog.Errorf("failed to prune %s: %s", record.Path, err.Error())
			continue
		}
		stats.Removed++
	}

	return stats, nil
}

// refresh re-parses one file if its checksum no longer matches the store.
func (s *Scanner) refresh(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}

	sum := Checksum(content)
	if record, err := s.store.GetFile(path); err == nil && bytes.Equal(record.Checksum, sum) {
		return false, nil
	}

	doc := document.New(document.URIFromPath(path), string(content))
	headings := markdown.Headings(doc)
	definitions := markdown.Definitions(doc)

	if err := s.store.ReplaceFile(&FileRecord{
		Path:         path,
		Checksum:     sum,
		LastModified: time.Now().Unix(),
	}, headingRecords(headings), definitionRecords(definitions)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Scanner) hasKnownExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range s.extensions {
		if ext == known {
			return true
		}
	}
	return false
}
