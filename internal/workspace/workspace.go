// Package workspace provides a read-only view of the files reachable from a
// workspace root, with open editor documents overlaid on top of the disk
// state.
package workspace

import (
	"context"

	"marklink/internal/document"
)

// Entry is one child of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// Workspace is the capability the completion engine resolves paths against.
// Implementations must be safe for concurrent readers; results may be stale
// with respect to the disk, which is acceptable.
type Workspace interface {
	// Root returns the absolute workspace root directory.
	Root() string

	// ListChildren lists the immediate children of a directory. A directory
	// that does not exist yields an empty listing, not an error.
	ListChildren(ctx context.Context, dir string) ([]Entry, error)

	// ResolveDocument loads the document at a filesystem path, preferring an
	// open in-memory snapshot over the on-disk content.
	ResolveDocument(ctx context.Context, path string) (*document.Document, bool)
}
