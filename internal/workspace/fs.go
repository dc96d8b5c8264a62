package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"marklink/internal/document"
)

// Overlay exposes open editor documents so disk reads can be shadowed by the
// client's unsaved state. *memory.Manager satisfies it.
type Overlay interface {
	Get(uri string) (*document.Document, bool)
}

// FS is a Workspace over the OS filesystem.
type FS struct {
	root       string
	extensions []string
	ignoreDirs map[string]struct{}
	overlay    Overlay
}

// NewFS builds a filesystem workspace rooted at root. Listings only show
// directories and files carrying one of extensions; ignoreDirs names
// directories hidden from listings. overlay may be nil.
func NewFS(root string, extensions []string, ignoreDirs []string, overlay Overlay) *FS {
	ignored := make(map[string]struct{}, len(ignoreDirs))
	for _, dir := range ignoreDirs {
		ignored[dir] = struct{}{}
	}
	return &FS{
		root:       filepath.Clean(root),
		extensions: extensions,
		ignoreDirs: ignored,
		overlay:    overlay,
	}
}

func (fs *FS) Root() string { return fs.root }

func (fs *FS) ListChildren(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		// Missing or unreadable directories contribute no candidates.
		return nil, nil
	}

	var entries []Entry
	for _, e := range dirEntries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			if _, ignored := fs.ignoreDirs[name]; ignored {
				continue
			}
			entries = append(entries, Entry{Name: name, IsDir: true})
			continue
		}
		if fs.hasKnownExtension(name) {
			entries = append(entries, Entry{Name: name, IsDir: false})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (fs *FS) ResolveDocument(ctx context.Context, path string) (*document.Document, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	path = filepath.Clean(path)
	uri := document.URIFromPath(path)
	if fs.overlay != nil {
		if doc, ok := fs.overlay.Get(uri); ok {
			return doc, true
		}
	}

	if !fs.hasKnownExtension(path) {
		return nil, false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return document.New(uri, string(content)), true
}

func (fs *FS) hasKnownExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range fs.extensions {
		if ext == known {
			return true
		}
	}
	return false
}
