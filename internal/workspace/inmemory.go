package workspace

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"marklink/internal/document"
)

// InMemory implements Workspace over a map of paths, for tests and for hosts
// that supply their own virtual filesystem.
type InMemory struct {
	root  string
	mu    sync.RWMutex
	files map[string]string   // absolute path -> content
	dirs  map[string]struct{} // absolute path of every known directory
}

func NewInMemory(root string) *InMemory {
	root = filepath.Clean(root)
	return &InMemory{
		root:  root,
		files: make(map[string]string),
		dirs:  map[string]struct{}{root: {}},
	}
}

// Add registers a file. Relative paths are joined onto the root. Parent
// directories spring into existence.
func (ws *InMemory) Add(path string, content string) *InMemory {
	if !filepath.IsAbs(path) {
		path = filepath.Join(ws.root, path)
	}
	path = filepath.Clean(path)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.files[path] = content
	for dir := filepath.Dir(path); strings.HasPrefix(dir, ws.root); dir = filepath.Dir(dir) {
		ws.dirs[dir] = struct{}{}
		if dir == ws.root {
			break
		}
	}
	return ws
}

// AddDir registers an empty directory.
func (ws *InMemory) AddDir(path string) *InMemory {
	if !filepath.IsAbs(path) {
		path = filepath.Join(ws.root, path)
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.dirs[filepath.Clean(path)] = struct{}{}
	return ws
}

func (ws *InMemory) Root() string { return ws.root }

func (ws *InMemory) ListChildren(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir = filepath.Clean(dir)

	ws.mu.RLock()
	defer ws.mu.RUnlock()

	seen := make(map[string]bool)
	var entries []Entry
	appendChild := func(path string, isDir bool) {
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			return
		}
		name := strings.SplitN(rel, string(filepath.Separator), 2)[0]
		childIsDir := isDir || strings.Contains(rel, string(filepath.Separator))
		if !seen[name] {
			seen[name] = true
			entries = append(entries, Entry{Name: name, IsDir: childIsDir})
		}
	}
	for path := range ws.files {
		appendChild(path, false)
	}
	for path := range ws.dirs {
		appendChild(path, true)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (ws *InMemory) ResolveDocument(ctx context.Context, path string) (*document.Document, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(ws.root, path)
	}

	ws.mu.RLock()
	defer ws.mu.RUnlock()
	content, ok := ws.files[filepath.Clean(path)]
	if !ok {
		return nil, false
	}
	return document.New(document.URIFromPath(path), content), true
}
