package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marklink/internal/memory"
	"marklink/internal/workspace"
)

var markdownExts = []string{".md", ".markdown"}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFSListChildren(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "# A\n")
	writeFile(t, filepath.Join(root, "b.md"), "# B\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "not markdown")
	writeFile(t, filepath.Join(root, ".hidden.md"), "hidden")
	writeFile(t, filepath.Join(root, "sub", "c.md"), "# C\n")
	writeFile(t, filepath.Join(root, "node_modules", "d.md"), "# D\n")

	fs := workspace.NewFS(root, markdownExts, []string{"node_modules"}, nil)

	entries, err := fs.ListChildren(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []workspace.Entry{
		{Name: "a.md"},
		{Name: "b.md"},
		{Name: "sub", IsDir: true},
	}, entries)
}

func TestFSListChildrenMissingDir(t *testing.T) {
	fs := workspace.NewFS(t.TempDir(), markdownExts, nil, nil)
	entries, err := fs.ListChildren(context.Background(), "/no/such/dir")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFSResolveDocument(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	writeFile(t, path, "# From disk\n")

	fs := workspace.NewFS(root, markdownExts, nil, nil)
	doc, ok := fs.ResolveDocument(context.Background(), path)
	require.True(t, ok)
	assert.Equal(t, "# From disk\n", doc.Content())

	_, ok = fs.ResolveDocument(context.Background(), filepath.Join(root, "missing.md"))
	assert.False(t, ok)
}

func TestFSResolveDocumentPrefersOverlay(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	writeFile(t, path, "# From disk\n")

	docs := memory.NewManager()
	docs.Open("file://"+path, "# Unsaved edit\n")

	fs := workspace.NewFS(root, markdownExts, nil, docs)
	doc, ok := fs.ResolveDocument(context.Background(), path)
	require.True(t, ok)
	assert.Equal(t, "# Unsaved edit\n", doc.Content())
}

func TestFSCancellation(t *testing.T) {
	root := t.TempDir()
	fs := workspace.NewFS(root, markdownExts, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.ListChildren(ctx, root)
	assert.Error(t, err)
	_, ok := fs.ResolveDocument(ctx, filepath.Join(root, "a.md"))
	assert.False(t, ok)
}

func TestInMemoryListChildren(t *testing.T) {
	ws := workspace.NewInMemory("/ws").
		Add("a.md", "# A\n").
		Add("sub/c.md", "# C\n").
		AddDir("empty")

	entries, err := ws.ListChildren(context.Background(), "/ws")
	require.NoError(t, err)
	assert.Equal(t, []workspace.Entry{
		{Name: "a.md"},
		{Name: "empty", IsDir: true},
		{Name: "sub", IsDir: true},
	}, entries)

	entries, err = ws.ListChildren(context.Background(), "/ws/sub")
	require.NoError(t, err)
	assert.Equal(t, []workspace.Entry{{Name: "c.md"}}, entries)
}

func TestInMemoryResolveDocument(t *testing.T) {
	ws := workspace.NewInMemory("/ws").Add("a.md", "# A\n")

	doc, ok := ws.ResolveDocument(context.Background(), "/ws/a.md")
	require.True(t, ok)
	assert.Equal(t, "# A\n", doc.Content())
	assert.Equal(t, "file:///ws/a.md", doc.URI())

	_, ok = ws.ResolveDocument(context.Background(), "/ws/missing.md")
	assert.False(t, ok)
}
