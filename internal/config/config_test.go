package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marklink/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Completion.Enabled)
	assert.Contains(t, cfg.Extensions, ".md")
	assert.Contains(t, cfg.IgnoreDirs, "node_modules")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
root: ./notes
store_path: /tmp/marklink.db
extensions: [".md"]
ignore_dirs: ["build"]
completion:
  enabled: false
messages:
  codeAction.removeUnusedDefinition.title: "Drop it"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Root))
	assert.Equal(t, "/tmp/marklink.db", cfg.StorePath)
	assert.Equal(t, []string{".md"}, cfg.Extensions)
	assert.Equal(t, []string{"build"}, cfg.IgnoreDirs)
	assert.False(t, cfg.Completion.Enabled)
	assert.Equal(t, "Drop it", cfg.Messages["codeAction.removeUnusedDefinition.title"])
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
