package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFindsJSONLRecursively(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "project-a", "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))

	for _, name := range []string{
		filepath.Join(dir, "root.jsonl"),
		filepath.Join(sub, "session.jsonl"),
		filepath.Join(sub, "upper.JSONL"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(sub, "data.json"),
	} {
		require.NoError(t, os.WriteFile(name, []byte("{}\n"), 0644))
	}

	files, err := NewFileScanner(dir).Scan()
	require.NoError(t, err)
	assert.Len(t, files, 3, "matches .jsonl case-insensitively, ignores other extensions")
}

func TestScanMissingDirectory(t *testing.T) {
	// A fresh installation has no data directory yet; that is not an
	// error.
	files, err := NewFileScanner(filepath.Join(t.TempDir(), "does-not-exist")).Scan()
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir()).Scan()
	assert.NoError(t, err)
	assert.Empty(t, files)
}
