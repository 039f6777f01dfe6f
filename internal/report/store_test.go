package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	original := sampleReport()

	path, err := store.Save(original)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "drift-production-"))

	loaded, err := LoadStructured(path)
	require.NoError(t, err)

	assert.Equal(t, original.Environment, loaded.Environment)
	assert.Equal(t, original.Severity, loaded.Severity)
	assert.Equal(t, original.Summary, loaded.Summary)
	assert.Equal(t, original.ResourceChanges, loaded.ResourceChanges)
	assert.Equal(t, original.Timestamp, loaded.Timestamp)
}

func TestStore_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	_, err := store.Save(sampleReport())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.Contains(entries[0].Name(), ".tmp."))
}

func TestLoadStructured_RejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := LoadStructured(path)
	assert.Error(t, err)
}

func TestLoadStructured_RejectsInvalidReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"environment": ""}`), 0o644))

	_, err := LoadStructured(path)
	assert.Error(t, err)
}

func TestLoadStructured_MissingFile(t *testing.T) {
	_, err := LoadStructured(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
