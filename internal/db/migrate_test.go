package db

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFS_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(MigrationFS(""), ".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"00001_users.sql", "00002_api_keys.sql", "00003_characters.sql"}, names)

	for _, name := range names {
		data, err := fs.ReadFile(MigrationFS(""), name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "-- +goose Up"), name)
		assert.True(t, strings.Contains(string(data), "-- +goose Down"), name)
	}
}

func TestMigrationFS_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "00001_init.sql"), []byte("-- +goose Up\n"), 0o644))

	data, err := fs.ReadFile(MigrationFS(dir), "00001_init.sql")
	require.NoError(t, err)
	assert.Equal(t, "-- +goose Up\n", string(data))
}

func TestRunMigrations_BadURL(t *testing.T) {
	_, err := RunMigrations(t.Context(), "postgres://%zz", "")
	assert.Error(t, err)
}
