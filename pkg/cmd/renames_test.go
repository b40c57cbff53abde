package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenamesCommand(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"current.sql": "CREATE TABLE logs (id INT, message TEXT);\nCREATE TABLE users (id INT);",
		"next.sql":    "CREATE TABLE audit_logs (id INT, message TEXT);\nCREATE TABLE users (id INT, name TEXT);",
	})
	current := filepath.Join(dir, "current.sql")
	next := filepath.Join(dir, "next.sql")

	t.Run("lists renamed objects", func(t *testing.T) {
		out, err := runCommand(t, renamesCmd(), current, next)
		require.NoError(t, err)
		require.Equal(t, "Table \"logs\" -> \"audit_logs\" (schema \"public\")\n", out)
	})

	t.Run("reports when nothing was renamed", func(t *testing.T) {
		out, err := runCommand(t, renamesCmd(), current, current)
		require.NoError(t, err)
		require.Equal(t, "no renames\n", out)
	})

	t.Run("requires two paths", func(t *testing.T) {
		_, err := runCommand(t, renamesCmd(), current)
		require.ErrorContains(t, err, "exactly two path arguments are required")
	})

	t.Run("reports load failures", func(t *testing.T) {
		_, err := runCommand(t, renamesCmd(), filepath.Join(dir, "missing.sql"), next)
		require.ErrorContains(t, err, "failed to load original schema")
	})
}
