package schema_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pseudomuto/schemadelta/pkg/consts"
	"github.com/pseudomuto/schemadelta/pkg/schema"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
		require.NoError(t, os.WriteFile(path, []byte(content), consts.ModeFile))
	}
}

func TestCompile(t *testing.T) {
	t.Run("compiles simple schema without includes", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, map[string]string{
			"schema.sql": "CREATE SCHEMA app;\nCREATE TABLE app.users (id INT);",
		})

		var buf bytes.Buffer
		require.NoError(t, schema.Compile(filepath.Join(tmpDir, "schema.sql"), &buf))

		compiled := buf.String()
		require.Contains(t, compiled, "CREATE SCHEMA app")
		require.Contains(t, compiled, "CREATE TABLE app.users")
	})

	t.Run("compiles schema with includes", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, map[string]string{
			"main.sql":          "CREATE SCHEMA app;\n-- schemadelta:include tables/users.sql\n-- schemadelta:include tables/orders.sql",
			"tables/users.sql":  "CREATE TABLE app.users (\n\tid INT,\n\tname TEXT\n);",
			"tables/orders.sql": "CREATE TABLE app.orders (\n\tid INT,\n\tamount NUMERIC(10, 2)\n);",
		})

		var buf bytes.Buffer
		require.NoError(t, schema.Compile(filepath.Join(tmpDir, "main.sql"), &buf))

		compiled := buf.String()
		require.Contains(t, compiled, "CREATE SCHEMA app")
		require.Contains(t, compiled, "CREATE TABLE app.users")
		require.Contains(t, compiled, "amount NUMERIC(10, 2)")
		require.NotContains(t, compiled, consts.IncludeDirective)
		require.Less(t, strings.Index(compiled, "app.users"), strings.Index(compiled, "app.orders"))
	})

	t.Run("handles nested includes", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, map[string]string{
			"main.sql":            "CREATE SCHEMA app;\n-- schemadelta:include shared/common.sql",
			"shared/common.sql":   "CREATE TABLE app.base (id INT);\n-- schemadelta:include ../tables/specific.sql",
			"tables/specific.sql": "CREATE TABLE app.specific (id INT, data TEXT);",
		})

		var buf bytes.Buffer
		require.NoError(t, schema.Compile(filepath.Join(tmpDir, "main.sql"), &buf))

		compiled := buf.String()
		require.Contains(t, compiled, "CREATE TABLE app.base")
		require.Contains(t, compiled, "CREATE TABLE app.specific")
	})

	t.Run("handles absolute include paths", func(t *testing.T) {
		tmpDir := t.TempDir()
		included := filepath.Join(tmpDir, "included.sql")
		writeFiles(t, tmpDir, map[string]string{
			"included.sql": "CREATE TABLE imported (id INT);",
			"main.sql":     "-- schemadelta:include " + included,
		})

		var buf bytes.Buffer
		require.NoError(t, schema.Compile(filepath.Join(tmpDir, "main.sql"), &buf))
		require.Contains(t, buf.String(), "CREATE TABLE imported")
	})

	t.Run("preserves line structure", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, map[string]string{
			"schema.sql": "-- This is a comment\nCREATE SCHEMA app;\n\n-- Another comment\nCREATE TABLE app.users (id INT);",
		})

		var buf bytes.Buffer
		require.NoError(t, schema.Compile(filepath.Join(tmpDir, "schema.sql"), &buf))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 5)
		require.Equal(t, "-- This is a comment", lines[0])
		require.Empty(t, lines[2])
		require.Equal(t, "-- Another comment", lines[3])
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		var buf bytes.Buffer
		err := schema.Compile("non-existent-file.sql", &buf)
		require.ErrorContains(t, err, "failed to read file")
	})

	t.Run("returns error for non-existent include", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, map[string]string{
			"schema.sql": "CREATE SCHEMA app;\n-- schemadelta:include missing.sql",
		})

		var buf bytes.Buffer
		err := schema.Compile(filepath.Join(tmpDir, "schema.sql"), &buf)
		require.ErrorContains(t, err, "failed to read file")
	})

	t.Run("rejects include cycles", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, map[string]string{
			"a.sql": "-- schemadelta:include b.sql",
			"b.sql": "-- schemadelta:include a.sql",
		})

		var buf bytes.Buffer
		err := schema.Compile(filepath.Join(tmpDir, "a.sql"), &buf)
		require.ErrorIs(t, err, schema.ErrIncludeCycle)
	})
}
