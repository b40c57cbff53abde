package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pseudomuto/schemadelta/pkg/config"
	"github.com/pseudomuto/schemadelta/pkg/consts"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const (
	currentSQL = `
CREATE TABLE users (id INT PRIMARY KEY, email VARCHAR(100));
CREATE SEQUENCE order_seq;
SELECT setval('order_seq', 100);`

	nextSQL = `
CREATE TABLE users (id INT PRIMARY KEY, email VARCHAR(255), age INT);
CREATE SEQUENCE order_seq;
SELECT setval('order_seq', 150);`
)

func writeSchemas(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
		require.NoError(t, os.WriteFile(path, []byte(content), consts.ModeFile))
	}
	return dir
}

func runCommand(t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "test",
		Flags:  command.Flags,
		Action: command.Action,
		Writer: &buf,
	}

	err := app.Run(context.Background(), append([]string{"test"}, args...))
	return buf.String(), err
}

func TestDiffCommand_RequiresPairs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments"},
		{name: "single path", args: []string{"current.sql"}},
		{name: "odd number of paths", args: []string{"a.sql", "b.sql", "c.sql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, diffCmd(config.Default()), tt.args...)
			require.ErrorContains(t, err, "expected pairs of <original> <target> paths")
		})
	}
}

func TestDiffCommand(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"current.sql": currentSQL,
		"next.sql":    nextSQL,
	})
	current := filepath.Join(dir, "current.sql")
	next := filepath.Join(dir, "next.sql")

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "prints the difference tree",
			args:     []string{current, next},
			contains: []string{`Column "age" (Added)`, "size: (100 -> 255)", "lastValue: (100 -> 150)"},
			excludes: []string{"Column: 1 added"},
		},
		{
			name:     "appends a summary",
			args:     []string{"--summary", current, next},
			contains: []string{"Column: 1 added, 1 modified", "properties: lastValue=1, size=1"},
		},
		{
			name:     "reverses the comparison",
			args:     []string{"--reverse", current, next},
			contains: []string{`Column "age" (Deleted)`, "lastValue: (150 -> 100)"},
		},
		{
			name:     "ignores properties",
			args:     []string{"--ignore", "size", "-i", "lastValue", current, next},
			contains: []string{`Column "age" (Added)`},
			excludes: []string{"size:", "lastValue", "Sequence"},
		},
		{
			name:     "reports identical schemas",
			args:     []string{current, current},
			contains: []string{"no changes"},
			excludes: []string{"Catalog"},
		},
		{
			name:     "labels multiple pairs",
			args:     []string{current, next, next, next},
			contains: []string{"--- " + current + "\n+++ " + next, "--- " + next + "\n+++ " + next + "\nno changes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, diffCmd(config.Default()), tt.args...)
			require.NoError(t, err)

			for _, s := range tt.contains {
				require.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				require.NotContains(t, out, s)
			}
		})
	}
}

func TestDiffCommand_UsesConfig(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"current.sql": currentSQL,
		"next.sql":    nextSQL,
	})

	cfg, err := config.LoadConfig(strings.NewReader("diff:\n  ignore: [lastValue]\nformat:\n  indent: 4"))
	require.NoError(t, err)

	out, err := runCommand(t, diffCmd(cfg), "--ignore", "size", filepath.Join(dir, "current.sql"), filepath.Join(dir, "next.sql"))
	require.NoError(t, err)
	require.Contains(t, out, "\n    ")
	require.NotContains(t, out, "lastValue")
	require.NotContains(t, out, "size:")

	// flags never leak into the shared configuration
	require.Equal(t, []string{"lastValue"}, cfg.Diff.Ignore)
}

func TestDiffCommand_LoadErrors(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"current.sql": currentSQL,
		"broken.sql":  "CREATE TABLE (;",
	})

	_, err := runCommand(t, diffCmd(config.Default()), filepath.Join(dir, "current.sql"), filepath.Join(dir, "broken.sql"))
	require.ErrorContains(t, err, "failed to load target schema")
	require.ErrorContains(t, err, "broken.sql")
}
