package config_test

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/pseudomuto/schemadelta/pkg/config"
	"github.com/pseudomuto/schemadelta/pkg/consts"
	"github.com/pseudomuto/schemadelta/pkg/diff"
	"github.com/pseudomuto/schemadelta/pkg/model"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/schemadelta.yaml
var testConfigYAML string

func TestLoadConfig(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader(testConfigYAML))
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("error", func(t *testing.T) {
		// Invalid YAML
		config, err := LoadConfig(strings.NewReader("invalid: yaml: ["))
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to unmarshal config")

		// Empty input
		config, err = LoadConfig(strings.NewReader(""))
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to unmarshal config")

		// Valid YAML with no known fields
		config, err = LoadConfig(strings.NewReader("other_key: value"))
		require.NoError(t, err)
		require.Equal(t, Default(), config)
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schemadelta.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), consts.ModeFile))

		config, err := LoadConfigFile(path)
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("error", func(t *testing.T) {
		config, err := LoadConfigFile("nonexistent.yaml")
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to open file")

		// Directory instead of file
		config, err = LoadConfigFile(t.TempDir())
		require.Error(t, err)
		require.Nil(t, config)
		require.True(t, strings.Contains(err.Error(), "failed to open file") ||
			strings.Contains(err.Error(), "failed to unmarshal config"))
	})
}

// validateTestConfig validates that a config contains the expected test data
func validateTestConfig(t *testing.T, config *Config) {
	t.Helper()
	require.NotNil(t, config)
	require.Equal(t, []string{"createdAt", "lastAlteredAt"}, config.Diff.Ignore)
	require.False(t, *config.Diff.ColumnAlignment)
	require.Equal(t, 8, config.Diff.Concurrency)
	require.Equal(t, 4, config.Format.Indent)
	require.True(t, config.Format.Color)
	require.True(t, config.Format.ShowUnchanged)
	require.Equal(t, []string{"added", "Modified"}, config.Format.States)
}

func TestLoadConfig_Defaults(t *testing.T) {
	tests := []struct {
		name            string
		yaml            string
		indent          int
		concurrency     int
		columnAlignment bool
	}{
		{
			name:            "sets defaults when sections missing",
			yaml:            "format: {}",
			indent:          2,
			concurrency:     consts.DefaultConcurrency,
			columnAlignment: true,
		},
		{
			name:            "sets defaults when zero",
			yaml:            "diff:\n  concurrency: 0\nformat:\n  indent: 0",
			indent:          2,
			concurrency:     consts.DefaultConcurrency,
			columnAlignment: true,
		},
		{
			name:            "keeps configured values when set",
			yaml:            "diff:\n  concurrency: 1\n  column_alignment: false\nformat:\n  indent: 3",
			indent:          3,
			concurrency:     1,
			columnAlignment: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(strings.NewReader(tt.yaml))
			require.NoError(t, err)
			require.Equal(t, tt.indent, config.Format.Indent)
			require.Equal(t, tt.concurrency, config.Diff.Concurrency)
			require.Equal(t, tt.columnAlignment, *config.Diff.ColumnAlignment)
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "negative indent", yaml: "format:\n  indent: -1"},
		{name: "negative concurrency", yaml: "diff:\n  concurrency: -2"},
		{name: "unknown state", yaml: "format:\n  states: [renamed]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(strings.NewReader(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.Nil(t, config)
		})
	}
}

func TestConfig_Prune(t *testing.T) {
	table := func(created time.Time, remarks string) *model.Table {
		tbl := model.NewTable("users")
		tbl.CreatedAt = created
		tbl.Remarks = remarks
		return tbl
	}

	before := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	after := before.Add(time.Hour)

	config, err := LoadConfig(strings.NewReader("diff:\n  ignore: [CreatedAt]"))
	require.NoError(t, err)

	t.Run("only ignored changes", func(t *testing.T) {
		root := diff.Objects(table(before, ""), table(after, ""))
		require.Equal(t, diff.Modified, root.State())

		config.Prune(root)
		require.Equal(t, diff.Unchanged, root.State())
	})

	t.Run("other changes survive", func(t *testing.T) {
		root := diff.Objects(table(before, "a"), table(after, "b"))

		config.Prune(root)
		require.Equal(t, diff.Modified, root.State())
		require.Nil(t, root.Property("createdAt"))
		require.NotNil(t, root.Property("remarks"))
	})

	t.Run("objects named like ignored properties survive", func(t *testing.T) {
		original := table(before, "")
		target := table(before, "")
		target.Columns.Add(&model.Column{Naming: model.Naming{Name: "createdat"}, DataType: "TIMESTAMP"})

		root := diff.Objects(original, target)
		config.Prune(root)
		require.Equal(t, diff.Modified, root.State())

		columns, ok := root.Property("columns").(*diff.CollectionDiff)
		require.True(t, ok)
		require.Len(t, columns.Elements(), 1)
		require.Equal(t, diff.Added, columns.Elements()[0].State())
	})

	t.Run("nothing to ignore", func(t *testing.T) {
		root := diff.Objects(table(before, ""), table(after, ""))

		Default().Prune(root)
		require.NotNil(t, root.Property("createdAt"))
	})
}

func TestConfig_GetFormatter(t *testing.T) {
	config, err := LoadConfig(strings.NewReader("format:\n  indent: 4\n  states: [added]"))
	require.NoError(t, err)

	original := model.NewTable("users")
	target := model.NewTable("users")
	target.Columns.Add(&model.Column{Naming: model.Naming{Name: "email"}, DataType: "TEXT", Nullable: true})
	target.Remarks = "people"

	out := config.GetFormatter().Node(diff.Objects(original, target))
	require.Contains(t, out, "\n    columns (Modified)\n        Column \"email\" (Added)")
	require.NotContains(t, out, "remarks")
}

func TestConfig_DiffOptions(t *testing.T) {
	original := model.NewTable("users")
	original.Columns.Add(
		&model.Column{Naming: model.Naming{Name: "id"}, DataType: "INT"},
		&model.Column{Naming: model.Naming{Name: "email"}, DataType: "TEXT"},
	)
	target := model.NewTable("users")
	target.Columns.Add(
		&model.Column{Naming: model.Naming{Name: "email"}, DataType: "TEXT"},
		&model.Column{Naming: model.Naming{Name: "id"}, DataType: "INT"},
	)

	disabled := false
	tests := []struct {
		name     string
		config   *Config
		modified int
	}{
		{name: "defaults", config: Default()},
		{name: "zero value aligns columns", config: &Config{}},
		{
			name:     "alignment disabled",
			config:   &Config{Diff: Diff{ColumnAlignment: &disabled}},
			modified: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.config.DiffOptions()
			require.Len(t, opts, 1)

			counts := diff.Count(diff.Objects(original, target, opts...))
			require.Zero(t, counts["Column"][diff.Added])
			require.Zero(t, counts["Column"][diff.Deleted])
			require.Equal(t, tt.modified, counts["Column"][diff.Modified])
		})
	}
}
