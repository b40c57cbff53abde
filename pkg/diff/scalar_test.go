package diff_test

import (
	"testing"

	. "github.com/pseudomuto/schemadelta/pkg/diff"
	"github.com/pseudomuto/schemadelta/pkg/model"
	"github.com/pseudomuto/schemadelta/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestScalarRendering(t *testing.T) {
	tests := []struct {
		name     string
		original model.Object
		target   model.Object
		property string
		expected string
	}{
		{
			name:     "plain value",
			original: col("id", "INT"),
			target:   col("id", "BIGINT"),
			property: "dataType",
			expected: "dataType: (INT -> BIGINT)",
		},
		{
			name:     "pointer default",
			original: &model.Column{Naming: model.Naming{Name: "c"}},
			target:   &model.Column{Naming: model.Naming{Name: "c"}, Default: utils.Ptr("0")},
			property: "defaultValue",
			expected: "defaultValue: (null -> 0)",
		},
		{
			name:     "empty string",
			original: &model.Column{Naming: model.Naming{Name: "c"}, Documented: model.Documented{Remarks: "note"}},
			target:   &model.Column{Naming: model.Naming{Name: "c"}},
			property: "remarks",
			expected: "remarks: (note -> \"\")",
		},
		{
			name:     "string list",
			original: &model.Index{Naming: model.Naming{Name: "i"}, Columns: []string{"a", "b", "c"}},
			target:   &model.Index{Naming: model.Naming{Name: "i"}, Columns: []string{"a", "x", "c", "d"}},
			property: "columns",
			expected: "columns:\n  line 2: (b -> x)\n  line 4: +d",
		},
		{
			name:     "binary length",
			original: &model.Table{Naming: model.Naming{Name: "t"}, Statistics: []byte{1, 2, 3}},
			target:   &model.Table{Naming: model.Naming{Name: "t"}, Statistics: []byte{1, 2, 3, 4}},
			property: "statistics",
			expected: "statistics: (3 bytes -> 4 bytes)",
		},
		{
			name:     "source text",
			original: &model.Routine{Naming: model.Naming{Name: "f"}, Source: []byte("BEGIN\nRETURN 1;\nEND\n")},
			target:   &model.Routine{Naming: model.Naming{Name: "f"}, Source: []byte("BEGIN\nRETURN 2;\nEND\n")},
			property: "source",
			expected: "source:\n  line 2: (RETURN 1; -> RETURN 2;)",
		},
		{
			name:     "multi-line text",
			original: &model.View{Naming: model.Naming{Name: "v"}, Definition: "SELECT a\nFROM t"},
			target:   &model.View{Naming: model.Naming{Name: "v"}, Definition: "SELECT a\nFROM t\nWHERE a > 1"},
			property: "definition",
			expected: "definition:\n  line 3: +WHERE a > 1",
		},
		{
			name:     "attribute map",
			original: &model.Table{Naming: model.Naming{Name: "t"}, Specifics: map[string]string{"engine": "InnoDB", "charset": "utf8"}},
			target:   &model.Table{Naming: model.Naming{Name: "t"}, Specifics: map[string]string{"engine": "MyISAM", "charset": "utf8", "comment": "x"}},
			property: "specifics",
			expected: "specifics: comment=(null -> x), engine=(InnoDB -> MyISAM)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Objects(tt.original, tt.target)
			leaf := d.Property(tt.property)
			require.NotNil(t, leaf)
			require.Equal(t, Modified, leaf.State())
			require.Equal(t, tt.expected, leaf.String())
		})
	}
}

func TestScalarNonStringList(t *testing.T) {
	d := Objects(&gadget{name: "g", numbers: []int{1, 2, 3}}, &gadget{name: "g", numbers: []int{1, 3}})
	require.Equal(t, "numbers:\n  [1]: -2", d.Property("numbers").String())
}

func TestScalarUnchanged(t *testing.T) {
	d := Objects(col("id", "INT"), col("id", "INT"))
	require.Equal(t, "dataType: INT", d.Property("dataType").String())
	require.Equal(t, "size: 0", d.Property("size").String())
}

func TestRowValues(t *testing.T) {
	build := func(name string) *model.Table {
		tbl := withPrimaryKey(table("items", col("id", "INT"), col("name", "TEXT"), col("qty", "INT")), "id")
		tbl.Rows.Add(
			&model.Row{Values: map[string]any{"id": 1, "name": name, "qty": 5}},
			&model.Row{Values: map[string]any{"id": 2, "name": "fixed", "qty": 1}},
		)
		return tbl
	}

	root := Objects(build("a"), build("b"))
	rows, ok := root.Property("rows").(*CollectionDiff)
	require.True(t, ok)
	require.Equal(t, map[State]int{Modified: 1, Unchanged: 1}, rows.Count())

	var modified *ObjectDiff
	for _, child := range rows.Elements() {
		if child.State() == Modified {
			modified = child
		}
	}
	require.NotNil(t, modified)
	require.Equal(t, "id=1", modified.Name())
	require.Equal(t, "values: id=1, name=(a -> b)", modified.Property("values").String())
}

func TestRowValues_KeyCase(t *testing.T) {
	build := func(name string) *model.Table {
		tbl := withPrimaryKey(table("items", col("id", "INT"), col("name", "TEXT")), "ID")
		tbl.Rows.Add(&model.Row{Values: map[string]any{"id": 1, "name": name}})
		return tbl
	}

	rows, ok := Objects(build("a"), build("b")).Property("rows").(*CollectionDiff)
	require.True(t, ok)
	require.Len(t, rows.Elements(), 1)

	row := rows.Elements()[0]
	require.Equal(t, Modified, row.State())
	require.Equal(t, "ID=1", row.Name())
	require.Equal(t, "values: ID=1, name=(a -> b)", row.Property("values").String())
}

func TestExpand(t *testing.T) {
	original := &model.Table{Naming: model.Naming{Name: "t"}, Specifics: map[string]string{"engine": "InnoDB", "charset": "utf8"}}
	target := &model.Table{Naming: model.Naming{Name: "t"}, Specifics: map[string]string{"engine": "MyISAM", "comment": "x"}}

	specifics, ok := Objects(original, target).Property("specifics").(*ScalarDiff)
	require.True(t, ok)

	expanded := specifics.Expand()
	require.Len(t, expanded, 3)

	states := make(map[string]State)
	for _, d := range expanded {
		states[d.PropertyName()] = d.State()
		require.Same(t, original, d.OriginalOwner())
	}
	require.Equal(t, map[string]State{
		"specifics.charset": Deleted,
		"specifics.comment": Added,
		"specifics.engine":  Modified,
	}, states)

	require.Equal(t, "specifics.comment: (null -> x)", expanded[1].String())

	reversed, ok := specifics.Reverse().(*ScalarDiff)
	require.True(t, ok)
	for _, d := range reversed.Expand() {
		if d.PropertyName() == "specifics.charset" {
			require.Equal(t, Added, d.State())
		}
	}

	name, ok := Objects(col("a", "INT"), col("b", "INT")).Property("name").(*ScalarDiff)
	require.True(t, ok)
	require.Equal(t, []*ScalarDiff{name}, name.Expand())
}

func TestPriority(t *testing.T) {
	require.Less(t, Priority("name"), Priority("columns"))
	require.Less(t, Priority("catalogName"), Priority("ordinal"))
	require.Less(t, Priority("columns"), Priority("createdAt"))
	require.Less(t, Priority("remarks"), Priority("specifics"))
	require.Equal(t, Priority("Name"), Priority("name"))
}

func TestStateString(t *testing.T) {
	require.Equal(t, "Unchanged", Unchanged.String())
	require.Equal(t, "Added", Added.String())
	require.Equal(t, "Deleted", Deleted.String())
	require.Equal(t, "Modified", Modified.String())
	require.False(t, Unchanged.Changed())
	require.True(t, Deleted.Changed())
}
