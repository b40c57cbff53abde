package model

import (
	"fmt"
	"strings"

	"github.com/pseudomuto/schemadelta/pkg/compare"
)

// ConstraintType classifies a table constraint.
type ConstraintType string

const (
	PrimaryKey ConstraintType = "PRIMARY KEY"
	Unique     ConstraintType = "UNIQUE"
	ForeignKey ConstraintType = "FOREIGN KEY"
	Check      ConstraintType = "CHECK"
)

type (
	// Table is a base table with its columns, constraints, indexes, triggers and
	// reference-data rows.
	Table struct {
		node
		Naming
		Documented
		Timestamps
		TableType   string
		Columns     *List[*Column]
		Constraints *List[*Constraint]
		Indexes     *List[*Index]
		Triggers    *List[*Trigger]
		Rows        *List[*Row]
		Statistics  []byte
		Specifics   map[string]string
	}

	// Column is a table column. Its ordinal is its 1-based position in the table.
	Column struct {
		node
		Naming
		Documented
		Ordinal       int
		DataType      string
		Size          int
		Nullable      bool
		Default       *string
		AutoIncrement bool
	}

	// Row is a reference-data row keyed by column name.
	Row struct {
		node
		Values map[string]any
	}

	// Constraint is a primary key, unique, foreign key or check constraint.
	Constraint struct {
		node
		Naming
		Type              ConstraintType
		Columns           []string
		ReferencedTable   string
		ReferencedColumns []string
		OnDelete          string
		CheckClause       string
	}

	// Index is a table index, optionally partial.
	Index struct {
		node
		Naming
		Unique  bool
		Columns []string
		Method  string
		Where   string
	}

	// Trigger is a table trigger.
	Trigger struct {
		node
		Naming
		Timing      string
		Events      []string
		Orientation string
		Action      string
	}
)

// NewTable creates an empty base table.
func NewTable(name string) *Table {
	t := &Table{Naming: Naming{Name: name}, TableType: "TABLE"}
	t.Columns = NewList[*Column](t, true)
	t.Constraints = NewList[*Constraint](t, false)
	t.Indexes = NewList[*Index](t, false)
	t.Triggers = NewList[*Trigger](t, false)
	t.Rows = NewList[*Row](t, false)
	return t
}

func (t *Table) Kind() Kind { return KindTable }

func (t *Table) Properties() []compare.Property {
	return []compare.Property{
		compare.P("schemaName", schemaNameOf(t)),
		compare.P("name", t.Name),
		compare.P("tableType", t.TableType),
		compare.P("columns", t.Columns),
		compare.P("constraints", t.Constraints),
		compare.P("indexes", t.Indexes),
		compare.P("triggers", t.Triggers),
		compare.P("rows", t.Rows),
		compare.P("remarks", t.Remarks),
		compare.P("createdAt", t.CreatedAt),
		compare.P("lastAlteredAt", t.LastAlteredAt),
		compare.P("statistics", t.Statistics),
		compare.P("specifics", t.Specifics),
	}
}

// PrimaryKey returns the table's primary key constraint, or nil.
func (t *Table) PrimaryKey() *Constraint {
	for _, c := range t.Constraints.All() {
		if c.Type == PrimaryKey {
			return c
		}
	}
	return nil
}

// KeyColumns returns the columns identifying a row: the primary key when present,
// otherwise the first unique constraint.
func (t *Table) KeyColumns() []string {
	if pk := t.PrimaryKey(); pk != nil {
		return pk.Columns
	}

	for _, c := range t.Constraints.All() {
		if c.Type == Unique {
			return c.Columns
		}
	}
	return nil
}

func (c *Column) Kind() Kind       { return KindColumn }
func (c *Column) setOrdinal(i int) { c.Ordinal = i }

func (c *Column) Properties() []compare.Property {
	return []compare.Property{
		compare.P("name", c.Name),
		compare.P("ordinal", c.Ordinal),
		compare.P("dataType", c.DataType),
		compare.P("size", c.Size),
		compare.P("nullable", c.Nullable),
		compare.P("defaultValue", c.Default),
		compare.P("autoIncrement", c.AutoIncrement),
		compare.P("remarks", c.Remarks),
	}
}

func (r *Row) Kind() Kind { return KindRow }

func (r *Row) Properties() []compare.Property {
	return []compare.Property{
		compare.P("values", r.Values),
	}
}

// KeyColumns returns the key columns of the owning table.
func (r *Row) KeyColumns() []string {
	if t, ok := r.Parent().(*Table); ok {
		return t.KeyColumns()
	}
	return nil
}

// ObjectName renders the row's key values, for example "id=1". Rows of a table without
// keys have no name.
func (r *Row) ObjectName() string {
	keys := r.KeyColumns()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := r.Value(k)
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ", ")
}

// Value returns the row's value for column, matched case-insensitively when no exact
// match exists.
func (r *Row) Value(column string) (any, bool) {
	if v, ok := r.Values[column]; ok {
		return v, true
	}
	for k, v := range r.Values {
		if strings.EqualFold(k, column) {
			return v, true
		}
	}
	return nil, false
}

func (c *Constraint) Kind() Kind { return KindConstraint }

func (c *Constraint) Properties() []compare.Property {
	return []compare.Property{
		compare.P("name", c.Name),
		compare.P("constraintType", string(c.Type)),
		compare.P("columns", c.Columns),
		compare.P("referencedTable", c.ReferencedTable),
		compare.P("referencedColumns", c.ReferencedColumns),
		compare.P("onDelete", c.OnDelete),
		compare.P("checkClause", c.CheckClause),
	}
}

func (i *Index) Kind() Kind { return KindIndex }

func (i *Index) Properties() []compare.Property {
	return []compare.Property{
		compare.P("name", i.Name),
		compare.P("unique", i.Unique),
		compare.P("columns", i.Columns),
		compare.P("method", i.Method),
		compare.P("where", i.Where),
	}
}

func (t *Trigger) Kind() Kind { return KindTrigger }

func (t *Trigger) Properties() []compare.Property {
	return []compare.Property{
		compare.P("name", t.Name),
		compare.P("timing", t.Timing),
		compare.P("events", t.Events),
		compare.P("orientation", t.Orientation),
		compare.P("action", t.Action),
	}
}
