package schema

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/consts"
	"github.com/pseudomuto/schemadelta/pkg/model"
	"github.com/pseudomuto/schemadelta/pkg/parser"
	"github.com/pseudomuto/schemadelta/pkg/utils"
)

var (
	// ErrDuplicateObject is returned when a statement creates an object that already exists
	// and neither IF NOT EXISTS nor OR REPLACE was given.
	ErrDuplicateObject = errors.New("duplicate object")

	// ErrMissingObject is returned when a statement refers to a table, column or other
	// object that no statement created.
	ErrMissingObject = errors.New("missing object")
)

type builder struct {
	catalog *model.Catalog
	created map[string]bool
}

// Build assembles a catalog from parsed DDL scripts.
//
// Statements are applied in two passes. The first creates schemas, tables, sequences, views
// and routines; the second applies everything that refers to them (indexes, triggers,
// ALTER TABLE constraints, COMMENT ON, INSERT rows and setval calls). Scripts may therefore
// be given in any order, which is what LoadDir relies on.
//
// Objects whose name is not schema-qualified are placed in the "public" schema.
//
// Example:
//
//	sql, err := parser.ParseString(`
//		CREATE TABLE users (id SERIAL PRIMARY KEY, email TEXT NOT NULL);
//		CREATE UNIQUE INDEX users_email_idx ON users (email);
//	`)
//	if err != nil {
//		return err
//	}
//
//	catalog, err := schema.Build("app", sql)
//	if err != nil {
//		return err
//	}
//
//	users, _ := catalog.Schema("public").Tables.Find("users")
//	fmt.Println(users.Columns.Len()) // 2
func Build(catalogName string, sqls ...*parser.SQL) (*model.Catalog, error) {
	if catalogName == "" {
		catalogName = consts.DefaultCatalog
	}

	b := &builder{
		catalog: model.NewCatalog(catalogName),
		created: make(map[string]bool),
	}

	for _, sql := range sqls {
		for _, stmt := range sql.Statements {
			if err := b.define(stmt); err != nil {
				return nil, err
			}
		}
	}

	for _, sql := range sqls {
		for _, stmt := range sql.Statements {
			if err := b.attach(stmt); err != nil {
				return nil, err
			}
		}
	}

	return b.catalog, nil
}

func (b *builder) define(stmt *parser.Statement) error {
	c := stmt.Create
	if c == nil {
		return nil
	}

	switch {
	case c.Schema != nil:
		return b.createSchema(c.Schema)
	case c.Table != nil:
		return b.createTable(c.Table)
	case c.Sequence != nil:
		return b.createSequence(c.Sequence)
	case c.View != nil:
		return b.createView(c.View, c.OrReplace)
	case c.Routine != nil:
		return b.createRoutine(c.Routine, c.OrReplace)
	}
	return nil
}

func (b *builder) attach(stmt *parser.Statement) error {
	switch {
	case stmt.Create != nil && stmt.Create.Index != nil:
		return b.createIndex(stmt.Create.Index)
	case stmt.Create != nil && stmt.Create.Trigger != nil:
		return b.createTrigger(stmt.Create.Trigger, stmt.Create.OrReplace)
	case stmt.Alter != nil:
		t, err := b.table(stmt.Alter.Name)
		if err != nil {
			return err
		}
		return b.addConstraint(t, stmt.Alter.Constraint)
	case stmt.Comment != nil:
		return b.comment(stmt.Comment)
	case stmt.Insert != nil:
		return b.insert(stmt.Insert)
	case stmt.Setval != nil:
		return b.setval(stmt.Setval)
	}
	return nil
}

func (b *builder) schemaFor(name *parser.QualifiedName) *model.Schema {
	qualifier := name.Qualifier()
	if qualifier == "" {
		qualifier = consts.DefaultSchema
	}
	return b.catalog.Schema(qualifier)
}

func (b *builder) table(name *parser.QualifiedName) (*model.Table, error) {
	t, ok := b.schemaFor(name).Tables.Find(name.Name())
	if !ok {
		return nil, errors.Wrapf(ErrMissingObject, "table %s", name)
	}
	return t, nil
}

func (b *builder) createSchema(stmt *parser.CreateSchemaStmt) error {
	name := stmt.Name.String()
	if b.created[name] {
		if stmt.IfNotExists {
			return nil
		}
		return errors.Wrapf(ErrDuplicateObject, "schema %s", name)
	}

	b.created[name] = true
	s := b.catalog.Schema(name)
	if stmt.Authorization != nil {
		s.Specifics = setSpecific(s.Specifics, "owner", stmt.Authorization.String())
	}
	return nil
}

func (b *builder) createTable(stmt *parser.CreateTableStmt) error {
	s := b.schemaFor(stmt.Name)
	name := stmt.Name.Name()
	if _, ok := s.Tables.Find(name); ok {
		if stmt.IfNotExists {
			return nil
		}
		return errors.Wrapf(ErrDuplicateObject, "table %s", stmt.Name)
	}
	if err := checkRelationName(s, name, "table"); err != nil {
		return err
	}

	t := model.NewTable(name)
	s.Tables.Add(t)

	for _, def := range stmt.Columns() {
		if err := b.addColumn(t, def); err != nil {
			return err
		}
	}

	for _, c := range stmt.Constraints() {
		if err := b.addConstraint(t, c); err != nil {
			return err
		}
	}

	for _, p := range stmt.With {
		t.Specifics = setSpecific(t.Specifics, strings.ToLower(p.Key.String()), p.Value.Literal.String())
	}

	for _, o := range stmt.Options {
		key := o.OptionKey()
		if key == "COMMENT" {
			t.Remarks = o.Value.Literal.String()
			continue
		}
		t.Specifics = setSpecific(t.Specifics, strings.ToLower(strings.ReplaceAll(key, " ", "_")), o.Value.Literal.String())
	}

	return nil
}

func (b *builder) addColumn(t *model.Table, def *parser.ColumnDef) error {
	name := def.Name.String()
	if _, ok := t.Columns.Find(name); ok {
		return errors.Wrapf(ErrDuplicateObject, "column %s.%s", t.Name, name)
	}

	dataType, size := columnType(def.Type)
	col := &model.Column{
		Naming:        model.Naming{Name: name},
		DataType:      dataType,
		Size:          size,
		Nullable:      true,
		AutoIncrement: def.Type.IsSerial(),
	}
	if def.Type.IsSerial() {
		col.Nullable = false
	}
	t.Columns.Add(col)

	for _, c := range def.Constraints {
		switch {
		case c.NotNull:
			col.Nullable = false
		case c.Null:
			col.Nullable = true
		case c.Default != nil:
			col.Default = utils.Ptr(c.Default.String())
		case c.AutoIncrement:
			col.AutoIncrement = true
		case c.Comment != nil:
			col.Remarks = c.Comment.String()
		case c.PrimaryKey:
			if err := b.addConstraint(t, &parser.TableConstraint{Name: c.Name, PrimaryKey: []parser.Identifier{def.Name}}); err != nil {
				return err
			}
		case c.Unique:
			if err := b.addConstraint(t, &parser.TableConstraint{Name: c.Name, Unique: []parser.Identifier{def.Name}}); err != nil {
				return err
			}
		case c.References != nil:
			fk := &parser.ForeignKey{Columns: []parser.Identifier{def.Name}, References: c.References}
			if err := b.addConstraint(t, &parser.TableConstraint{Name: c.Name, ForeignKey: fk}); err != nil {
				return err
			}
		case c.Check != nil:
			con := &model.Constraint{
				Naming:      model.Naming{Name: constraintName(t, c.Name, []string{name}, "check")},
				Type:        model.Check,
				Columns:     []string{name},
				CheckClause: c.Check.String(),
			}
			t.Constraints.Add(con)
		}
	}

	return nil
}

func (b *builder) addConstraint(t *model.Table, c *parser.TableConstraint) error {
	con := &model.Constraint{}
	switch {
	case c.PrimaryKey != nil:
		if t.PrimaryKey() != nil {
			return errors.Wrapf(ErrDuplicateObject, "primary key on %s", t.Name)
		}
		con.Type = model.PrimaryKey
		con.Columns = identifiers(c.PrimaryKey)
		con.Name = constraintName(t, c.Name, nil, "pkey")
	case c.Unique != nil:
		con.Type = model.Unique
		con.Columns = identifiers(c.Unique)
		con.Name = constraintName(t, c.Name, con.Columns, "key")
	case c.ForeignKey != nil:
		con.Type = model.ForeignKey
		con.Columns = identifiers(c.ForeignKey.Columns)
		con.ReferencedTable = c.ForeignKey.References.Table.String()
		con.ReferencedColumns = identifiers(c.ForeignKey.References.Columns)
		con.OnDelete = c.ForeignKey.References.OnDelete()
		con.Name = constraintName(t, c.Name, con.Columns, "fkey")
	case c.Check != nil:
		con.Type = model.Check
		con.CheckClause = c.Check.String()
		con.Name = constraintName(t, c.Name, nil, "check")
	}

	if _, ok := t.Constraints.Find(con.Name); ok {
		return errors.Wrapf(ErrDuplicateObject, "constraint %s on %s", con.Name, t.Name)
	}

	for _, name := range con.Columns {
		col, ok := t.Columns.Find(name)
		if !ok {
			return errors.Wrapf(ErrMissingObject, "column %s.%s in constraint %s", t.Name, name, con.Name)
		}
		if con.Type == model.PrimaryKey {
			col.Nullable = false
		}
	}

	t.Constraints.Add(con)
	return nil
}

func (b *builder) createSequence(stmt *parser.CreateSequenceStmt) error {
	s := b.schemaFor(stmt.Name)
	name := stmt.Name.Name()
	if _, ok := s.Sequences.Find(name); ok {
		if stmt.IfNotExists {
			return nil
		}
		return errors.Wrapf(ErrDuplicateObject, "sequence %s", stmt.Name)
	}

	seq := &model.Sequence{Naming: model.Naming{Name: name}, Increment: 1}
	var (
		minValue, maxValue, start *int64
		typeMax                   int64 = math.MaxInt64
	)

	for _, o := range stmt.Options {
		switch {
		case o.Increment != nil:
			seq.Increment = int64(o.Increment.Value)
		case o.MinValue != nil:
			minValue = utils.Ptr(int64(o.MinValue.Value))
		case o.MaxValue != nil:
			maxValue = utils.Ptr(int64(o.MaxValue.Value))
		case o.Start != nil:
			start = utils.Ptr(int64(o.Start.Value))
		case o.Cycle:
			seq.Cycle = true
		case o.NoCycle:
			seq.Cycle = false
		case o.As != nil:
			typeMax = sequenceTypeMax(o.As)
		}
	}

	if seq.Increment == 0 {
		return errors.Errorf("sequence %s: INCREMENT must not be zero", stmt.Name)
	}

	if seq.Increment > 0 {
		seq.MinimumValue, seq.MaximumValue = 1, typeMax
	} else {
		seq.MinimumValue, seq.MaximumValue = -typeMax-1, -1
	}
	if minValue != nil {
		seq.MinimumValue = *minValue
	}
	if maxValue != nil {
		seq.MaximumValue = *maxValue
	}

	seq.StartValue = seq.MinimumValue
	if seq.Increment < 0 {
		seq.StartValue = seq.MaximumValue
	}
	if start != nil {
		seq.StartValue = *start
	}
	seq.LastValue = seq.StartValue

	if seq.MinimumValue > seq.MaximumValue {
		return errors.Errorf("sequence %s: MINVALUE (%d) must be less than MAXVALUE (%d)", stmt.Name, seq.MinimumValue, seq.MaximumValue)
	}

	s.Sequences.Add(seq)
	return nil
}

func (b *builder) setval(stmt *parser.SetvalStmt) error {
	qualifier, name := utils.SplitQualifiedName(stmt.Sequence.String())
	if qualifier == "" {
		qualifier = consts.DefaultSchema
	}

	seq, ok := b.catalog.Schema(qualifier).Sequences.Find(name)
	if !ok {
		return errors.Wrapf(ErrMissingObject, "sequence %s", stmt.Sequence)
	}

	seq.LastValue = int64(stmt.Value.Value)
	return nil
}

func (b *builder) createView(stmt *parser.CreateViewStmt, orReplace bool) error {
	s := b.schemaFor(stmt.Name)
	name := stmt.Name.Name()

	v, exists := s.Views.Find(name)
	switch {
	case exists && stmt.IfNotExists:
		return nil
	case exists && !orReplace:
		return errors.Wrapf(ErrDuplicateObject, "view %s", stmt.Name)
	case !exists:
		if err := checkRelationName(s, name, "view"); err != nil {
			return err
		}
		v = &model.View{Naming: model.Naming{Name: name}}
		s.Views.Add(v)
	}

	v.Definition = stmt.Query.String()
	v.CheckOption = stmt.CheckOption.String()
	if len(stmt.Columns) > 0 {
		v.Definition = "(" + strings.Join(identifiers(stmt.Columns), ", ") + ") AS " + v.Definition
	}
	if stmt.Materialized {
		v.Definition = "MATERIALIZED " + v.Definition
	}
	return nil
}

func (b *builder) createRoutine(stmt *parser.CreateRoutineStmt, orReplace bool) error {
	s := b.schemaFor(stmt.Name)
	typ := model.RoutineType(strings.ToUpper(stmt.Type))
	signature := routineSignature(stmt)

	var existing *model.Routine
	for _, r := range s.Routines.All() {
		if r.SpecificName == signature {
			existing = r
			break
		}
	}

	r := existing
	switch {
	case existing != nil && !orReplace:
		return errors.Wrapf(ErrDuplicateObject, "%s %s", strings.ToLower(stmt.Type), signature)
	case existing != nil:
		r.Type = typ
		r.Parameters = model.NewList[*model.Parameter](r, true)
	default:
		r = model.NewRoutine(stmt.Name.Name(), typ)
		r.SpecificName = signature
	}

	for i, p := range stmt.Params {
		name := fmt.Sprintf("$%d", i+1)
		if p.Name != nil {
			name = p.Name.String()
		}
		r.Parameters.Add(&model.Parameter{
			Naming:   model.Naming{Name: name},
			Mode:     p.ParamMode(),
			DataType: p.Type.String(),
		})
	}

	r.ReturnType = stmt.Returns()
	r.Language = stmt.Language()
	r.Source = []byte(stmt.Body())
	r.Specifics = nil
	for _, o := range stmt.Options {
		switch {
		case o.Volatility != "":
			r.Specifics = setSpecific(r.Specifics, "volatility", strings.ToUpper(o.Volatility))
		case o.Security != nil:
			r.Specifics = setSpecific(r.Specifics, "security", strings.ToUpper(o.Security[len(o.Security)-1]))
		}
	}

	if existing == nil {
		s.Routines.Add(r)
	}
	return nil
}

func (b *builder) createIndex(stmt *parser.CreateIndexStmt) error {
	t, err := b.table(stmt.Table)
	if err != nil {
		return err
	}

	name := stmt.Name.String()
	if _, ok := t.Indexes.Find(name); ok {
		if stmt.IfNotExists {
			return nil
		}
		return errors.Wrapf(ErrDuplicateObject, "index %s on %s", name, t.Name)
	}

	idx := &model.Index{Naming: model.Naming{Name: name}, Unique: stmt.Unique}
	for _, c := range stmt.Columns {
		idx.Columns = append(idx.Columns, c.String())
	}
	if stmt.Method != nil {
		idx.Method = strings.ToLower(stmt.Method.String())
	}
	if stmt.Where != nil {
		idx.Where = stmt.Where.String()
	}

	t.Indexes.Add(idx)
	return nil
}

func (b *builder) createTrigger(stmt *parser.CreateTriggerStmt, orReplace bool) error {
	t, err := b.table(stmt.Table)
	if err != nil {
		return err
	}

	name := stmt.Name.String()
	if _, ok := t.Triggers.Find(name); ok {
		if !orReplace {
			return errors.Wrapf(ErrDuplicateObject, "trigger %s on %s", name, t.Name)
		}
		t.Triggers.Remove(name)
	}

	action := "EXECUTE FUNCTION " + stmt.Action.String()
	if stmt.When != nil {
		action = "WHEN (" + stmt.When.String() + ") " + action
	}

	t.Triggers.Add(&model.Trigger{
		Naming:      model.Naming{Name: name},
		Timing:      stmt.TimingString(),
		Events:      stmt.EventNames(),
		Orientation: stmt.OrientationString(),
		Action:      action,
	})
	return nil
}

func (b *builder) comment(stmt *parser.CommentStmt) error {
	remarks := stmt.Remarks()

	switch stmt.ObjectKind() {
	case "SCHEMA":
		name := stmt.Target.Name()
		if _, ok := b.catalog.Schemas.Find(name); !ok {
			return errors.Wrapf(ErrMissingObject, "schema %s", name)
		}
		b.catalog.Schema(name).Remarks = remarks
	case "TABLE":
		t, err := b.table(stmt.Target)
		if err != nil {
			return err
		}
		t.Remarks = remarks
	case "VIEW":
		v, ok := b.schemaFor(stmt.Target).Views.Find(stmt.Target.Name())
		if !ok {
			return errors.Wrapf(ErrMissingObject, "view %s", stmt.Target)
		}
		v.Remarks = remarks
	case "SEQUENCE":
		seq, ok := b.schemaFor(stmt.Target).Sequences.Find(stmt.Target.Name())
		if !ok {
			return errors.Wrapf(ErrMissingObject, "sequence %s", stmt.Target)
		}
		seq.Remarks = remarks
	case "FUNCTION", "PROCEDURE":
		r := b.routine(stmt)
		if r == nil {
			return errors.Wrapf(ErrMissingObject, "%s %s", strings.ToLower(stmt.Kind), stmt.Target)
		}
		r.Remarks = remarks
	case "COLUMN":
		parts := stmt.Target.Parts
		if len(parts) < 2 {
			return errors.Errorf("column comment target %s is not qualified by a table", stmt.Target)
		}
		t, err := b.table(&parser.QualifiedName{Parts: parts[:len(parts)-1]})
		if err != nil {
			return err
		}
		col, ok := t.Columns.Find(parts[len(parts)-1].String())
		if !ok {
			return errors.Wrapf(ErrMissingObject, "column %s", stmt.Target)
		}
		col.Remarks = remarks
	}

	return nil
}

// routine resolves a COMMENT ON FUNCTION target, preferring an exact signature match.
func (b *builder) routine(stmt *parser.CommentStmt) *model.Routine {
	s := b.schemaFor(stmt.Target)
	name := stmt.Target.Name()

	if stmt.Signature != nil {
		want := name + "(" + normalizeSignature(stmt.Signature.Inner()) + ")"
		for _, r := range s.Routines.All() {
			if normalizeSignature(r.SpecificName) == normalizeSignature(want) {
				return r
			}
		}
	}

	if pos := s.Routines.Positions(name); len(pos) > 0 {
		if len(pos) > 1 {
			slog.Debug("ambiguous routine in COMMENT ON, using the first", "name", name, "candidates", len(pos))
		}
		return s.Routines.Get(pos[0])
	}
	return nil
}

func (b *builder) insert(stmt *parser.InsertStmt) error {
	t, err := b.table(stmt.Table)
	if err != nil {
		return err
	}

	columns := identifiers(stmt.Columns)
	if len(columns) == 0 {
		for _, c := range t.Columns.All() {
			columns = append(columns, c.Name)
		}
	}
	for _, name := range columns {
		if _, ok := t.Columns.Find(name); !ok {
			return errors.Wrapf(ErrMissingObject, "column %s.%s", t.Name, name)
		}
	}

	for i, row := range stmt.Rows {
		if len(row.Values) != len(columns) {
			return errors.Errorf("insert into %s: row %d has %d values, expected %d", t.Name, i+1, len(row.Values), len(columns))
		}

		values := make(map[string]any, len(columns))
		for j, v := range row.Values {
			values[columns[j]] = v.Literal.Value()
		}
		t.Rows.Add(&model.Row{Values: values})
	}

	return nil
}

// columnType splits a single numeric type parameter into the column size, so VARCHAR(50)
// becomes ("VARCHAR", 50) while NUMERIC(10, 2) stays whole.
func columnType(dt *parser.DataType) (string, int) {
	if len(dt.Params) == 1 {
		if size, err := strconv.Atoi(dt.Params[0]); err == nil {
			bare := *dt
			bare.Params = nil
			return bare.String(), size
		}
	}
	return dt.String(), 0
}

// constraintName returns the explicit name, or a generated one in the form
// <table>_<columns>_<suffix>, numbered when that is taken.
func constraintName(t *model.Table, explicit *parser.Identifier, columns []string, suffix string) string {
	if explicit != nil {
		return explicit.String()
	}

	parts := append([]string{t.Name}, columns...)
	base := strings.Join(parts, "_") + "_" + suffix
	name := base
	for i := 1; ; i++ {
		if _, ok := t.Constraints.Find(name); !ok {
			return name
		}
		name = base + strconv.Itoa(i)
	}
}

func checkRelationName(s *model.Schema, name, kind string) error {
	if _, ok := s.Tables.Find(name); ok {
		return errors.Wrapf(ErrDuplicateObject, "%s %s.%s conflicts with a table", kind, s.Name, name)
	}
	if _, ok := s.Views.Find(name); ok {
		return errors.Wrapf(ErrDuplicateObject, "%s %s.%s conflicts with a view", kind, s.Name, name)
	}
	return nil
}

func routineSignature(stmt *parser.CreateRoutineStmt) string {
	types := make([]string, 0, len(stmt.Params))
	for _, p := range stmt.Params {
		if p.ParamMode() == "OUT" {
			continue
		}
		types = append(types, p.Type.String())
	}
	return stmt.Name.Name() + "(" + strings.Join(types, ", ") + ")"
}

func normalizeSignature(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

func sequenceTypeMax(dt *parser.DataType) int64 {
	switch strings.ToUpper(dt.Name) {
	case "SMALLINT", "INT2":
		return math.MaxInt16
	case "INTEGER", "INT", "INT4":
		return math.MaxInt32
	}
	return math.MaxInt64
}

func identifiers(ids []parser.Identifier) []string {
	if len(ids) == 0 {
		return nil
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func setSpecific(m map[string]string, key, value string) map[string]string {
	if m == nil {
		m = make(map[string]string)
	}
	m[key] = value
	return m
}
