package schema_test

import (
	"math"
	"testing"

	"github.com/pseudomuto/schemadelta/pkg/model"
	"github.com/pseudomuto/schemadelta/pkg/parser"
	. "github.com/pseudomuto/schemadelta/pkg/schema"
	"github.com/pseudomuto/schemadelta/pkg/utils"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, sql string) *model.Catalog {
	t.Helper()

	parsed, err := parser.ParseString(sql)
	require.NoError(t, err)

	catalog, err := Build("test", parsed)
	require.NoError(t, err)
	return catalog
}

func TestBuild_Tables(t *testing.T) {
	catalog := build(t, `
CREATE SCHEMA app AUTHORIZATION admin;
CREATE TABLE app.users (
	id BIGSERIAL PRIMARY KEY,
	email VARCHAR(255) NOT NULL UNIQUE,
	org_id INT REFERENCES app.orgs (id) ON DELETE CASCADE,
	age INT CHECK (age >= 0),
	balance NUMERIC(10, 2) DEFAULT 0,
	created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
) WITH (fillfactor = 70);
CREATE TABLE app.orgs (id INT, name TEXT NOT NULL, CONSTRAINT orgs_pk PRIMARY KEY (id));`)

	require.Equal(t, "test", catalog.Name)

	app, ok := catalog.Schemas.Find("app")
	require.True(t, ok)
	require.Equal(t, map[string]string{"owner": "admin"}, app.Specifics)
	require.Equal(t, 2, app.Tables.Len())

	users, ok := app.Tables.Find("users")
	require.True(t, ok)
	require.Same(t, app, users.Parent())
	require.Equal(t, map[string]string{"fillfactor": "70"}, users.Specifics)

	columns := []struct {
		name          string
		ordinal       int
		dataType      string
		size          int
		nullable      bool
		autoIncrement bool
		defaultValue  *string
	}{
		{name: "id", ordinal: 1, dataType: "BIGSERIAL", autoIncrement: true},
		{name: "email", ordinal: 2, dataType: "VARCHAR", size: 255},
		{name: "org_id", ordinal: 3, dataType: "INT", nullable: true},
		{name: "age", ordinal: 4, dataType: "INT", nullable: true},
		{name: "balance", ordinal: 5, dataType: "NUMERIC(10, 2)", nullable: true, defaultValue: utils.Ptr("0")},
		{name: "created_at", ordinal: 6, dataType: "TIMESTAMP WITH TIME ZONE", nullable: true, defaultValue: utils.Ptr("now()")},
	}

	require.Equal(t, len(columns), users.Columns.Len())
	for _, want := range columns {
		t.Run(want.name, func(t *testing.T) {
			col, ok := users.Columns.Find(want.name)
			require.True(t, ok)
			require.Equal(t, want.ordinal, col.Ordinal)
			require.Equal(t, want.dataType, col.DataType)
			require.Equal(t, want.size, col.Size)
			require.Equal(t, want.nullable, col.Nullable)
			require.Equal(t, want.autoIncrement, col.AutoIncrement)
			require.Equal(t, want.defaultValue, col.Default)
		})
	}

	pk := users.PrimaryKey()
	require.NotNil(t, pk)
	require.Equal(t, "users_pkey", pk.Name)
	require.Equal(t, []string{"id"}, pk.Columns)

	unique, ok := users.Constraints.Find("users_email_key")
	require.True(t, ok)
	require.Equal(t, model.Unique, unique.Type)

	fk, ok := users.Constraints.Find("users_org_id_fkey")
	require.True(t, ok)
	require.Equal(t, model.ForeignKey, fk.Type)
	require.Equal(t, "app.orgs", fk.ReferencedTable)
	require.Equal(t, []string{"id"}, fk.ReferencedColumns)
	require.Equal(t, "CASCADE", fk.OnDelete)

	check, ok := users.Constraints.Find("users_age_check")
	require.True(t, ok)
	require.Equal(t, "age >= 0", check.CheckClause)

	orgs, ok := app.Tables.Find("orgs")
	require.True(t, ok)
	require.Equal(t, "orgs_pk", orgs.PrimaryKey().Name)

	id, _ := orgs.Columns.Find("id")
	require.False(t, id.Nullable)
}

func TestBuild_DefaultSchema(t *testing.T) {
	catalog := build(t, "CREATE TABLE things (id INT);")

	public, ok := catalog.Schemas.Find("public")
	require.True(t, ok)
	_, ok = public.Tables.Find("things")
	require.True(t, ok)
}

func TestBuild_TableOptions(t *testing.T) {
	catalog := build(t, "CREATE TABLE `items` (`id` INT AUTO_INCREMENT, PRIMARY KEY (`id`)) ENGINE = InnoDB DEFAULT CHARSET = utf8mb4 COMMENT = 'Catalog items';")

	items, ok := catalog.Schema("public").Tables.Find("items")
	require.True(t, ok)
	require.Equal(t, "Catalog items", items.Remarks)
	require.Equal(t, map[string]string{"engine": "InnoDB", "charset": "utf8mb4"}, items.Specifics)

	id, _ := items.Columns.Find("id")
	require.True(t, id.AutoIncrement)
	require.False(t, id.Nullable)
}

func TestBuild_IndexesAndTriggers(t *testing.T) {
	catalog := build(t, `
CREATE UNIQUE INDEX users_email_idx ON users USING BTREE (lower(email)) WHERE deleted_at IS NULL;
CREATE TRIGGER users_audit AFTER INSERT OR UPDATE ON users FOR EACH ROW EXECUTE FUNCTION audit('users');
CREATE TABLE users (id INT PRIMARY KEY, email TEXT, deleted_at TIMESTAMP);
ALTER TABLE ONLY users ADD CONSTRAINT users_email_unique UNIQUE (email);`)

	users, ok := catalog.Schema("public").Tables.Find("users")
	require.True(t, ok)

	idx, ok := users.Indexes.Find("users_email_idx")
	require.True(t, ok)
	require.True(t, idx.Unique)
	require.Equal(t, "btree", idx.Method)
	require.Equal(t, []string{"lower(email)"}, idx.Columns)
	require.Equal(t, "deleted_at IS NULL", idx.Where)

	trg, ok := users.Triggers.Find("users_audit")
	require.True(t, ok)
	require.Equal(t, "AFTER", trg.Timing)
	require.Equal(t, []string{"INSERT", "UPDATE"}, trg.Events)
	require.Equal(t, "ROW", trg.Orientation)
	require.Equal(t, "EXECUTE FUNCTION audit('users')", trg.Action)

	con, ok := users.Constraints.Find("users_email_unique")
	require.True(t, ok)
	require.Equal(t, []string{"email"}, con.Columns)
}

func TestBuild_Sequences(t *testing.T) {
	catalog := build(t, `
CREATE SEQUENCE order_seq INCREMENT BY 5 START WITH 100;
CREATE SEQUENCE countdown INCREMENT -1 CYCLE;
CREATE SEQUENCE small_seq AS integer;
SELECT pg_catalog.setval('public.order_seq', 150, true);`)

	public := catalog.Schema("public")

	tests := []struct {
		name     string
		expected model.Sequence
	}{
		{
			name: "order_seq",
			expected: model.Sequence{
				Increment:    5,
				MinimumValue: 1,
				MaximumValue: math.MaxInt64,
				StartValue:   100,
				LastValue:    150,
			},
		},
		{
			name: "countdown",
			expected: model.Sequence{
				Increment:    -1,
				MinimumValue: math.MinInt64,
				MaximumValue: -1,
				StartValue:   -1,
				LastValue:    -1,
				Cycle:        true,
			},
		},
		{
			name: "small_seq",
			expected: model.Sequence{
				Increment:    1,
				MinimumValue: 1,
				MaximumValue: math.MaxInt32,
				StartValue:   1,
				LastValue:    1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, ok := public.Sequences.Find(tt.name)
			require.True(t, ok)
			require.Equal(t, tt.expected.Increment, seq.Increment)
			require.Equal(t, tt.expected.MinimumValue, seq.MinimumValue)
			require.Equal(t, tt.expected.MaximumValue, seq.MaximumValue)
			require.Equal(t, tt.expected.StartValue, seq.StartValue)
			require.Equal(t, tt.expected.LastValue, seq.LastValue)
			require.Equal(t, tt.expected.Cycle, seq.Cycle)
		})
	}
}

func TestBuild_ViewsAndRoutines(t *testing.T) {
	catalog := build(t, `
CREATE VIEW app.active AS SELECT id FROM app.users WHERE active WITH CHECK OPTION;
CREATE OR REPLACE VIEW app.active AS SELECT id, email FROM app.users;
CREATE FUNCTION app.add(a integer, integer) RETURNS integer LANGUAGE sql IMMUTABLE AS $$SELECT a + $2$$;
CREATE FUNCTION app.add(a text) RETURNS text LANGUAGE sql AS $$SELECT a$$;
CREATE PROCEDURE app.reset() LANGUAGE plpgsql SECURITY DEFINER AS $$BEGIN END$$;
COMMENT ON FUNCTION app.add(integer, integer) IS 'Adds numbers';
COMMENT ON VIEW app.active IS 'Active users';
COMMENT ON SCHEMA app IS 'Application';`)

	app := catalog.Schema("app")
	require.Equal(t, "Application", app.Remarks)

	v, ok := app.Views.Find("active")
	require.True(t, ok)
	require.Equal(t, 1, app.Views.Len())
	require.Equal(t, "SELECT id, email FROM app.users", v.Definition)
	require.Empty(t, v.CheckOption)
	require.Equal(t, "Active users", v.Remarks)

	require.Equal(t, 3, app.Routines.Len())
	require.Len(t, app.Routines.Positions("add"), 2)

	add := app.Routines.Get(0)
	require.Equal(t, "add(INTEGER, INTEGER)", add.SpecificName)
	require.Equal(t, model.Function, add.Type)
	require.Equal(t, "INTEGER", add.ReturnType)
	require.Equal(t, "sql", add.Language)
	require.Equal(t, []byte("SELECT a + $2"), add.Source)
	require.Equal(t, map[string]string{"volatility": "IMMUTABLE"}, add.Specifics)
	require.Equal(t, "Adds numbers", add.Remarks)
	require.Equal(t, "a", add.Parameters.Get(0).Name)
	require.Equal(t, "$2", add.Parameters.Get(1).Name)
	require.Equal(t, 2, add.Parameters.Get(1).Ordinal)

	require.Empty(t, app.Routines.Get(1).Remarks)

	reset := app.Routines.Get(2)
	require.Equal(t, model.Procedure, reset.Type)
	require.Equal(t, map[string]string{"security": "DEFINER"}, reset.Specifics)
}

func TestBuild_Rows(t *testing.T) {
	catalog := build(t, `
CREATE TABLE roles (id INT PRIMARY KEY, name TEXT, active BOOLEAN);
INSERT INTO roles (id, name, active) VALUES (1, 'admin', TRUE), (2, 'member', FALSE);
INSERT INTO roles VALUES (3, 'guest', NULL);`)

	roles, _ := catalog.Schema("public").Tables.Find("roles")
	require.Equal(t, 3, roles.Rows.Len())
	require.Equal(t, map[string]any{"id": int64(1), "name": "admin", "active": true}, roles.Rows.Get(0).Values)
	require.Equal(t, map[string]any{"id": int64(3), "name": "guest", "active": nil}, roles.Rows.Get(2).Values)
	require.Equal(t, "id=2", roles.Rows.Get(1).ObjectName())
}

func TestBuild_Comments(t *testing.T) {
	catalog := build(t, `
CREATE TABLE users (id INT, email TEXT COMMENT 'inline');
CREATE SEQUENCE users_seq;
COMMENT ON TABLE users IS 'People';
COMMENT ON COLUMN users.id IS 'Identifier';
COMMENT ON SEQUENCE users_seq IS 'Ids';`)

	public := catalog.Schema("public")
	users, _ := public.Tables.Find("users")
	require.Equal(t, "People", users.Remarks)

	id, _ := users.Columns.Find("id")
	require.Equal(t, "Identifier", id.Remarks)

	email, _ := users.Columns.Find("email")
	require.Equal(t, "inline", email.Remarks)

	seq, _ := public.Sequences.Find("users_seq")
	require.Equal(t, "Ids", seq.Remarks)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		err  error
	}{
		{
			name: "duplicate table",
			sql:  "CREATE TABLE t (id INT); CREATE TABLE t (id INT);",
			err:  ErrDuplicateObject,
		},
		{
			name: "duplicate column",
			sql:  "CREATE TABLE t (id INT, id TEXT);",
			err:  ErrDuplicateObject,
		},
		{
			name: "duplicate schema",
			sql:  "CREATE SCHEMA app; CREATE SCHEMA app;",
			err:  ErrDuplicateObject,
		},
		{
			name: "view over table name",
			sql:  "CREATE TABLE t (id INT); CREATE VIEW t AS SELECT 1;",
			err:  ErrDuplicateObject,
		},
		{
			name: "two primary keys",
			sql:  "CREATE TABLE t (id INT PRIMARY KEY, other INT, PRIMARY KEY (other));",
			err:  ErrDuplicateObject,
		},
		{
			name: "duplicate function signature",
			sql:  "CREATE FUNCTION f(int) RETURNS int AS 'SELECT 1'; CREATE FUNCTION f(int) RETURNS int AS 'SELECT 2';",
			err:  ErrDuplicateObject,
		},
		{
			name: "index on missing table",
			sql:  "CREATE INDEX i ON nope (id);",
			err:  ErrMissingObject,
		},
		{
			name: "constraint on missing column",
			sql:  "CREATE TABLE t (id INT, UNIQUE (other));",
			err:  ErrMissingObject,
		},
		{
			name: "insert into missing column",
			sql:  "CREATE TABLE t (id INT); INSERT INTO t (nope) VALUES (1);",
			err:  ErrMissingObject,
		},
		{
			name: "setval on missing sequence",
			sql:  "SELECT setval('nope', 1);",
			err:  ErrMissingObject,
		},
		{
			name: "comment on missing column",
			sql:  "CREATE TABLE t (id INT); COMMENT ON COLUMN t.nope IS 'x';",
			err:  ErrMissingObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parser.ParseString(tt.sql)
			require.NoError(t, err)

			_, err = Build("test", parsed)
			require.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("row width mismatch", func(t *testing.T) {
		parsed, err := parser.ParseString("CREATE TABLE t (id INT, name TEXT); INSERT INTO t VALUES (1);")
		require.NoError(t, err)

		_, err = Build("test", parsed)
		require.ErrorContains(t, err, "row 1 has 1 values, expected 2")
	})
}

func TestBuild_IfNotExists(t *testing.T) {
	catalog := build(t, `
CREATE SCHEMA app;
CREATE SCHEMA IF NOT EXISTS app;
CREATE TABLE app.t (id INT);
CREATE TABLE IF NOT EXISTS app.t (id INT, other INT);`)

	tbl, _ := catalog.Schema("app").Tables.Find("t")
	require.Equal(t, 1, tbl.Columns.Len())
}
