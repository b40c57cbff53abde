package parser

import "strings"

type (
	// CreateSchemaStmt represents CREATE SCHEMA statements
	// Syntax: CREATE SCHEMA [IF NOT EXISTS] name [AUTHORIZATION role];
	CreateSchemaStmt struct {
		IfNotExists   bool        `parser:"'SCHEMA' @('IF' 'NOT' 'EXISTS')?"`
		Name          Identifier  `parser:"@(Ident | QuotedIdent | BacktickIdent)"`
		Authorization *Identifier `parser:"('AUTHORIZATION' @(Ident | QuotedIdent))?"`
	}

	// CreateTableStmt represents CREATE TABLE statements
	// Syntax: CREATE TABLE [IF NOT EXISTS] [schema.]name ( element [, ...] ) [WITH ( param = value [, ...] )] [option [= value] ...];
	CreateTableStmt struct {
		IfNotExists bool            `parser:"'TABLE' @('IF' 'NOT' 'EXISTS')?"`
		Name        *QualifiedName  `parser:"@@"`
		Elements    []*TableElement `parser:"'(' @@ (',' @@)* ')'"`
		With        []*StorageParam `parser:"('WITH' '(' @@ (',' @@)* ')')?"`
		Options     []*TableOption  `parser:"@@*"`
	}

	// TableElement is a column definition or a table-level constraint
	TableElement struct {
		Constraint *TableConstraint `parser:"  @@"`
		Column     *ColumnDef       `parser:"| @@"`
	}

	// ColumnDef represents a single column definition
	// Syntax: name type [constraint ...]
	ColumnDef struct {
		Name        Identifier          `parser:"@(Ident | QuotedIdent | BacktickIdent)"`
		Type        *DataType           `parser:"@@"`
		Constraints []*ColumnConstraint `parser:"@@*"`
	}

	// ColumnConstraint represents an inline column constraint or attribute
	ColumnConstraint struct {
		Name          *Identifier `parser:"('CONSTRAINT' @(Ident | QuotedIdent))?"`
		NotNull       bool        `parser:"(  @('NOT' 'NULL')"`
		Null          bool        `parser:" | @'NULL'"`
		Default       *Expression `parser:" | 'DEFAULT' @@"`
		OnUpdate      *Expression `parser:" | 'ON' 'UPDATE' @@"`
		PrimaryKey    bool        `parser:" | @('PRIMARY' 'KEY')"`
		Unique        bool        `parser:" | @'UNIQUE'"`
		AutoIncrement bool        `parser:" | @('AUTO_INCREMENT' | 'AUTOINCREMENT' | 'GENERATED' ('ALWAYS' | 'BY' 'DEFAULT') 'AS' 'IDENTITY')"`
		References    *References `parser:" | @@"`
		Check         *Fragment   `parser:" | 'CHECK' '(' @@ ')'"`
		Collate       *Identifier `parser:" | 'COLLATE' @(Ident | QuotedIdent)"`
		Comment       *Text       `parser:" | 'COMMENT' @String )"`
	}

	// TableConstraint represents a table-level constraint
	// Syntax: [CONSTRAINT name] { PRIMARY KEY (cols) | UNIQUE (cols) | FOREIGN KEY (cols) REFERENCES ... | CHECK (expr) }
	TableConstraint struct {
		Name       *Identifier  `parser:"('CONSTRAINT' @(Ident | QuotedIdent | BacktickIdent))?"`
		PrimaryKey []Identifier `parser:"(  'PRIMARY' 'KEY' '(' @(Ident | QuotedIdent | BacktickIdent) (',' @(Ident | QuotedIdent | BacktickIdent))* ')'"`
		Unique     []Identifier `parser:" | 'UNIQUE' 'KEY'? '(' @(Ident | QuotedIdent | BacktickIdent) (',' @(Ident | QuotedIdent | BacktickIdent))* ')'"`
		ForeignKey *ForeignKey  `parser:" | @@"`
		Check      *Fragment    `parser:" | 'CHECK' '(' @@ ')' )"`
	}

	// ForeignKey represents FOREIGN KEY (cols) REFERENCES ...
	ForeignKey struct {
		Columns    []Identifier `parser:"'FOREIGN' 'KEY' '(' @(Ident | QuotedIdent | BacktickIdent) (',' @(Ident | QuotedIdent | BacktickIdent))* ')'"`
		References *References  `parser:"@@"`
	}

	// References represents REFERENCES table [(cols)] [ON DELETE action] [ON UPDATE action]
	References struct {
		Table   *QualifiedName     `parser:"'REFERENCES' @@"`
		Columns []Identifier       `parser:"('(' @(Ident | QuotedIdent | BacktickIdent) (',' @(Ident | QuotedIdent | BacktickIdent))* ')')?"`
		Actions []*ReferenceAction `parser:"@@*"`
	}

	// ReferenceAction represents ON DELETE / ON UPDATE clauses
	ReferenceAction struct {
		Event  string   `parser:"'ON' @('DELETE' | 'UPDATE')"`
		Action []string `parser:"@('CASCADE' | 'RESTRICT' | 'NO' 'ACTION' | 'SET' ('NULL' | 'DEFAULT'))"`
	}

	// StorageParam represents a key = value pair in a WITH (...) clause
	StorageParam struct {
		Key   Identifier `parser:"@Ident '='"`
		Value Value      `parser:"@@"`
	}

	// TableOption represents trailing table options such as ENGINE = InnoDB or COMMENT = 'text'
	TableOption struct {
		Key   []string `parser:"'DEFAULT'? @Ident+ '='"`
		Value Value    `parser:"@@"`
	}

	// AlterTableStmt represents the ALTER TABLE ... ADD CONSTRAINT form emitted by schema dumps
	// Syntax: ALTER TABLE [IF EXISTS] [ONLY] name ADD table_constraint;
	AlterTableStmt struct {
		IfExists   bool             `parser:"'ALTER' 'TABLE' @('IF' 'EXISTS')? 'ONLY'?"`
		Name       *QualifiedName   `parser:"@@"`
		Constraint *TableConstraint `parser:"'ADD' @@"`
		Semicolon  bool             `parser:"';'"`
	}
)

// OnDelete returns the ON DELETE action, for example "CASCADE", or "" when none is given.
func (r *References) OnDelete() string {
	if r == nil {
		return ""
	}

	for _, a := range r.Actions {
		if strings.EqualFold(a.Event, "DELETE") {
			return strings.ToUpper(strings.Join(a.Action, " "))
		}
	}
	return ""
}

// OptionKey returns the option name in upper case with words separated by single spaces.
func (o *TableOption) OptionKey() string {
	return strings.ToUpper(strings.Join(o.Key, " "))
}

// Columns returns the column definitions in declaration order.
func (s *CreateTableStmt) Columns() []*ColumnDef {
	var out []*ColumnDef
	for _, e := range s.Elements {
		if e.Column != nil {
			out = append(out, e.Column)
		}
	}
	return out
}

// Constraints returns the table-level constraints in declaration order.
func (s *CreateTableStmt) Constraints() []*TableConstraint {
	var out []*TableConstraint
	for _, e := range s.Elements {
		if e.Constraint != nil {
			out = append(out, e.Constraint)
		}
	}
	return out
}
