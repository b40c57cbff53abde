package parser

type (
	// InsertStmt represents INSERT statements carrying reference data
	// Syntax: INSERT INTO table [( column [, ...] )] VALUES ( value [, ...] ) [, ...];
	InsertStmt struct {
		Table     *QualifiedName `parser:"'INSERT' 'INTO' @@"`
		Columns   []Identifier   `parser:"('(' @(Ident | QuotedIdent | BacktickIdent) (',' @(Ident | QuotedIdent | BacktickIdent))* ')')?"`
		Rows      []*ValuesRow   `parser:"'VALUES' @@ (',' @@)*"`
		Semicolon bool           `parser:"';'"`
	}

	// ValuesRow is a single parenthesised row of values
	ValuesRow struct {
		Values []*Value `parser:"'(' @@ (',' @@)* ')'"`
	}
)
