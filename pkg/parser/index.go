package parser

import "strings"

type (
	// CreateIndexStmt represents CREATE INDEX statements
	// Syntax: CREATE [UNIQUE] INDEX [CONCURRENTLY] [IF NOT EXISTS] name ON [ONLY] table [USING method] ( column [, ...] ) [WHERE predicate];
	CreateIndexStmt struct {
		Unique      bool           `parser:"@'UNIQUE'? 'INDEX' 'CONCURRENTLY'?"`
		IfNotExists bool           `parser:"@('IF' 'NOT' 'EXISTS')?"`
		Name        Identifier     `parser:"@(Ident | QuotedIdent | BacktickIdent)"`
		Table       *QualifiedName `parser:"'ON' 'ONLY'? @@"`
		Method      *Identifier    `parser:"('USING' @Ident)?"`
		Columns     []*IndexColumn `parser:"'(' @@ (',' @@)* ')'"`
		Where       *Fragment      `parser:"('WHERE' @@)?"`
	}

	// IndexColumn is an indexed column or expression with an optional sort order
	IndexColumn struct {
		Name  *Identifier `parser:"(  @(Ident | QuotedIdent | BacktickIdent) (?! '(' )"`
		Expr  *Expression `parser:" | @@ )"`
		Order string      `parser:"@('ASC' | 'DESC')?"`
	}
)

// String returns the column name, or the expression text for expression indexes, followed
// by DESC when the column is sorted in descending order.
func (c *IndexColumn) String() string {
	text := ""
	switch {
	case c.Name != nil:
		text = c.Name.String()
	case c.Expr != nil:
		text = c.Expr.String()
	}

	if strings.EqualFold(c.Order, "DESC") {
		text += " DESC"
	}
	return text
}
