package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type (
	// CreateViewStmt represents CREATE VIEW statements
	// Syntax: CREATE [OR REPLACE] [MATERIALIZED] VIEW [IF NOT EXISTS] name [( column [, ...] )] AS query [WITH [CASCADED | LOCAL] CHECK OPTION];
	CreateViewStmt struct {
		Materialized bool             `parser:"@'MATERIALIZED'? 'VIEW'"`
		IfNotExists  bool             `parser:"@('IF' 'NOT' 'EXISTS')?"`
		Name         *QualifiedName   `parser:"@@"`
		Columns      []Identifier     `parser:"('(' @(Ident | QuotedIdent | BacktickIdent) (',' @(Ident | QuotedIdent | BacktickIdent))* ')')?"`
		Query        *ViewQuery       `parser:"'AS' @@"`
		CheckOption  *ViewCheckOption `parser:"@@?"`
	}

	// ViewQuery is the defining query of a view, kept as source text
	ViewQuery struct {
		Tokens []lexer.Token

		Parts []*queryPart `parser:"@@+"`
	}

	queryPart struct {
		Group *Group `parser:"  @@"`
		Token string `parser:"| @!(';' | ')' | '(' | 'WITH' ('CASCADED' | 'LOCAL')? 'CHECK')"`
	}

	// ViewCheckOption represents WITH [CASCADED | LOCAL] CHECK OPTION
	ViewCheckOption struct {
		Level string `parser:"'WITH' @('CASCADED' | 'LOCAL')? 'CHECK' 'OPTION'"`
	}
)

func (q *ViewQuery) String() string { return tokenText(q.Tokens) }

// String returns the check option level, CASCADED unless LOCAL was given.
func (o *ViewCheckOption) String() string {
	if o == nil {
		return ""
	}
	if o.Level == "" {
		return "CASCADED"
	}
	return strings.ToUpper(o.Level)
}
