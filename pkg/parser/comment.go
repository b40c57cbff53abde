package parser

import "strings"

type (
	// CommentStmt represents COMMENT ON statements
	// Syntax: COMMENT ON { SCHEMA | TABLE | VIEW | SEQUENCE | FUNCTION | PROCEDURE | COLUMN } name IS { 'text' | NULL };
	CommentStmt struct {
		Kind      string         `parser:"'COMMENT' 'ON' @('SCHEMA' | 'TABLE' | 'VIEW' | 'SEQUENCE' | 'FUNCTION' | 'PROCEDURE' | 'COLUMN')"`
		Target    *QualifiedName `parser:"@@"`
		Signature *Group         `parser:"@@?"`
		Text      *Text          `parser:"'IS' ( @String"`
		Null      bool           `parser:"     | @'NULL' )"`
		Semicolon bool           `parser:"';'"`
	}
)

// ObjectKind returns the commented object's kind in upper case.
func (s *CommentStmt) ObjectKind() string {
	return strings.ToUpper(s.Kind)
}

// Remarks returns the comment text, or "" when the comment is removed with IS NULL.
func (s *CommentStmt) Remarks() string {
	if s.Text == nil {
		return ""
	}
	return s.Text.String()
}
