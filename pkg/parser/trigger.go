package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type (
	// CreateTriggerStmt represents CREATE TRIGGER statements
	// Syntax: CREATE [OR REPLACE] TRIGGER name { BEFORE | AFTER | INSTEAD OF } event [OR ...] ON table [FOR [EACH] { ROW | STATEMENT }] [WHEN ( condition )] EXECUTE { FUNCTION | PROCEDURE } name ( [args] );
	CreateTriggerStmt struct {
		Name        Identifier      `parser:"'TRIGGER' @(Ident | QuotedIdent | BacktickIdent)"`
		Timing      []string        `parser:"@('BEFORE' | 'AFTER' | 'INSTEAD' 'OF')"`
		Events      []*TriggerEvent `parser:"@@ ('OR' @@)*"`
		Table       *QualifiedName  `parser:"'ON' @@"`
		Orientation string          `parser:"('FOR' 'EACH'? @('ROW' | 'STATEMENT'))?"`
		When        *Fragment       `parser:"('WHEN' '(' @@ ')')?"`
		Action      *TriggerAction  `parser:"'EXECUTE' ('FUNCTION' | 'PROCEDURE') @@"`
	}

	// TriggerEvent is INSERT, DELETE, TRUNCATE or UPDATE [OF columns]
	TriggerEvent struct {
		Kind    string       `parser:"@('INSERT' | 'UPDATE' | 'DELETE' | 'TRUNCATE')"`
		Columns []Identifier `parser:"('OF' @(Ident | QuotedIdent) (',' @(Ident | QuotedIdent))*)?"`
	}

	// TriggerAction is the routine call a trigger executes
	TriggerAction struct {
		Tokens []lexer.Token

		Function *QualifiedName `parser:"@@"`
		Args     *Group         `parser:"@@"`
	}
)

// TimingString returns BEFORE, AFTER or INSTEAD OF.
func (s *CreateTriggerStmt) TimingString() string {
	return strings.ToUpper(strings.Join(s.Timing, " "))
}

// EventNames returns the upper-case event names in declaration order.
func (s *CreateTriggerStmt) EventNames() []string {
	out := make([]string, len(s.Events))
	for i, e := range s.Events {
		out[i] = strings.ToUpper(e.Kind)
	}
	return out
}

// OrientationString returns ROW or STATEMENT. Triggers without FOR EACH fire per statement.
func (s *CreateTriggerStmt) OrientationString() string {
	if s.Orientation == "" {
		return "STATEMENT"
	}
	return strings.ToUpper(s.Orientation)
}

func (a *TriggerAction) String() string { return tokenText(a.Tokens) }
