package parser

import "strings"

type (
	// CreateRoutineStmt represents CREATE FUNCTION and CREATE PROCEDURE statements
	// Syntax: CREATE [OR REPLACE] { FUNCTION | PROCEDURE } name ( [param [, ...]] ) [RETURNS type] [LANGUAGE lang] [volatility] AS body;
	CreateRoutineStmt struct {
		Type    string           `parser:"@('FUNCTION' | 'PROCEDURE')"`
		Name    *QualifiedName   `parser:"@@"`
		Params  []*RoutineParam  `parser:"'(' (@@ (',' @@)*)? ')'"`
		Options []*RoutineOption `parser:"@@*"`
	}

	// RoutineParam represents a single routine parameter
	// Syntax: [IN | OUT | INOUT] [name] type [DEFAULT expr]
	RoutineParam struct {
		Mode    []string    `parser:"@('IN' 'OUT' | 'INOUT' | 'IN' | 'OUT' | 'VARIADIC')?"`
		Name    *Identifier `parser:"(@(Ident | QuotedIdent) (?= Ident))?"`
		Type    *DataType   `parser:"@@"`
		Default *Expression `parser:"(('DEFAULT' | '=') @@)?"`
	}

	// RoutineOption is a single routine characteristic
	RoutineOption struct {
		Returns    *ReturnType `parser:"(  'RETURNS' @@"`
		Language   *Literal    `parser:" | 'LANGUAGE' @(Ident | String)"`
		Volatility string      `parser:" | @('IMMUTABLE' | 'STABLE' | 'VOLATILE' | 'DETERMINISTIC' | 'STRICT')"`
		Security   []string    `parser:" | @('SECURITY' ('DEFINER' | 'INVOKER'))"`
		Body       *Text       `parser:" | 'AS' @(String | DollarQuoted) )"`
	}

	// ReturnType represents RETURNS type, RETURNS SETOF type or RETURNS TABLE (...)
	ReturnType struct {
		Table *Group    `parser:"(  'TABLE' @@"`
		SetOf bool      `parser:" | @'SETOF'?"`
		Type  *DataType `parser:"    @@ )"`
	}
)

// ParamMode returns IN, OUT or INOUT. Parameters without a mode are IN.
func (p *RoutineParam) ParamMode() string {
	mode := strings.ToUpper(strings.Join(p.Mode, ""))
	if mode == "" {
		return "IN"
	}
	return mode
}

func (r *ReturnType) String() string {
	switch {
	case r == nil:
		return ""
	case r.Table != nil:
		return "TABLE(" + r.Table.Inner() + ")"
	case r.SetOf:
		return "SETOF " + r.Type.String()
	}
	return r.Type.String()
}

// Returns returns the declared return type, or "" for procedures.
func (s *CreateRoutineStmt) Returns() string {
	for _, o := range s.Options {
		if o.Returns != nil {
			return o.Returns.String()
		}
	}
	return ""
}

// Language returns the declared language in lower case.
func (s *CreateRoutineStmt) Language() string {
	for _, o := range s.Options {
		if o.Language != nil {
			return strings.ToLower(o.Language.String())
		}
	}
	return ""
}

// Body returns the routine body without its quotes.
func (s *CreateRoutineStmt) Body() string {
	for _, o := range s.Options {
		if o.Body != nil {
			return o.Body.String()
		}
	}
	return ""
}
