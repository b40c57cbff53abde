package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/utils"
)

type (
	// Identifier is a plain, double-quoted or backticked name with its quotes removed.
	Identifier string

	// Text is a string literal with its quotes removed. Dollar-quoted bodies are accepted too.
	Text string

	// Int64 is an optionally signed integer literal.
	Int64 int64

	// Literal is a constant as written in the source: a number, a quoted string, NULL, TRUE,
	// FALSE or a bare word.
	Literal string

	// Value is a literal operand in INSERT rows and option lists.
	Value struct {
		Literal Literal `parser:"@(('-' | '+')? Number | String | Ident)"`
	}

	// SignedInt is an integer operand in sequence options.
	SignedInt struct {
		Value Int64 `parser:"@(('-' | '+')? Number)"`
	}

	// QualifiedName is a dotted name such as public.users.
	QualifiedName struct {
		Parts []Identifier `parser:"@(Ident | QuotedIdent | BacktickIdent) ('.' @(Ident | QuotedIdent | BacktickIdent))*"`
	}

	// DataType is a column, parameter or return type such as VARCHAR(50), NUMERIC(10, 2),
	// DOUBLE PRECISION or TIMESTAMP WITH TIME ZONE.
	DataType struct {
		Name      string   `parser:"@Ident"`
		Modifiers []string `parser:"@('PRECISION' | 'VARYING' | 'UNSIGNED' | ('WITH' | 'WITHOUT') 'TIME' 'ZONE')*"`
		Params    []string `parser:"('(' @(Number | Ident | String) (',' @(Number | Ident | String))* ')')?"`
		Array     bool     `parser:"@('[' ']')?"`
	}

	// Expression is a single operand: a literal, a name, a function call or a parenthesised
	// expression, optionally followed by casts. Its source text is preserved.
	Expression struct {
		Tokens []lexer.Token

		Group *Group   `parser:"(  @@"`
		Sign  string   `parser:"  | @('-' | '+')?"`
		Value string   `parser:"    @(String | Number | Ident | QuotedIdent)"`
		Args  *Group   `parser:"    @@? )"`
		Casts []string `parser:"('::' @Ident)*"`
	}

	// Group is a balanced, parenthesised run of tokens.
	Group struct {
		Tokens []lexer.Token

		Parts []*groupPart `parser:"'(' @@* ')'"`
	}

	groupPart struct {
		Group *Group `parser:"  @@"`
		Token string `parser:"| @!(')' | '(' | ';')"`
	}

	// Fragment is a run of tokens, balanced with respect to parentheses, that ends before
	// an unmatched closing parenthesis or a semicolon. Its source text is preserved.
	Fragment struct {
		Tokens []lexer.Token

		Parts []*groupPart `parser:"@@+"`
	}
)

func (i *Identifier) Capture(values []string) error {
	*i = Identifier(utils.UnquoteIdentifier(strings.Join(values, "")))
	return nil
}

func (i Identifier) String() string { return string(i) }

func (t *Text) Capture(values []string) error {
	*t = Text(utils.UnquoteString(strings.Join(values, "")))
	return nil
}

func (t Text) String() string { return string(t) }

func (n *Int64) Capture(values []string) error {
	v, err := strconv.ParseInt(strings.Join(values, ""), 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid integer: %s", strings.Join(values, ""))
	}

	*n = Int64(v)
	return nil
}

func (l *Literal) Capture(values []string) error {
	*l = Literal(strings.Join(values, ""))
	return nil
}

// Value converts the literal to nil, bool, int64, float64 or string.
func (l Literal) Value() any {
	raw := string(l)
	switch {
	case strings.HasPrefix(raw, "'"):
		return utils.UnquoteString(raw)
	case strings.EqualFold(raw, "NULL"):
		return nil
	case utils.IsBooleanValue(raw):
		return strings.EqualFold(raw, "TRUE")
	case utils.IsNumericValue(raw):
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
		v, _ := strconv.ParseFloat(raw, 64)
		return v
	}
	return raw
}

// String returns the literal with string quotes removed.
func (l Literal) String() string {
	return utils.UnquoteString(string(l))
}

// Name returns the last part of the name.
func (q *QualifiedName) Name() string {
	if q == nil || len(q.Parts) == 0 {
		return ""
	}
	return string(q.Parts[len(q.Parts)-1])
}

// Qualifier returns the part before the name, usually a schema, or "" when there is none.
func (q *QualifiedName) Qualifier() string {
	if q == nil || len(q.Parts) < 2 {
		return ""
	}
	return string(q.Parts[len(q.Parts)-2])
}

func (q *QualifiedName) String() string {
	if q == nil {
		return ""
	}

	parts := make([]string, len(q.Parts))
	for i, p := range q.Parts {
		parts[i] = string(p)
	}
	return strings.Join(parts, ".")
}

// String renders the type in canonical upper case, for example VARCHAR(50) or INT[].
func (d *DataType) String() string {
	if d == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.ToUpper(d.Name))
	for _, m := range d.Modifiers {
		sb.WriteString(" " + strings.ToUpper(m))
	}
	if len(d.Params) > 0 {
		sb.WriteString("(" + strings.Join(d.Params, ", ") + ")")
	}
	if d.Array {
		sb.WriteString("[]")
	}
	return sb.String()
}

// IsSerial reports whether the type is one of the auto-incrementing serial pseudo-types.
func (d *DataType) IsSerial() bool {
	if d == nil {
		return false
	}

	switch strings.ToUpper(d.Name) {
	case "SERIAL", "SMALLSERIAL", "BIGSERIAL", "SERIAL2", "SERIAL4", "SERIAL8":
		return true
	}
	return false
}

func (e *Expression) String() string { return tokenText(e.Tokens) }

// Inner returns the text between the outer parentheses.
func (g *Group) Inner() string {
	text := tokenText(g.Tokens)
	text = strings.TrimPrefix(text, "(")
	text = strings.TrimSuffix(text, ")")
	return strings.TrimSpace(text)
}

func (g *Group) String() string { return tokenText(g.Tokens) }

func (f *Fragment) String() string { return tokenText(f.Tokens) }

// tokenText rebuilds source text from raw tokens, dropping comments.
func tokenText(tokens []lexer.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if strings.HasPrefix(t.Value, "--") || strings.HasPrefix(t.Value, "/*") {
			continue
		}
		sb.WriteString(t.Value)
	}
	return strings.TrimSpace(sb.String())
}
