package parser

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// ddlLexer defines the lexer for the portable DDL subset
	ddlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "DollarQuoted", Pattern: `(?s)\$([a-zA-Z_][a-zA-Z0-9_]*)?\$.*?\$([a-zA-Z_][a-zA-Z0-9_]*)?\$`},
		{Name: "String", Pattern: `'([^']|'')*'`},
		{Name: "QuotedIdent", Pattern: `"([^"]|"")*"`},
		{Name: "BacktickIdent", Pattern: "`([^`]|``)*`"},
		{Name: "Number", Pattern: `\d+(\.\d+)?([eE][-+]?\d+)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$]*`},
		{Name: "Operator", Pattern: `::|<>|!=|<=|>=|\|\||=>`},
		{Name: "Punct", Pattern: `[(),.;=+\-*/%<>\[\]!:|&^~?@#{}$]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	// parser is the participle parser instance for the DDL subset
	parser = participle.MustBuild[SQL](
		participle.Lexer(ddlLexer),
		participle.Elide("Comment", "MultilineComment", "Whitespace"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(4),
	)
)

type (
	// SQL is a parsed script
	SQL struct {
		Statements []*Statement `parser:"@@*"`
	}

	// Statement represents any supported statement
	Statement struct {
		Create  *CreateStmt     `parser:"  @@"`
		Alter   *AlterTableStmt `parser:"| @@"`
		Comment *CommentStmt    `parser:"| @@"`
		Insert  *InsertStmt     `parser:"| @@"`
		Setval  *SetvalStmt     `parser:"| @@"`
	}

	// CreateStmt represents CREATE [OR REPLACE] statements
	CreateStmt struct {
		OrReplace bool                `parser:"'CREATE' @('OR' 'REPLACE')?"`
		Schema    *CreateSchemaStmt   `parser:"(  @@"`
		Table     *CreateTableStmt    `parser:" | @@"`
		Index     *CreateIndexStmt    `parser:" | @@"`
		Sequence  *CreateSequenceStmt `parser:" | @@"`
		View      *CreateViewStmt     `parser:" | @@"`
		Routine   *CreateRoutineStmt  `parser:" | @@"`
		Trigger   *CreateTriggerStmt  `parser:" | @@ )"`
		Semicolon bool                `parser:"';'"`
	}
)

// Parse parses DDL statements from an io.Reader.
//
// Example usage:
//
//	file, err := os.Open("schema.sql")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	sql, err := parser.Parse(file)
//	if err != nil {
//		log.Fatalf("Parse error: %v", err)
//	}
//
//	for _, stmt := range sql.Statements {
//		if stmt.Create != nil && stmt.Create.Table != nil {
//			fmt.Printf("CREATE TABLE: %s\n", stmt.Create.Table.Name)
//		}
//	}
//
// Returns an error if the reader cannot be read or contains invalid SQL.
func Parse(reader io.Reader) (*SQL, error) {
	return parse("", reader)
}

// ParseString parses DDL statements from a string.
//
// Example usage:
//
//	sql, err := parser.ParseString(`
//		CREATE SCHEMA app;
//		CREATE TABLE app.users (
//			id BIGSERIAL PRIMARY KEY,
//			email VARCHAR(255) NOT NULL UNIQUE,
//			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
//		);
//		CREATE INDEX users_email_idx ON app.users USING btree (lower(email));
//		INSERT INTO app.roles (id, name) VALUES (1, 'admin'), (2, 'member');
//	`)
func ParseString(sql string) (*SQL, error) {
	return parse("", strings.NewReader(sql))
}

// ParseFile parses the DDL statements in the file at path. Error positions name the file.
func ParseFile(path string) (*SQL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return parse(path, f)
}

func parse(filename string, reader io.Reader) (*SQL, error) {
	sql, err := parser.Parse(filename, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse SQL")
	}

	return sql, nil
}
