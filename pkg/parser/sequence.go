package parser

type (
	// CreateSequenceStmt represents CREATE SEQUENCE statements
	// Syntax: CREATE SEQUENCE [IF NOT EXISTS] name [option ...];
	CreateSequenceStmt struct {
		IfNotExists bool              `parser:"'SEQUENCE' @('IF' 'NOT' 'EXISTS')?"`
		Name        *QualifiedName    `parser:"@@"`
		Options     []*SequenceOption `parser:"@@*"`
	}

	// SequenceOption is a single sequence option
	SequenceOption struct {
		NoMinValue bool           `parser:"(  @('NO' 'MINVALUE')"`
		NoMaxValue bool           `parser:" | @('NO' 'MAXVALUE')"`
		NoCycle    bool           `parser:" | @('NO' 'CYCLE')"`
		Cycle      bool           `parser:" | @'CYCLE'"`
		Increment  *SignedInt     `parser:" | 'INCREMENT' 'BY'? @@"`
		MinValue   *SignedInt     `parser:" | 'MINVALUE' @@"`
		MaxValue   *SignedInt     `parser:" | 'MAXVALUE' @@"`
		Start      *SignedInt     `parser:" | 'START' 'WITH'? @@"`
		Cache      *SignedInt     `parser:" | 'CACHE' @@"`
		As         *DataType      `parser:" | 'AS' @@"`
		OwnedBy    *QualifiedName `parser:" | 'OWNED' 'BY' @@ )"`
	}

	// SetvalStmt represents the setval call schema dumps use to record a sequence's position
	// Syntax: SELECT [pg_catalog.]setval('name', value [, is_called]);
	SetvalStmt struct {
		Sequence  Text      `parser:"'SELECT' (Ident '.')? 'SETVAL' '(' @String"`
		Value     SignedInt `parser:"',' @@"`
		IsCalled  *string   `parser:"(',' @Ident)? ')'"`
		Semicolon bool      `parser:"';'"`
	}
)
