// Package schema builds model.Catalog graphs from DDL files.
//
// A schema is described by plain DDL: CREATE SCHEMA, TABLE, INDEX, SEQUENCE, VIEW, FUNCTION,
// PROCEDURE and TRIGGER statements, ALTER TABLE ... ADD CONSTRAINT, COMMENT ON, INSERT rows
// for reference data and setval calls for sequence positions. Files can pull in other files
// with an include directive:
//
//	CREATE SCHEMA app;
//	-- schemadelta:include tables/users.sql
//
// Usage:
//
//	// A single file and everything it includes
//	current, err := schema.LoadFile("db/main.sql")
//
//	// Every .sql file in a directory, parsed concurrently
//	target, err := schema.LoadDir(ctx, "db/next")
//
//	// Parsed statements from elsewhere
//	sql, _ := parser.ParseString("CREATE TABLE t (id INT PRIMARY KEY);")
//	catalog, err := schema.Build("inline", sql)
//
// Errors wrap ErrDuplicateObject when an object is created twice, ErrMissingObject when a
// statement refers to something that was never created and ErrIncludeCycle when includes loop.
package schema
