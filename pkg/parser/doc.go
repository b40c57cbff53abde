// Package parser provides a participle-based parser for a portable subset of SQL DDL.
//
// The grammar covers the statements a schema dump needs to describe a relational catalog:
//
//   - CREATE SCHEMA
//   - CREATE TABLE with column constraints, table constraints, WITH (...) storage
//     parameters and trailing table options
//   - ALTER TABLE ... ADD CONSTRAINT
//   - CREATE [UNIQUE] INDEX, including expression columns and partial indexes
//   - CREATE SEQUENCE and SELECT setval(...)
//   - CREATE [MATERIALIZED] VIEW
//   - CREATE FUNCTION and CREATE PROCEDURE with quoted or dollar-quoted bodies
//   - CREATE TRIGGER
//   - COMMENT ON
//   - INSERT INTO ... VALUES for reference data
//
// Keywords are case-insensitive. Identifiers may be double-quoted or backticked and are
// captured without their quotes. Expressions the parser does not interpret (defaults,
// check clauses, index predicates, view queries) keep their source text.
//
// Basic usage:
//
//	sql, err := parser.ParseString(`
//		CREATE TABLE users (id BIGSERIAL PRIMARY KEY, email TEXT NOT NULL);
//		CREATE UNIQUE INDEX users_email_idx ON users (lower(email));
//	`)
//
//	// Parse from file; errors carry the file name and position
//	sql, err := parser.ParseFile("schema/001_users.sql")
//
// The returned SQL value is consumed by the schema package, which builds a catalog from it.
package parser
