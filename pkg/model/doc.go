// Package model provides the relational schema object graph compared by the diff engine.
//
// A graph is rooted at a Catalog holding Schemas, which in turn hold Tables, Views,
// Sequences and Routines. Tables own ordered Columns plus Constraints, Indexes, Triggers
// and reference-data Rows. Every object implements compare.Object by exposing its state
// as an ordered list of named properties, so the same values drive structural equality,
// identity checks and difference trees.
//
// Children live in a List, an insertion-ordered container that sets the parent link when
// an element is added and renumbers ordinals for positional objects (columns and routine
// parameters):
//
//	users := model.NewTable("users")
//	users.Columns.Add(
//		&model.Column{Naming: model.Naming{Name: "id"}, DataType: "INT"},
//		&model.Column{Naming: model.Naming{Name: "email"}, DataType: "TEXT"},
//	)
//
//	schema := model.NewSchema("public")
//	schema.Tables.Add(users)
//
// # Identity
//
// Like reports whether two objects are the same logical entity (same kind and name),
// while SameContent reports whether they hold the same content regardless of name. The
// latter drives rename detection:
//
//	renames, dropped, created := model.DetectRenames(
//		model.ByName(original.Tables),
//		model.ByName(target.Tables),
//	)
//
// Shared properties are provided by small embedded value types (Naming, Documented,
// Timestamps) rather than per-property interfaces.
package model
