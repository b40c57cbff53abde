// Package utils provides small helpers shared by the parser, schema and CLI packages.
//
// # Identifiers (identifier.go)
//
//	utils.UnquoteIdentifier(`"Order Items"`)  // Order Items
//	utils.QualifiedName("public", "users")    // public.users
//	utils.SplitQualifiedName("public.users")  // "public", "users"
//
// # Literals (literal.go)
//
//	utils.UnquoteString(`'it''s'`)  // it's
//	utils.UnquoteString(`$$ SELECT 1 $$`) // " SELECT 1 "
//	utils.IsNumericValue("-12.5")   // true
//	utils.IsBooleanValue("TRUE")    // true
//
// # Pointers (ptr.go)
//
//	name := utils.Ptr("users") // *string
package utils
