// Package compare provides policy-driven structural equality for schema objects.
//
// Schema objects expose their state as an ordered list of named properties. Equality is an
// explicit fold over those properties, steered by a Policy that decides how each pair of
// values is compared and whether a comparison happens at all. The same fold backs full
// structural equality, identity checks ("is this the same logical entity?") and content
// checks ("is this the same thing under a different name?").
//
// # Policies
//
//   - Default compares every property.
//   - IncludeOnly compares only the named properties (identity checks).
//   - Excluding compares everything except the named properties (rename detection).
//
// Policies are stateless values and may be shared between goroutines.
//
// # Usage
//
//	// full structural equality
//	equal := compare.Equal(current, target, compare.Default)
//
//	// same logical entity?
//	same := compare.Equal(current, target, compare.IncludeOnly("name"))
//
//	// same content under another name?
//	renamed := compare.Equal(current, target, compare.Excluding("name"))
package compare
