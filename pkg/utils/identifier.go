package utils

import "strings"

// UnquoteIdentifier removes the double quotes or backticks around an SQL identifier and
// collapses doubled quote characters:
//
//	UnquoteIdentifier(`"Order Items"`) // Order Items
//	UnquoteIdentifier("`users`")       // users
//	UnquoteIdentifier(`"a""b"`)        // a"b
//
// Unquoted identifiers are returned unchanged.
func UnquoteIdentifier(name string) string {
	if len(name) < 2 {
		return name
	}

	quote := name[0]
	if (quote != '"' && quote != '`') || name[len(name)-1] != quote {
		return name
	}

	q := string(quote)
	return strings.ReplaceAll(name[1:len(name)-1], q+q, q)
}

// QualifiedName joins a qualifier and a name with a dot, omitting an empty qualifier.
func QualifiedName(qualifier, name string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}

// SplitQualifiedName splits "schema.name" into its parts. A name without a dot has an empty
// qualifier.
func SplitQualifiedName(name string) (string, string) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
