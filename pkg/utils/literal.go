package utils

import (
	"strconv"
	"strings"
)

// UnquoteString removes the quotes around an SQL string literal, collapsing doubled single
// quotes. Dollar-quoted strings ($$...$$ or $tag$...$tag$) lose their delimiters. Anything
// else is returned unchanged.
func UnquoteString(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}

	if strings.HasPrefix(s, "$") {
		if end := strings.IndexByte(s[1:], '$'); end >= 0 {
			tag := s[:end+2]
			if len(s) >= 2*len(tag) && strings.HasSuffix(s, tag) {
				return s[len(tag) : len(s)-len(tag)]
			}
		}
	}

	return s
}

// IsNumericValue reports whether value is an integer or decimal literal.
func IsNumericValue(value string) bool {
	if value == "" || strings.ContainsAny(value, "nN") {
		return false
	}

	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// IsBooleanValue reports whether value is TRUE or FALSE in any case.
func IsBooleanValue(value string) bool {
	return strings.EqualFold(value, "true") || strings.EqualFold(value, "false")
}
