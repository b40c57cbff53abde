package compare

import (
	"maps"
	"slices"
	"strings"
)

// Slices reports whether a and b have the same length and eq holds for every pair of
// elements at the same index. Nil and empty slices are equal.
func Slices[T any](a, b []T, eq func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// UnionKeys returns the sorted union of the keys of both maps.
//
//	UnionKeys(map[string]int{"b": 1}, map[string]int{"a": 2, "b": 3}) // ["a", "b"]
func UnionKeys[V any](a, b map[string]V) []string {
	keys := slices.Collect(maps.Keys(a))
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}

	slices.Sort(keys)
	return keys
}

// FoldSet builds a case-insensitive lookup set from names.
func FoldSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}
