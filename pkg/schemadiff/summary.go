package schemadiff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pseudomuto/schemadelta/pkg/compare"
	"github.com/pseudomuto/schemadelta/pkg/diff"
)

// Summary tallies the changes of a difference tree.
type Summary struct {
	// Kinds counts changed objects by kind and state, for example Column: {Added: 2}.
	Kinds map[string]map[diff.State]int

	// Properties counts changed leaf properties by name. Map-valued properties are counted
	// per key, for example specifics.engine.
	Properties map[string]int
}

// Summarize tallies the changes below root.
func Summarize(root diff.Node) *Summary {
	s := &Summary{
		Kinds:      diff.Count(root),
		Properties: make(map[string]int),
	}

	diff.Walk(root, func(n diff.Node) bool {
		leaf, ok := n.(*diff.ScalarDiff)
		if !ok || !leaf.State().Changed() {
			return true
		}

		for _, d := range leaf.Expand() {
			s.Properties[d.PropertyName()]++
		}
		return true
	})

	return s
}

// Empty reports whether nothing changed.
func (s *Summary) Empty() bool {
	return len(s.Kinds) == 0 && len(s.Properties) == 0
}

// String renders one line per kind, then one line listing the changed properties:
//
//	Column: 1 added, 1 deleted
//	Table: 1 modified
//	properties: dataType=1, specifics.engine=1
func (s *Summary) String() string {
	if s.Empty() {
		return "no changes"
	}

	var lines []string
	for _, kind := range compare.UnionKeys(s.Kinds, nil) {
		counts := s.Kinds[kind]

		var parts []string
		for _, state := range []diff.State{diff.Added, diff.Deleted, diff.Modified} {
			if n := counts[state]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(state.String())))
			}
		}
		lines = append(lines, kind+": "+strings.Join(parts, ", "))
	}

	if len(s.Properties) > 0 {
		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s=%d", name, s.Properties[name])
		}
		lines = append(lines, "properties: "+strings.Join(parts, ", "))
	}

	return strings.Join(lines, "\n")
}
