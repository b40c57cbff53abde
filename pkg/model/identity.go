package model

import (
	"maps"
	"sort"
	"strings"

	"github.com/pseudomuto/schemadelta/pkg/compare"
)

var (
	likePolicy   = compare.IncludeOnly("name")
	contentNames = compare.FoldSet("name", "specificName", "ordinal")
	parentNames  = compare.FoldSet("schemaName")
)

// contentPolicy ignores the naming properties of the two compared objects only. Nested
// objects keep their names but not the name of the schema holding them.
type contentPolicy struct {
	a, b compare.Object
}

func (p contentPolicy) ReferenceEquals(a, b any) (bool, bool) {
	return compare.Default.ReferenceEquals(a, b)
}

func (p contentPolicy) ValueEquals(name string, ownerA, ownerB compare.Object, a, b any, eq func() bool) bool {
	if _, skip := parentNames[strings.ToLower(name)]; skip {
		return true
	}
	if ownerA == p.a && ownerB == p.b {
		if _, skip := contentNames[strings.ToLower(name)]; skip {
			return true
		}
	}
	return eq()
}

func (p contentPolicy) Result(_, _ compare.Object, equal bool) bool {
	return equal
}

// Like reports whether a and b refer to the same logical entity: the same kind of object
// with the same name.
func Like(a, b Object) bool {
	if compare.IsNil(a) || compare.IsNil(b) {
		return compare.IsNil(a) && compare.IsNil(b)
	}
	return a.Kind() == b.Kind() && compare.Equal(a, b, likePolicy)
}

// SameContent reports whether a and b hold the same content regardless of their names and
// positions.
func SameContent(a, b Object) bool {
	if compare.IsNil(a) || compare.IsNil(b) {
		return compare.IsNil(a) && compare.IsNil(b)
	}
	return a.Kind() == b.Kind() && compare.Equal(a, b, contentPolicy{a: a, b: b})
}

// RenamePair represents a rename from OldName to NewName.
type RenamePair struct {
	Kind    Kind
	OldName string
	NewName string
}

// DetectRenames identifies renames between the current and target objects.
//
// An object is considered renamed when:
//  1. it exists in current but not in target (by name)
//  2. a target object has the same content (SameContent)
//  3. that target object doesn't exist in current (by name)
//
// Objects not involved in a rename are returned in remainingCurrent (drops) and
// remainingTarget (creates). Names are visited in sorted order so the result is
// deterministic.
func DetectRenames[T Object](current, target map[string]T) (
	renames []RenamePair,
	remainingCurrent map[string]T,
	remainingTarget map[string]T,
) {
	remainingCurrent = maps.Clone(current)
	remainingTarget = maps.Clone(target)
	if remainingCurrent == nil {
		remainingCurrent = make(map[string]T)
	}
	if remainingTarget == nil {
		remainingTarget = make(map[string]T)
	}

	matchedTarget := make(map[string]bool)
	targetNames := sortedKeys(target)

	for _, currentName := range sortedKeys(current) {
		if _, exists := target[currentName]; exists {
			continue
		}
		currentObj := current[currentName]

		for _, targetName := range targetNames {
			if matchedTarget[targetName] {
				continue
			}
			if _, exists := current[targetName]; exists {
				continue
			}

			if SameContent(currentObj, target[targetName]) {
				renames = append(renames, RenamePair{
					Kind:    currentObj.Kind(),
					OldName: currentName,
					NewName: targetName,
				})
				matchedTarget[targetName] = true
				delete(remainingCurrent, currentName)
				delete(remainingTarget, targetName)
				break
			}
		}
	}

	return renames, remainingCurrent, remainingTarget
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
