package diff

import (
	"log/slog"

	"github.com/pseudomuto/schemadelta/pkg/compare"
	lcs "github.com/yudai/golcs"
)

// alignment pairs the elements of an original and a target sequence.
//
// lcsO and lcsT map the indices of elements taking part in the longest common
// subsequence to their partner. rescued maps target indices to the original element they
// were paired with by name; consumed marks those originals.
type alignment struct {
	lcsO     map[int]int
	lcsT     map[int]int
	rescued  map[int]int
	consumed map[int]bool
}

func align(o, t []compare.Object, original, target compare.Sequence, p compare.Policy, columnar bool) *alignment {
	a := &alignment{
		lcsO:     make(map[int]int),
		lcsT:     make(map[int]int),
		rescued:  make(map[int]int),
		consumed: make(map[int]bool),
	}

	if len(o) > 0 && len(t) > 0 {
		left, right := tokenize(o, t, p)
		for _, pair := range lcs.New(left, right).IndexPairs() {
			a.lcsO[pair.Left] = pair.Right
			a.lcsT[pair.Right] = pair.Left
		}
	}

	namedO, okO := original.(compare.NamedSequence)
	namedT, okT := target.(compare.NamedSequence)

	if columnar && okO && okT {
		// Name-first from the original side, then the symmetric pass for what is left.
		a.rescueFromOriginal(o, t, namedT)
	}
	if okO {
		a.rescueFromTarget(o, t, namedO)
	}
	return a
}

// tokenize maps every element to the id of its equivalence class so the LCS can compare
// tokens by value. Target elements equal to no original get an id of their own.
func tokenize(o, t []compare.Object, p compare.Policy) ([]any, []any) {
	left := make([]any, len(o))
	right := make([]any, len(t))
	next := 0

	for i := range o {
		left[i] = next
		for k := range i {
			if compare.Equal(o[k], o[i], p) {
				left[i] = left[k]
				break
			}
		}
		if left[i] == next {
			next++
		}
	}

	for j := range t {
		right[j] = -1
		for i := range o {
			if compare.Equal(o[i], t[j], p) {
				right[j] = left[i]
				break
			}
		}
		if right[j] == -1 {
			right[j] = next
			next++
		}
	}

	return left, right
}

func (a *alignment) matchedO(i int) bool {
	_, ok := a.lcsO[i]
	return ok
}

func (a *alignment) matchedT(j int) bool {
	_, ok := a.lcsT[j]
	return ok
}

func (a *alignment) pair(i, j int) {
	a.rescued[j] = i
	a.consumed[i] = true
}

func (a *alignment) rescueFromOriginal(o, t []compare.Object, target compare.NamedSequence) {
	claimed := make(map[int]bool)
	for j := range a.rescued {
		claimed[j] = true
	}

	for i, elem := range o {
		if a.matchedO(i) || a.consumed[i] {
			continue
		}

		j, ok := firstByName(compare.NameOf(elem), target, t, func(j int) bool {
			return !a.matchedT(j) && !claimed[j]
		})
		if ok {
			a.pair(i, j)
			claimed[j] = true
		}
	}
}

func (a *alignment) rescueFromTarget(o, t []compare.Object, original compare.NamedSequence) {
	for j, elem := range t {
		if a.matchedT(j) {
			continue
		}
		if _, done := a.rescued[j]; done {
			continue
		}

		i, ok := firstByName(compare.NameOf(elem), original, o, func(i int) bool {
			return !a.matchedO(i) && !a.consumed[i]
		})
		if ok {
			a.pair(i, j)
		}
	}
}

// firstByName returns the first available element of seq named name. An exact match is
// preferred over a case-insensitive one. Unnamed elements never match.
func firstByName(name string, seq compare.NamedSequence, elems []compare.Object, available func(int) bool) (int, bool) {
	if name == "" {
		return 0, false
	}

	var candidates []int
	for _, idx := range seq.Positions(name) {
		if idx >= 0 && idx < len(elems) && available(idx) {
			candidates = append(candidates, idx)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}

	if len(candidates) > 1 {
		slog.Debug("ambiguous name match, using first candidate", "name", name, "candidates", len(candidates))
	}

	for _, idx := range candidates {
		if compare.NameOf(elems[idx]) == name {
			return idx, true
		}
	}
	return candidates[0], true
}
