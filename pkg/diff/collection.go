package diff

import (
	"github.com/pseudomuto/schemadelta/pkg/compare"
)

// CollectionDiff compares two sequences of structured objects.
//
// Children are ObjectDiffs in output order: deletions, insertions and matched pairs
// interleaved as they are met while scanning both sequences. Every original element
// appears exactly once (Deleted or paired), and so does every target element (Added or
// paired).
type CollectionDiff struct {
	node
	children []*ObjectDiff
}

func newCollectionDiff(property string, original, target compare.Sequence, s settings) *CollectionDiff {
	d := &CollectionDiff{node: newNode(property, original, target, s)}

	o, t := compare.Elements(original), compare.Elements(target)
	columnar := s.columnAlignment && (compare.IsOrdered(original) || compare.IsOrdered(target))

	pairPolicy := s.policy
	if columnar {
		pairPolicy = compare.Ignoring(s.policy, "ordinal")
	}
	pairSettings := settings{policy: pairPolicy, columnAlignment: s.columnAlignment}

	a := align(o, t, original, target, pairPolicy, columnar)
	emit := func(orig, tgt compare.Object) {
		child := newObjectDiff("", orig, tgt, pairSettings)
		child.property = child.name()
		child.setParent(d)
		d.children = append(d.children, child)
		if child.state.Changed() {
			d.state = Modified
		}
	}

	i, j := 0, 0
	for i < len(o) || j < len(t) {
		progressed := false

		for i < len(o) && !a.matchedO(i) {
			if !a.consumed[i] {
				emit(o[i], nil)
			}
			i++
			progressed = true
		}

		for j < len(t) && !a.matchedT(j) {
			if k, ok := a.rescued[j]; ok {
				emit(o[k], t[j])
			} else {
				emit(nil, t[j])
			}
			j++
			progressed = true
		}

		if i < len(o) && j < len(t) {
			emit(o[i], t[j])
			i++
			j++
			progressed = true
		}

		if !progressed {
			break
		}
	}

	return d
}

// adoptOwners hands the collection's owners down to its elements once the collection
// has been attached.
func (d *CollectionDiff) adoptOwners() {
	for _, child := range d.children {
		if d.originalOwner != nil {
			child.originalOwner = d.originalOwner
		}
		if d.targetOwner != nil {
			child.targetOwner = d.targetOwner
		}
	}
}

// Elements returns the element diffs in output order.
func (d *CollectionDiff) Elements() []*ObjectDiff {
	out := make([]*ObjectDiff, len(d.children))
	copy(out, d.children)
	return out
}

// Children returns the element diffs in output order.
func (d *CollectionDiff) Children() []Node {
	out := make([]Node, len(d.children))
	for i, child := range d.children {
		out[i] = child
	}
	return out
}

// Count returns the number of element diffs in each state.
func (d *CollectionDiff) Count() map[State]int {
	counts := make(map[State]int)
	for _, child := range d.children {
		if child == nil {
			continue
		}
		counts[child.state]++
	}
	return counts
}

// Reverse recomputes the alignment with original and target exchanged.
func (d *CollectionDiff) Reverse() Node {
	oa, _ := d.target.(compare.Sequence)
	ob, _ := d.original.(compare.Sequence)
	r := newCollectionDiff(d.property, oa, ob, d.settings)
	r.originalOwner, r.targetOwner = d.targetOwner, d.originalOwner
	return r
}

func (d *CollectionDiff) RemoveRecursive(pred Predicate) {
	pred = orNever(pred)
	kept := d.children[:0]
	for _, child := range d.children {
		child.RemoveRecursive(pred)
		if pred(child.property, child) || !child.state.Changed() {
			continue
		}
		kept = append(kept, child)
	}
	d.children = kept

	if d.state == Modified && len(d.children) == 0 {
		d.state = Unchanged
	}
}

func (d *CollectionDiff) Less(other Node) bool {
	return less(d, other)
}

func (d *CollectionDiff) String() string {
	return Render(d)
}
