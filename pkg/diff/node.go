package diff

import (
	"log/slog"
	"strings"

	"github.com/pseudomuto/schemadelta/pkg/compare"
)

type (
	// Node is a node of a difference tree.
	//
	// Absent sides are reported as nil. The owners are the nearest enclosing structured
	// objects of the original and target values and only serve contextual rendering.
	Node interface {
		Original() any
		Target() any
		OriginalOwner() compare.Object
		TargetOwner() compare.Object

		// PropertyName is the slot this node occupies under its parent: a property name
		// below an ObjectDiff, the element name below a CollectionDiff, empty for a root.
		PropertyName() string
		State() State
		Parent() Node
		Policy() compare.Policy

		// Children returns the direct children in rendering order.
		Children() []Node

		// Reverse returns a new, detached node comparing target to original.
		Reverse() Node

		// RemoveRecursive prunes the subtree in post-order. A direct child is removed when
		// pred holds for it or when it is no longer changed after its own pruning; a
		// Modified node left without changed children becomes Unchanged.
		RemoveRecursive(pred Predicate)

		// Less orders nodes for stable rendering.
		Less(other Node) bool
		String() string

		base() *node
	}

	// Predicate selects children to prune in RemoveRecursive.
	Predicate func(key string, child Node) bool

	// owned is implemented by objects that know their structural parent.
	owned interface {
		Owner() compare.Object
	}

	node struct {
		original      any
		target        any
		originalOwner compare.Object
		targetOwner   compare.Object
		property      string
		state         State
		parent        Node
		settings      settings
	}

	settings struct {
		policy          compare.Policy
		columnAlignment bool
	}
)

func newNode(property string, original, target any, s settings) node {
	n := node{
		original: absentToNil(original),
		target:   absentToNil(target),
		property: property,
		settings: s,
	}
	n.originalOwner = ownerOf(n.original)
	n.targetOwner = ownerOf(n.target)
	return n
}

func (n *node) Original() any                 { return n.original }
func (n *node) Target() any                   { return n.target }
func (n *node) OriginalOwner() compare.Object { return n.originalOwner }
func (n *node) TargetOwner() compare.Object   { return n.targetOwner }
func (n *node) PropertyName() string          { return n.property }
func (n *node) State() State                  { return n.state }
func (n *node) Parent() Node                  { return n.parent }
func (n *node) Policy() compare.Policy        { return n.settings.policy }
func (n *node) base() *node                   { return n }

// setParent attaches n below parent. The parent is only ever set once; the owners become
// the nearest enclosing structured objects.
func (n *node) setParent(parent Node) {
	if n.parent != nil {
		slog.Debug("diff node already attached", "property", n.property)
		return
	}

	n.parent = parent
	if obj, ok := parent.(*ObjectDiff); ok {
		n.originalOwner, _ = obj.original.(compare.Object)
		n.targetOwner, _ = obj.target.(compare.Object)
		return
	}
	if owner := parent.OriginalOwner(); owner != nil {
		n.originalOwner = owner
	}
	if owner := parent.TargetOwner(); owner != nil {
		n.targetOwner = owner
	}
}

// swapped returns a copy of n's identity with both sides exchanged, detached from any
// parent.
func (n *node) swapped() node {
	return node{
		original:      n.target,
		target:        n.original,
		originalOwner: n.targetOwner,
		targetOwner:   n.originalOwner,
		property:      n.property,
		state:         n.state.reversed(),
		settings:      n.settings,
	}
}

// name returns the logical name of whichever side is present.
func (n *node) name() string {
	if name := compare.NameOf(n.original); name != "" {
		return name
	}
	return compare.NameOf(n.target)
}

func orNever(pred Predicate) Predicate {
	if pred == nil {
		return func(string, Node) bool { return false }
	}
	return pred
}

func absentToNil(v any) any {
	if compare.IsNil(v) {
		return nil
	}
	return v
}

func ownerOf(v any) compare.Object {
	if o, ok := v.(owned); ok {
		if owner := o.Owner(); !compare.IsNil(owner) {
			return owner
		}
	}
	return nil
}

// rank orders node kinds: scalars, list-valued scalars, objects, collections.
func rank(n Node) int {
	switch d := n.(type) {
	case *ScalarDiff:
		if d.isList() {
			return 1
		}
		return 0
	case *ObjectDiff:
		return 2
	default:
		return 3
	}
}

func less(a, b Node) bool {
	if ra, rb := rank(a), rank(b); ra != rb {
		return ra < rb
	}
	if pa, pb := Priority(a.PropertyName()), Priority(b.PropertyName()); pa != pb {
		return pa < pb
	}
	if na, nb := strings.ToLower(a.PropertyName()), strings.ToLower(b.PropertyName()); na != nb {
		return na < nb
	}
	return a.base().name() < b.base().name()
}
