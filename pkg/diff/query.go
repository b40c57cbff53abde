package diff

import (
	"log/slog"
	"strings"

	"github.com/pseudomuto/schemadelta/pkg/compare"
)

// ChildrenOf returns the children of n in rendering order. Nil entries are skipped and
// logged at debug level.
func ChildrenOf(n Node) []Node {
	if compare.IsNil(n) {
		return nil
	}

	children := n.Children()
	out := make([]Node, 0, len(children))
	for _, child := range children {
		if compare.IsNil(child) {
			slog.Debug("skipping nil diff node", "parent", n.PropertyName())
			continue
		}
		out = append(out, child)
	}
	return out
}

// ChangedProperties flattens the changed properties of d into a map keyed by dotted
// property path, for example "columns" or "primaryKey.name".
//
// Nested objects that are Modified are descended into; Added or Deleted nested objects,
// collections and scalar leaves are reported as they are. Collection elements are not
// flattened; use the CollectionDiff for those.
func (d *ObjectDiff) ChangedProperties() map[string]Node {
	out := make(map[string]Node)
	d.collectChanged("", out)
	return out
}

func (d *ObjectDiff) collectChanged(prefix string, out map[string]Node) {
	for _, child := range d.Children() {
		if !child.State().Changed() {
			continue
		}

		key := prefix + child.PropertyName()
		if obj, ok := child.(*ObjectDiff); ok && obj.state == Modified {
			obj.collectChanged(key+".", out)
			continue
		}
		out[key] = child
	}
}

// Properties returns the direct property children whose state is one of states. With no
// states every property is returned.
func (d *ObjectDiff) Properties(states ...State) map[string]Node {
	out := make(map[string]Node)
	for _, child := range d.properties {
		if len(states) == 0 || containsState(states, child.State()) {
			out[child.PropertyName()] = child
		}
	}
	return out
}

func containsState(states []State, s State) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}

// Walk visits root and its descendants depth-first in rendering order. Returning false
// from fn skips the node's children.
func Walk(root Node, fn func(Node) bool) {
	if compare.IsNil(root) {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range ChildrenOf(root) {
		Walk(child, fn)
	}
}

// Find returns every node below and including root for which pred holds, in walk order.
func Find(root Node, pred func(Node) bool) []Node {
	var out []Node
	Walk(root, func(n Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindModified returns every changed node named property whose owning object is a T,
// anywhere below root. It answers narrow questions such as "did the where clause of any
// index change?":
//
//	diff.FindModified[*model.Index](root, "where")
func FindModified[T any](root Node, property string) []Node {
	return Find(root, func(n Node) bool {
		if !n.State().Changed() || !strings.EqualFold(n.PropertyName(), property) {
			return false
		}
		if _, ok := n.OriginalOwner().(T); ok {
			return true
		}
		_, ok := n.TargetOwner().(T)
		return ok
	})
}

// Count tallies the changed ObjectDiffs below root by kind and state. The root itself is
// not counted.
func Count(root Node) map[string]map[State]int {
	out := make(map[string]map[State]int)
	Walk(root, func(n Node) bool {
		obj, ok := n.(*ObjectDiff)
		if !ok || n == root || !obj.state.Changed() {
			return true
		}

		kind := obj.Kind()
		if out[kind] == nil {
			out[kind] = make(map[State]int)
		}
		out[kind][obj.state]++
		return true
	})
	return out
}
