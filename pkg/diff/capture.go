package diff

import (
	"github.com/pseudomuto/schemadelta/pkg/compare"
)

// capturing decorates a base policy so that a single equality walk also materialises a
// child node per property of the object being compared.
type capturing struct {
	base   compare.Policy
	parent *ObjectDiff
}

func (c *capturing) ReferenceEquals(a, b any) (bool, bool) {
	return c.base.ReferenceEquals(a, b)
}

func (c *capturing) ValueEquals(name string, ownerA, ownerB compare.Object, a, b any, _ func() bool) bool {
	var child Node
	equal := c.base.ValueEquals(name, ownerA, ownerB, a, b, func() bool {
		if child == nil {
			child = build(name, a, b, c.parent.settings)
		}
		return !child.State().Changed()
	})

	if child == nil {
		return equal
	}

	cb := child.base()
	switch {
	case equal:
		cb.state = Unchanged
	case cb.state != Added && cb.state != Deleted:
		cb.state = Modified
	}

	c.parent.put(child)
	return equal
}

func (c *capturing) Result(a, b compare.Object, equal bool) bool {
	return c.base.Result(a, b, equal)
}

// build classifies a property value pair and constructs the matching node.
func build(name string, a, b any, s settings) Node {
	oa, aObj := a.(compare.Object)
	ob, bObj := b.(compare.Object)
	if (aObj || compare.IsNil(a)) && (bObj || compare.IsNil(b)) && (aObj || bObj) {
		return newObjectDiff(name, oa, ob, s)
	}

	sa, aSeq := a.(compare.Sequence)
	sb, bSeq := b.(compare.Sequence)
	if (aSeq || compare.IsNil(a)) && (bSeq || compare.IsNil(b)) && (aSeq || bSeq) {
		return newCollectionDiff(name, sa, sb, s)
	}

	d := newScalarDiff(name, a, b, s)
	if !compare.ValuesEqual(a, b, s.policy) {
		d.state = Modified
	}
	return d
}
