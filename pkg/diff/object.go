package diff

import (
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/pseudomuto/schemadelta/pkg/compare"
)

// ObjectDiff compares two single structured objects property by property.
//
// An object present on one side only is reported wholesale as Added or Deleted without
// property children. When both are present, every property compared by the policy has a
// child node, keyed case-insensitively.
type ObjectDiff struct {
	node
	properties map[string]Node
}

func newObjectDiff(property string, original, target compare.Object, s settings) *ObjectDiff {
	d := &ObjectDiff{
		node:       newNode(property, original, target, s),
		properties: make(map[string]Node),
	}

	state, both := presence(d.original, d.target)
	d.state = state
	if !both {
		return d
	}

	compare.Equal(d.original.(compare.Object), d.target.(compare.Object), &capturing{base: s.policy, parent: d})
	for _, child := range d.properties {
		if child.State().Changed() {
			d.state = Modified
			break
		}
	}
	return d
}

func (d *ObjectDiff) put(child Node) {
	key := strings.ToLower(child.PropertyName())
	d.properties[key] = child
	child.base().setParent(d)
	if c, ok := child.(*CollectionDiff); ok {
		c.adoptOwners()
	}
}

// Property returns the child for the named property, matched case-insensitively.
func (d *ObjectDiff) Property(name string) Node {
	return d.properties[strings.ToLower(name)]
}

// Len returns the number of property children.
func (d *ObjectDiff) Len() int {
	return len(d.properties)
}

// Children returns the property children ordered by priority, then by Less.
func (d *ObjectDiff) Children() []Node {
	out := make([]Node, 0, len(d.properties))
	for key, child := range d.properties {
		if compare.IsNil(child) {
			slog.Debug("skipping nil diff node", "parent", d.property, "property", key)
			continue
		}
		out = append(out, child)
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := Priority(out[i].PropertyName()), Priority(out[j].PropertyName())
		if pi != pj {
			return pi < pj
		}
		return out[i].Less(out[j])
	})
	return out
}

// Kind returns the type name of the compared objects, for example "Table".
func (d *ObjectDiff) Kind() string {
	v := d.original
	if v == nil {
		v = d.target
	}
	if v == nil {
		return ""
	}

	return reflect.Indirect(reflect.ValueOf(v)).Type().Name()
}

// Name returns the logical name of the compared objects.
func (d *ObjectDiff) Name() string {
	return d.name()
}

// Reverse recomputes the comparison with original and target exchanged.
func (d *ObjectDiff) Reverse() Node {
	oa, _ := d.target.(compare.Object)
	ob, _ := d.original.(compare.Object)
	r := newObjectDiff(d.property, oa, ob, d.settings)
	r.originalOwner, r.targetOwner = d.targetOwner, d.originalOwner
	return r
}

func (d *ObjectDiff) RemoveRecursive(pred Predicate) {
	pred = orNever(pred)
	for key, child := range d.properties {
		child.RemoveRecursive(pred)
		if pred(child.PropertyName(), child) || !child.State().Changed() {
			delete(d.properties, key)
		}
	}

	if d.state == Modified && len(d.properties) == 0 {
		d.state = Unchanged
	}
}

func (d *ObjectDiff) Less(other Node) bool {
	return less(d, other)
}

func (d *ObjectDiff) String() string {
	return Render(d)
}
