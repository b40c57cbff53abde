package model

import (
	"time"

	"github.com/pseudomuto/schemadelta/pkg/compare"
)

// Kind identifies the concrete type of a schema object.
type Kind int

const (
	KindCatalog Kind = iota
	KindSchema
	KindTable
	KindColumn
	KindRow
	KindConstraint
	KindIndex
	KindTrigger
	KindSequence
	KindRoutine
	KindParameter
	KindView
)

var kindNames = map[Kind]string{
	KindCatalog:    "Catalog",
	KindSchema:     "Schema",
	KindTable:      "Table",
	KindColumn:     "Column",
	KindRow:        "Row",
	KindConstraint: "Constraint",
	KindIndex:      "Index",
	KindTrigger:    "Trigger",
	KindSequence:   "Sequence",
	KindRoutine:    "Routine",
	KindParameter:  "Parameter",
	KindView:       "View",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Object is implemented by every schema object in the graph.
type Object interface {
	compare.Object
	compare.Named

	// Kind returns the concrete type of the object.
	Kind() Kind

	// Parent returns the object owning this one, or nil for a root or detached object.
	Parent() Object

	setParent(Object)
}

type (
	// Naming holds the logical name of an object.
	Naming struct {
		Name string
	}

	// Documented holds free-form remarks attached to an object.
	Documented struct {
		Remarks string
	}

	// Timestamps holds the administrative creation and alteration times of an object. Zero
	// values mean unknown.
	Timestamps struct {
		CreatedAt     time.Time
		LastAlteredAt time.Time
	}

	node struct {
		parent Object
	}
)

// ObjectName returns the object's name.
func (n Naming) ObjectName() string { return n.Name }

func (n *node) Parent() Object     { return n.parent }
func (n *node) setParent(p Object) { n.parent = p }

// Owner returns the parent as a compare.Object, or nil.
func (n *node) Owner() compare.Object {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// schemaNameOf returns the name of the schema enclosing o, if any.
func schemaNameOf(o Object) string {
	for p := o.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == KindSchema {
			return p.ObjectName()
		}
	}
	return ""
}

// Path returns the dotted names of o and its ancestors below the catalog, for example
// "public.users.email".
func Path(o Object) string {
	if o == nil {
		return ""
	}

	path := o.ObjectName()
	for p := o.Parent(); p != nil && p.Kind() != KindCatalog; p = p.Parent() {
		path = p.ObjectName() + "." + path
	}
	return path
}
