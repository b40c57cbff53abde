package model

import (
	"strings"

	"github.com/pseudomuto/schemadelta/pkg/compare"
)

// positional is implemented by objects whose ordinal is their 1-based position in the
// owning list.
type positional interface {
	setOrdinal(int)
}

// List is an insertion-ordered collection of schema objects owned by a parent object.
//
// Adding an element links it to the owner and, for positional elements, renumbers its
// ordinal. Lookups by name are case-insensitive. A nil *List behaves as an empty list for
// reads.
type List[T Object] struct {
	owner   Object
	ordered bool
	items   []T
}

// NewList creates an empty list owned by owner. When ordered is true, element position
// is part of the list's meaning (for example the columns of a table).
func NewList[T Object](owner Object, ordered bool) *List[T] {
	return &List[T]{owner: owner, ordered: ordered}
}

// Add appends items in order, setting their parent to the list's owner.
func (l *List[T]) Add(items ...T) *List[T] {
	for _, item := range items {
		item.setParent(l.owner)
		l.items = append(l.items, item)
		if p, ok := any(item).(positional); ok {
			p.setOrdinal(len(l.items))
		}
	}
	return l
}

// Remove deletes the first element named name and renumbers the remaining ordinals. It
// reports whether an element was removed.
func (l *List[T]) Remove(name string) bool {
	pos := l.Positions(name)
	if len(pos) == 0 {
		return false
	}

	removed := l.items[pos[0]]
	removed.setParent(nil)
	l.items = append(l.items[:pos[0]], l.items[pos[0]+1:]...)
	for i, item := range l.items {
		if p, ok := any(item).(positional); ok {
			p.setOrdinal(i + 1)
		}
	}
	return true
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the element at index i as a compare.Object.
func (l *List[T]) At(i int) compare.Object { return l.items[i] }

// Get returns the element at index i.
func (l *List[T]) Get(i int) T { return l.items[i] }

// All returns a copy of the elements in order.
func (l *List[T]) All() []T {
	if l == nil {
		return nil
	}

	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Find returns the first element named name. An exact match wins over a case-insensitive
// one.
func (l *List[T]) Find(name string) (T, bool) {
	var zero T
	pos := l.Positions(name)
	if len(pos) == 0 {
		return zero, false
	}

	for _, i := range pos {
		if l.items[i].ObjectName() == name {
			return l.items[i], true
		}
	}
	return l.items[pos[0]], true
}

// Positions returns the indices of every element named name, case-insensitively, in list
// order.
func (l *List[T]) Positions(name string) []int {
	if l == nil {
		return nil
	}

	var out []int
	for i, item := range l.items {
		if strings.EqualFold(item.ObjectName(), name) {
			out = append(out, i)
		}
	}
	return out
}

// OrderSignificant reports whether element position carries meaning.
func (l *List[T]) OrderSignificant() bool {
	return l != nil && l.ordered
}

// Owner returns the object owning the list.
func (l *List[T]) Owner() Object {
	if l == nil {
		return nil
	}
	return l.owner
}

// ByName indexes the list's elements by name. Later duplicates do not replace earlier
// ones.
func ByName[T Object](l *List[T]) map[string]T {
	out := make(map[string]T, l.Len())
	for _, item := range l.All() {
		if _, exists := out[item.ObjectName()]; !exists {
			out[item.ObjectName()] = item
		}
	}
	return out
}
