package compare

import "reflect"

type (
	// Property is a single named value exposed by an Object.
	Property struct {
		Name  string
		Value any
	}

	// Object is implemented by every structured schema value. Properties returns the
	// object's state in a fixed order; the order is stable across calls and across
	// instances of the same concrete type.
	Object interface {
		Properties() []Property
	}

	// Named is implemented by objects that carry a logical name.
	Named interface {
		ObjectName() string
	}

	// Sequence is an ordered, finite collection of objects.
	Sequence interface {
		Len() int
		At(i int) Object
	}

	// NamedSequence is a Sequence whose elements can be located by name. Positions
	// returns the indices of every element with the given name, in sequence order,
	// matching case-insensitively.
	NamedSequence interface {
		Sequence
		Positions(name string) []int
	}

	// OrderedSequence is a Sequence that knows whether element position carries meaning
	// (for example the columns of a table).
	OrderedSequence interface {
		Sequence
		OrderSignificant() bool
	}
)

// P is shorthand for a Property literal.
func P(name string, value any) Property {
	return Property{Name: name, Value: value}
}

// IsNil reports whether v is nil or a typed nil (pointer, map, slice, interface, func or
// channel).
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// NameOf returns the logical name of v, or an empty string if v is not Named.
func NameOf(v any) string {
	if IsNil(v) {
		return ""
	}
	if n, ok := v.(Named); ok {
		return n.ObjectName()
	}
	return ""
}

// Elements returns every element of s in order. A nil sequence has no elements.
func Elements(s Sequence) []Object {
	if IsNil(s) {
		return nil
	}

	out := make([]Object, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// IsOrdered reports whether s is an OrderedSequence whose order is significant.
func IsOrdered(s Sequence) bool {
	if IsNil(s) {
		return false
	}
	o, ok := s.(OrderedSequence)
	return ok && o.OrderSignificant()
}

func samePointer(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != reflect.Ptr || rb.Kind() != reflect.Ptr || ra.Type() != rb.Type() {
		return false
	}
	return ra.Pointer() == rb.Pointer()
}
