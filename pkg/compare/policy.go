package compare

import "strings"

// Policy controls how two objects are compared.
//
// ReferenceEquals is consulted first and may decide the comparison outright (identity or
// nil short-circuit). Otherwise ValueEquals is called once per property with a lazy thunk
// computing structural equality of the two values; a policy may skip the thunk to leave a
// property out of the comparison. Result receives the AND of every ValueEquals result and
// returns the final answer.
type Policy interface {
	ReferenceEquals(a, b any) (equal, decided bool)
	ValueEquals(name string, ownerA, ownerB Object, a, b any, eq func() bool) bool
	Result(a, b Object, equal bool) bool
}

// Default compares every property of both objects.
var Default Policy = defaultPolicy{}

type defaultPolicy struct{}

func (defaultPolicy) ReferenceEquals(a, b any) (bool, bool) {
	return referenceEquals(a, b)
}

func (defaultPolicy) ValueEquals(_ string, _, _ Object, _, _ any, eq func() bool) bool {
	return eq()
}

func (defaultPolicy) Result(_, _ Object, equal bool) bool {
	return equal
}

func referenceEquals(a, b any) (equal, decided bool) {
	aNil, bNil := IsNil(a), IsNil(b)
	switch {
	case aNil && bNil:
		return true, true
	case aNil || bNil:
		return false, true
	case samePointer(a, b):
		return true, true
	}

	return false, false
}

// propertyFilter decorates a base policy and limits which properties are compared.
type propertyFilter struct {
	base    Policy
	names   map[string]struct{}
	include bool
}

// IncludeOnly compares only the named properties. It answers "do these two values refer
// to the same logical entity?", typically with IncludeOnly("name").
func IncludeOnly(names ...string) Policy {
	return Only(Default, names...)
}

// Excluding compares everything except the named properties. It answers "is this the same
// content under a different name?", typically with Excluding("name").
func Excluding(names ...string) Policy {
	return Ignoring(Default, names...)
}

// Only restricts base to the named properties.
func Only(base Policy, names ...string) Policy {
	return &propertyFilter{base: orDefault(base), names: FoldSet(names...), include: true}
}

// Ignoring removes the named properties from base's comparison.
func Ignoring(base Policy, names ...string) Policy {
	if len(names) == 0 {
		return orDefault(base)
	}
	return &propertyFilter{base: orDefault(base), names: FoldSet(names...), include: false}
}

func (f *propertyFilter) ReferenceEquals(a, b any) (bool, bool) {
	return f.base.ReferenceEquals(a, b)
}

func (f *propertyFilter) ValueEquals(name string, ownerA, ownerB Object, a, b any, eq func() bool) bool {
	if !f.Compares(name) {
		return true
	}
	return f.base.ValueEquals(name, ownerA, ownerB, a, b, eq)
}

func (f *propertyFilter) Result(a, b Object, equal bool) bool {
	return f.base.Result(a, b, equal)
}

// Compares reports whether the named property takes part in the comparison.
func (f *propertyFilter) Compares(name string) bool {
	_, listed := f.names[strings.ToLower(name)]
	return listed == f.include
}

func orDefault(p Policy) Policy {
	if p == nil {
		return Default
	}
	return p
}
