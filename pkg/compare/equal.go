package compare

import (
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// scalarOptions treats nil and empty maps/slices as equal, which is how schema metadata
// readers disagree most often.
var scalarOptions = []cmp.Option{cmpopts.EquateEmpty()}

// Equal compares two objects under the given policy (Default when nil).
//
// The comparison is a fold over the union of both objects' properties: every property
// pair is offered to the policy, even after a difference has been found, so policies that
// record comparisons observe the complete property set. The AND of the per-property
// results is handed to Policy.Result for the final answer.
func Equal(a, b Object, p Policy) bool {
	p = orDefault(p)
	if eq, decided := p.ReferenceEquals(a, b); decided {
		return eq
	}

	equal := true
	for _, pair := range pairProperties(a.Properties(), b.Properties()) {
		va, vb := pair.a, pair.b
		ok := p.ValueEquals(pair.name, a, b, va, vb, func() bool {
			return ValuesEqual(va, vb, p)
		})
		equal = equal && ok
	}

	return p.Result(a, b, equal)
}

// ValuesEqual compares two property values under p.
//
// Objects are compared with Equal, sequences element by element in order (a nil sequence
// is empty), and everything else with go-cmp. Values of different shapes are unequal.
func ValuesEqual(a, b any, p Policy) bool {
	aNil, bNil := IsNil(a), IsNil(b)

	oa, aObj := a.(Object)
	ob, bObj := b.(Object)
	if aObj || bObj {
		if aNil || bNil {
			return aNil && bNil
		}
		if !aObj || !bObj {
			return false
		}
		return Equal(oa, ob, p)
	}

	sa, aSeq := a.(Sequence)
	sb, bSeq := b.(Sequence)
	if aSeq || bSeq {
		if (!aSeq && !aNil) || (!bSeq && !bNil) {
			return false
		}
		return Slices(Elements(sa), Elements(sb), func(x, y Object) bool {
			return Equal(x, y, p)
		})
	}

	return cmp.Equal(a, b, scalarOptions...)
}

type propertyPair struct {
	name string
	a, b any
}

// pairProperties matches properties by case-insensitive name, keeping a's order and
// appending names only b has.
func pairProperties(a, b []Property) []propertyPair {
	pairs := make([]propertyPair, 0, len(a))
	index := make(map[string]int, len(a))

	for _, prop := range a {
		key := strings.ToLower(prop.Name)
		if i, ok := index[key]; ok {
			pairs[i].a = prop.Value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, propertyPair{name: prop.Name, a: prop.Value})
	}

	for _, prop := range b {
		key := strings.ToLower(prop.Name)
		if i, ok := index[key]; ok {
			pairs[i].b = prop.Value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, propertyPair{name: prop.Name, b: prop.Value})
	}

	return pairs
}
