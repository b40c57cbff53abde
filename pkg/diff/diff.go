package diff

import (
	"fmt"
	"strings"

	"github.com/pseudomuto/schemadelta/pkg/compare"
)

// Option configures a comparison.
type Option func(*settings)

// WithPolicy sets the base equality policy. The default is compare.Default.
func WithPolicy(p compare.Policy) Option {
	return func(s *settings) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithColumnAlignment toggles name-first alignment of order-significant sequences such
// as table columns. It is enabled by default.
func WithColumnAlignment(enabled bool) Option {
	return func(s *settings) {
		s.columnAlignment = enabled
	}
}

func newSettings(opts []Option) settings {
	s := settings{policy: compare.Default, columnAlignment: true}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Objects compares two structured objects. Either side may be nil.
func Objects(original, target compare.Object, opts ...Option) *ObjectDiff {
	return newObjectDiff("", original, target, newSettings(opts))
}

// Collections compares two sequences of structured objects. A nil sequence is empty.
func Collections(original, target compare.Sequence, opts ...Option) *CollectionDiff {
	return newCollectionDiff("", original, target, newSettings(opts))
}

// Header returns the single line introducing n:
//
//	Table "users" (Modified)
//	columns (Modified)
//	lastValue: (100 -> 150)
func Header(n Node) string {
	switch d := n.(type) {
	case *ObjectDiff:
		if name := d.Name(); name != "" {
			return fmt.Sprintf("%s %q (%s)", d.Kind(), name, d.state)
		}
		return fmt.Sprintf("%s (%s)", d.Kind(), d.state)
	case *CollectionDiff:
		if d.property == "" {
			return fmt.Sprintf("collection (%s)", d.state)
		}
		return fmt.Sprintf("%s (%s)", d.property, d.state)
	case *ScalarDiff:
		return d.Lines()[0]
	}
	return ""
}

// Render renders the changed part of the tree rooted at n, indenting two spaces per
// level.
func Render(n Node) string {
	var sb strings.Builder
	render(&sb, n, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

func render(sb *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if s, ok := n.(*ScalarDiff); ok {
		for _, line := range s.Lines() {
			sb.WriteString(indent + line + "\n")
		}
		return
	}

	sb.WriteString(indent + Header(n) + "\n")
	for _, child := range ChildrenOf(n) {
		if !child.State().Changed() {
			continue
		}
		render(sb, child, depth+1)
	}
}
