package diff

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/pseudomuto/schemadelta/pkg/compare"
)

type (
	// TextOwner is implemented by objects holding source text in byte-valued properties.
	// Those properties are rendered as line diffs rather than length changes.
	TextOwner interface {
		TextProperties() []string
	}

	// Keyed is implemented by row-like objects. Their "values" property is rendered as a
	// column map in which the key columns are always shown.
	Keyed interface {
		KeyColumns() []string
	}
)

type shape int

const (
	shapeScalar shape = iota
	shapeText
	shapeList
	shapeBytes
	shapeMap
	shapeRow
)

// ScalarDiff is a leaf comparing two non-object property values.
type ScalarDiff struct {
	node
}

func newScalarDiff(property string, original, target any, s settings) *ScalarDiff {
	return &ScalarDiff{node: newNode(property, original, target, s)}
}

// Children returns nil; a ScalarDiff is always a leaf.
func (d *ScalarDiff) Children() []Node { return nil }

// Reverse swaps original and target, keeping the state but exchanging Added and Deleted.
func (d *ScalarDiff) Reverse() Node {
	return &ScalarDiff{node: d.swapped()}
}

func (d *ScalarDiff) RemoveRecursive(Predicate) {}

func (d *ScalarDiff) Less(other Node) bool {
	return less(d, other)
}

func (d *ScalarDiff) String() string {
	return strings.Join(d.Lines(), "\n")
}

// Lines renders the difference. The first line names the property; list and text
// differences add one line per changed element.
func (d *ScalarDiff) Lines() []string {
	if !d.state.Changed() {
		return []string{fmt.Sprintf("%s: %s", d.property, formatValue(d.original))}
	}

	switch d.shape() {
	case shapeRow:
		return []string{d.property + ": " + d.rowDelta()}
	case shapeMap:
		return []string{d.property + ": " + d.mapDelta()}
	case shapeBytes:
		a, _ := d.original.([]byte)
		b, _ := d.target.([]byte)
		if d.isText() {
			return d.listLines(splitLines(string(a)), splitLines(string(b)), true)
		}
		return []string{fmt.Sprintf("%s: (%d bytes -> %d bytes)", d.property, len(a), len(b))}
	case shapeText:
		a, _ := d.original.(string)
		b, _ := d.target.(string)
		return d.listLines(splitLines(a), splitLines(b), true)
	case shapeList:
		a, aStr := listStrings(d.original)
		b, bStr := listStrings(d.target)
		return d.listLines(a, b, aStr && bStr)
	default:
		return []string{fmt.Sprintf("%s: (%s -> %s)", d.property, formatValue(d.original), formatValue(d.target))}
	}
}

// Expand splits a map-valued difference into one ScalarDiff per changed key, named
// "<property>.<key>". Keys only in the original are Deleted, keys only in the target are
// Added. Other differences expand to themselves.
func (d *ScalarDiff) Expand() []*ScalarDiff {
	if s := d.shape(); s != shapeMap && s != shapeRow {
		return []*ScalarDiff{d}
	}

	a, b := mapEntries(d.original), mapEntries(d.target)
	var out []*ScalarDiff
	for _, key := range compare.UnionKeys(a, b) {
		va, inA := a[key]
		vb, inB := b[key]
		if inA && inB && compare.ValuesEqual(va, vb, d.settings.policy) {
			continue
		}

		child := &ScalarDiff{node: node{
			original:      absentToNil(va),
			target:        absentToNil(vb),
			originalOwner: d.originalOwner,
			targetOwner:   d.targetOwner,
			property:      d.property + "." + key,
			state:         Modified,
			parent:        d.parent,
			settings:      d.settings,
		}}
		switch {
		case !inA:
			child.state = Added
		case !inB:
			child.state = Deleted
		}
		out = append(out, child)
	}
	return out
}

func (d *ScalarDiff) isList() bool {
	return d.shape() == shapeList
}

func (d *ScalarDiff) shape() shape {
	a, b := d.original, d.target
	sa, sb := shapeOf(a), shapeOf(b)

	if sa == shapeText || sb == shapeText {
		_, aStr := a.(string)
		_, bStr := b.(string)
		if (aStr || a == nil) && (bStr || b == nil) {
			return shapeText
		}
		return shapeScalar
	}

	switch {
	case a == nil:
		sa = sb
	case b == nil:
		sb = sa
	}
	if sa != sb {
		return shapeScalar
	}

	if (sa == shapeList || sa == shapeMap) && a != nil && b != nil && reflect.TypeOf(a) != reflect.TypeOf(b) {
		return shapeScalar
	}
	if sa == shapeMap && strings.EqualFold(d.property, "values") && d.keyed() != nil {
		return shapeRow
	}
	return sa
}

func shapeOf(v any) shape {
	if v == nil {
		return shapeScalar
	}

	switch t := v.(type) {
	case []byte:
		return shapeBytes
	case string:
		if strings.Contains(t, "\n") {
			return shapeText
		}
		return shapeScalar
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return shapeList
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return shapeMap
		}
	}
	return shapeScalar
}

func (d *ScalarDiff) keyed() Keyed {
	for _, owner := range []compare.Object{d.originalOwner, d.targetOwner} {
		if k, ok := owner.(Keyed); ok {
			return k
		}
	}
	return nil
}

func (d *ScalarDiff) isText() bool {
	for _, owner := range []compare.Object{d.originalOwner, d.targetOwner} {
		if t, ok := owner.(TextOwner); ok {
			for _, name := range t.TextProperties() {
				if strings.EqualFold(name, d.property) {
					return true
				}
			}
		}
	}
	return false
}

// mapDelta renders the changed keys of two maps as key=(old -> new).
func (d *ScalarDiff) mapDelta() string {
	a, b := mapEntries(d.original), mapEntries(d.target)
	parts := make([]string, 0)
	for _, key := range compare.UnionKeys(a, b) {
		va, inA := a[key]
		vb, inB := b[key]
		if inA && inB && compare.ValuesEqual(va, vb, d.settings.policy) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=(%s -> %s)", key, formatValue(va), formatValue(vb)))
	}
	return strings.Join(parts, ", ")
}

// rowDelta renders a row's column values with its key columns first, unchanged keys
// included.
func (d *ScalarDiff) rowDelta() string {
	a, b := mapEntries(d.original), mapEntries(d.target)
	keys := d.keyed().KeyColumns()
	isKey := compare.FoldSet(keys...)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		va, vb := lookupFold(a, key), lookupFold(b, key)
		if compare.ValuesEqual(va, vb, d.settings.policy) {
			parts = append(parts, fmt.Sprintf("%s=%s", key, formatValue(va)))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=(%s -> %s)", key, formatValue(va), formatValue(vb)))
	}

	for _, key := range compare.UnionKeys(a, b) {
		if _, ok := isKey[strings.ToLower(key)]; ok {
			continue
		}
		va, inA := a[key]
		vb, inB := b[key]
		if inA && inB && compare.ValuesEqual(va, vb, d.settings.policy) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=(%s -> %s)", key, formatValue(va), formatValue(vb)))
	}
	return strings.Join(parts, ", ")
}

// listLines renders a sequence diff. String elements are numbered as 1-based lines,
// others as 0-based indices. Deleted elements carry their original position, inserted
// ones their target position.
func (d *ScalarDiff) listLines(a, b []string, lines bool) []string {
	loc := func(i int) string {
		if lines {
			return fmt.Sprintf("line %d", i+1)
		}
		return fmt.Sprintf("[%d]", i)
	}

	out := []string{d.property + ":"}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			continue
		case 'r':
			if op.I2-op.I1 == op.J2-op.J1 {
				for k := 0; k < op.I2-op.I1; k++ {
					out = append(out, fmt.Sprintf("  %s: (%s -> %s)", loc(op.I1+k), a[op.I1+k], b[op.J1+k]))
				}
				continue
			}
		}

		if op.Tag == 'r' || op.Tag == 'd' {
			for k := op.I1; k < op.I2; k++ {
				out = append(out, fmt.Sprintf("  %s: -%s", loc(k), a[k]))
			}
		}
		if op.Tag == 'r' || op.Tag == 'i' {
			for k := op.J1; k < op.J2; k++ {
				out = append(out, fmt.Sprintf("  %s: +%s", loc(k), b[k]))
			}
		}
	}
	return out
}

// lookupFold returns m[key], falling back to a case-insensitive match.
func lookupFold(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// listStrings renders the elements of a slice, reporting whether they are strings.
func listStrings(v any) ([]string, bool) {
	if v == nil {
		return nil, true
	}
	if ss, ok := v.([]string); ok {
		return ss, true
	}

	rv := reflect.ValueOf(v)
	out := make([]string, rv.Len())
	for i := range out {
		out[i] = formatValue(rv.Index(i).Interface())
	}
	return out, rv.Type().Elem().Kind() == reflect.String
}

func mapEntries(v any) map[string]any {
	out := make(map[string]any)
	if v == nil {
		return out
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return out
	}
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

// formatValue renders a value for humans: absent values as null, pointers by their
// target, timestamps as RFC 3339 and lists as [a, b].
func formatValue(v any) string {
	if compare.IsNil(v) {
		return "null"
	}

	switch t := v.(type) {
	case string:
		if t == "" {
			return `""`
		}
		return t
	case []byte:
		return fmt.Sprintf("%d bytes", len(t))
	case time.Time:
		if t.IsZero() {
			return "null"
		}
		return t.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		return formatValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		entries := mapEntries(v)
		parts := make([]string, 0, len(entries))
		for _, key := range compare.UnionKeys(entries, nil) {
			parts = append(parts, key+"="+formatValue(entries[key]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprint(v)
}
