// Package diff computes difference trees between two versions of a schema object graph.
//
// A tree is built from three node types:
//
//   - ObjectDiff compares two structured objects, with one child per property
//   - CollectionDiff aligns two sequences of objects and holds one ObjectDiff per element
//   - ScalarDiff is a leaf comparing two plain values (strings, lists, bytes, maps)
//
// Construction and equality share a single walk: ObjectDiff runs compare.Equal with a
// policy that decorates the caller's base policy and materialises a child node for every
// property the base policy compares. Filtering the base policy (compare.Excluding,
// compare.Only) therefore filters the tree.
//
// Collections are aligned with a longest common subsequence over policy equality. Elements
// left unmatched are then paired by name when the sequences support name lookup, so a
// reordered or edited element is reported as one Modified pair rather than a deletion and
// an addition. Order-significant sequences such as table columns are matched name first
// and compared without their ordinal, so moving a column is not a change.
//
// Usage:
//
//	root := diff.Objects(originalTable, targetTable)
//	if root.State() == diff.Modified {
//		fmt.Println(diff.Render(root))
//	}
//
//	// Ignore timestamps everywhere below the root.
//	root.RemoveRecursive(func(key string, _ diff.Node) bool {
//		return key == "createdAt" || key == "lastAlteredAt"
//	})
//
//	// Did any index's predicate change?
//	changed := diff.FindModified[*model.Index](root, "where")
//
// Trees are not safe for concurrent mutation, but independent comparisons may run in
// parallel: policies are immutable and every alignment allocates its own state.
package diff
