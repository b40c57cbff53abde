// Package format renders difference trees produced by the diff package as indented text.
//
// Each level of the tree is indented by IndentSize spaces. Objects are introduced by a
// header naming their kind, name and state, collections by their property name and state,
// and leaves by their value change:
//
//	Table "users" (Modified)
//	  columns (Modified)
//	    Column "email" (Added)
//	    Column "name" (Modified)
//	      dataType: (VARCHAR(50) -> VARCHAR(100))
//
// Children are ordered with identifying properties first, then scalar values, nested
// objects and collections. Unchanged children are hidden unless ShowUnchanged is set, and
// States restricts output to the subtrees that contain nodes in the listed states.
//
// Example usage:
//
//	root := diff.Objects(original, target)
//
//	var buf bytes.Buffer
//	err := format.Format(&buf, format.Defaults, root)
//
//	// Only additions, highlighted.
//	formatter := format.New(format.FormatterOptions{
//		Color:  true,
//		States: []diff.State{diff.Added},
//	})
//	fmt.Println(formatter.Node(root))
package format
