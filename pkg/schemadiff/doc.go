// Package schemadiff compares schema catalogs end to end.
//
// It ties the other packages together: catalogs are loaded with the schema package, compared
// with the diff engine using the options and ignore list of a config.Config, and inspected for
// renamed objects. The results can be tallied per object kind with Summarize.
//
// Basic usage:
//
//	cfg := config.Default()
//	current, _ := schema.LoadFile("db/current.sql")
//	target, _ := schema.LoadFile("db/target.sql")
//
//	result := schemadiff.Compare(current, target, cfg)
//	fmt.Println(result.Root)
//	fmt.Println(schemadiff.Summarize(result.Root))
//	for _, r := range result.Renames {
//		fmt.Println(r)
//	}
//
// Many pairs can be compared concurrently with CompareAll, which loads each pair from disk and
// honours cancellation of its context between comparisons.
package schemadiff
