// Package dependencies builds the package dependency graph and searches it for cycles.
//
// # Overview
//
// A Graph maps each declaring package to the set of packages it imports.
// Packages without surviving dependencies are not keys, though they may still
// be the target of another package's edge.
//
// The Detector runs a depth-first search bounded by a maximum path length.
// Every package is in one of three states: unvisited, on the current path, or
// finished. Reaching a package that is on the current path closes a cycle,
// which is reported as the path suffix starting at that package with the
// package appended again:
//
//	g := dependencies.BuildGraph([]dependencies.FileDependencies{
//		{Package: "a", Imports: []string{"b"}},
//		{Package: "b", Imports: []string{"c"}},
//		{Package: "c", Imports: []string{"a"}},
//	})
//
//	cycles := dependencies.NewDetector(10, dependencies.TraversalShared).Detect(g)
//	for _, cycle := range cycles {
//		fmt.Println(cycle) // a → b → c → a
//	}
//
// # Traversal Modes
//
// TraversalShared keeps finished packages finished across roots, so each
// package is expanded once per analysis. A cycle reachable only through a
// package finished by an earlier, unrelated root can be missed.
//
// TraversalPerRoot resets traversal state for every root and deduplicates
// cycles by rotation. It is complete up to the depth bound but does more work.
//
// Cycles longer than the depth bound are not guaranteed to be found.
//
// # Visualization
//
// ToDOT and ToCytoscape render the graph, optionally focused on one package,
// with cycle edges highlighted.
package dependencies
