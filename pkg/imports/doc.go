// Package imports derives package-level dependency edges from source files.
//
// # Overview
//
// The owning package of a file comes from its directory relative to the
// source root, not from its package declaration. Dependencies come from the
// textual import declarations only: there is no symbol or alias resolution.
//
// For each import line the keyword and everything from the first ';' onward
// are removed. Static imports and wildcard imports are ignored. The dependency
// is the text before the last '.' of the imported name:
//
//	import com.acme.core.Service;          // com.acme.core
//	import com.acme.core.*;                // ignored
//	import static com.acme.core.Util.max;  // ignored
//	import Foo;                            // ignored, default package
//
// # Usage Example
//
//	ex := imports.NewExtractor(root, filter)
//	fi := ex.Extract(path)
//	if fi.Err != nil {
//		// unreadable file: contributes no edges
//	}
//	fmt.Println(fi.Package, fi.Imports)
package imports
