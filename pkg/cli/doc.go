// Package cli provides the pkgcycle command-line interface.
//
// # Commands
//
// check: Fail (or warn) when packages depend on each other cyclically
//
//	pkgcycle check \
//		-dir . \
//		-max-depth 10 \
//		-exclude 'com\.acme\.generated\..*' \
//		-format text
//
// graph: Print the filtered dependency graph
//
//	pkgcycle graph -format dot > packages.dot
//	pkgcycle graph -package com.acme.core -direction both -format cytoscape
//
// watch: Re-run check after every burst of source changes
//
//	pkgcycle watch -delay 2s
//
// rules: List available rules and their settings
//
//	pkgcycle rules
//
// # Configuration
//
// Settings come from pkgcycle.yaml in -dir (or -config), then PKGCYCLE_*
// environment variables, then flags. See package config.
//
// # Exit Codes
//
//	0  no cycles, cycles reported as warnings, or no source directory
//	1  cycles found with failOnError
//	2  the check could not run (bad configuration, unreadable source root)
package cli
