package dependencies

import (
	"sort"
)

// FileDependencies holds the packages imported by a single compilation unit
type FileDependencies struct {
	Package string
	Imports []string
}

// Graph represents the package dependency graph
type Graph struct {
	edges map[string]map[string]struct{}
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		edges: make(map[string]map[string]struct{}),
	}
}

// BuildGraph folds per-file dependency sets into one graph. A package's
// dependencies are the union over all of its files.
func BuildGraph(files []FileDependencies) *Graph {
	g := NewGraph()
	for _, f := range files {
		g.AddEdges(f.Package, f.Imports...)
	}
	return g
}

// AddEdges adds edges from pkg to each dependency. Adding no dependencies
// leaves the graph unchanged.
func (g *Graph) AddEdges(pkg string, deps ...string) {
	if pkg == "" || len(deps) == 0 {
		return
	}

	set, ok := g.edges[pkg]
	if !ok {
		set = make(map[string]struct{}, len(deps))
		g.edges[pkg] = set
	}
	for _, dep := range deps {
		if dep != "" {
			set[dep] = struct{}{}
		}
	}
	if len(set) == 0 {
		delete(g.edges, pkg)
	}
}

// Packages returns the declaring packages, sorted
func (g *Graph) Packages() []string {
	pkgs := make([]string, 0, len(g.edges))
	for pkg := range g.edges {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	return pkgs
}

// Nodes returns every package that is a key or an edge target, sorted
func (g *Graph) Nodes() []string {
	seen := make(map[string]struct{}, len(g.edges))
	for pkg, deps := range g.edges {
		seen[pkg] = struct{}{}
		for dep := range deps {
			seen[dep] = struct{}{}
		}
	}

	nodes := make([]string, 0, len(seen))
	for n := range seen {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// Dependencies returns the direct dependencies of pkg, sorted
func (g *Graph) Dependencies(pkg string) []string {
	set := g.edges[pkg]
	if len(set) == 0 {
		return nil
	}

	deps := make([]string, 0, len(set))
	for dep := range set {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// HasEdge reports whether from depends directly on to
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edges[from][to]
	return ok
}

// Len returns the number of declaring packages
func (g *Graph) Len() int {
	return len(g.edges)
}

// EdgeCount returns the number of distinct edges
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.edges {
		n += len(deps)
	}
	return n
}

// Dependents returns the packages that depend directly on pkg, sorted
func (g *Graph) Dependents(pkg string) []string {
	dependents := make([]string, 0)
	for from, deps := range g.edges {
		if _, ok := deps[pkg]; ok {
			dependents = append(dependents, from)
		}
	}
	sort.Strings(dependents)
	return dependents
}

// TransitiveDependencies returns every package reachable from pkg, sorted.
// pkg itself is included only if it lies on a cycle.
func (g *Graph) TransitiveDependencies(pkg string) []string {
	visited := make(map[string]bool)
	queue := g.Dependencies(pkg)

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if visited[next] {
			continue
		}
		visited[next] = true
		queue = append(queue, g.Dependencies(next)...)
	}

	result := make([]string, 0, len(visited))
	for p := range visited {
		result = append(result, p)
	}
	sort.Strings(result)
	return result
}

// Edges returns a copy of the adjacency as sorted slices
func (g *Graph) Edges() map[string][]string {
	out := make(map[string][]string, len(g.edges))
	for pkg := range g.edges {
		out[pkg] = g.Dependencies(pkg)
	}
	return out
}
