package dependencies

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth bounds the traversal path length when none is configured
const DefaultMaxDepth = 10

// Cycle is a closed walk through the graph. The first and last elements are
// the same package.
type Cycle []string

// String renders the cycle as an arrow-joined chain
func (c Cycle) String() string {
	return strings.Join(c, " → ")
}

// Size returns the number of distinct packages in the cycle
func (c Cycle) Size() int {
	if len(c) < 2 {
		return len(c)
	}
	return len(c) - 1
}

// Normalize rotates the cycle so that it starts at its smallest package
func (c Cycle) Normalize() Cycle {
	if len(c) < 2 {
		return append(Cycle(nil), c...)
	}
	body := c[:len(c)-1]
	start := 0
	for i, pkg := range body {
		if pkg < body[start] {
			start = i
		}
	}

	out := make(Cycle, 0, len(c))
	out = append(out, body[start:]...)
	out = append(out, body[:start]...)
	out = append(out, body[start])
	return out
}

func (c Cycle) key() string {
	return strings.Join(c.Normalize(), "\x00")
}

// TraversalMode selects how traversal state is shared between DFS roots
type TraversalMode string

const (
	// TraversalShared never clears finished packages between roots
	TraversalShared TraversalMode = "shared"
	// TraversalPerRoot starts every root with fresh state and deduplicates cycles
	TraversalPerRoot TraversalMode = "per-root"
)

// ParseTraversalMode converts a configuration value into a TraversalMode.
// The empty string selects TraversalShared.
func ParseTraversalMode(s string) (TraversalMode, error) {
	switch TraversalMode(s) {
	case "", TraversalShared:
		return TraversalShared, nil
	case TraversalPerRoot:
		return TraversalPerRoot, nil
	default:
		return "", fmt.Errorf("unknown traversal mode %q (must be %s or %s)", s, TraversalShared, TraversalPerRoot)
	}
}

// Detector finds cycles with a depth-bounded DFS
type Detector struct {
	maxDepth int
	mode     TraversalMode
}

// NewDetector creates a detector. maxDepth below 1 is treated as 1.
func NewDetector(maxDepth int, mode TraversalMode) *Detector {
	if maxDepth < 1 {
		maxDepth = 1
	}
	if mode == "" {
		mode = TraversalShared
	}
	return &Detector{maxDepth: maxDepth, mode: mode}
}

// MaxDepth returns the traversal path bound
func (d *Detector) MaxDepth() int {
	return d.maxDepth
}

// Mode returns the traversal mode
func (d *Detector) Mode() TraversalMode {
	return d.mode
}

// Detect returns every cycle found in g. Roots and dependencies are visited
// in sorted order, so repeated calls on the same graph return the same cycles.
func (d *Detector) Detect(g *Graph) []Cycle {
	if g == nil {
		return nil
	}
	cycles := make([]Cycle, 0)
	roots := g.Packages()

	if d.mode == TraversalPerRoot {
		seen := make(map[string]bool)
		for _, root := range roots {
			t := newTraversal(g, d.maxDepth)
			t.run(root)
			for _, c := range t.cycles {
				k := c.key()
				if seen[k] {
					continue
				}
				seen[k] = true
				cycles = append(cycles, c)
			}
		}
		return cycles
	}

	t := newTraversal(g, d.maxDepth)
	for _, root := range roots {
		if t.states[root] != stateFinished {
			t.run(root)
		}
	}
	return append(cycles, t.cycles...)
}

type visitState uint8

const (
	stateUnvisited visitState = iota
	stateOnStack
	stateFinished
)

type frame struct {
	pkg  string
	deps []string
	next int
}

// traversal holds the state of one detection run
type traversal struct {
	graph    *Graph
	maxDepth int
	states   map[string]visitState
	position map[string]int
	path     []string
	stack    []frame
	cycles   []Cycle
}

func newTraversal(g *Graph, maxDepth int) *traversal {
	return &traversal{
		graph:    g,
		maxDepth: maxDepth,
		states:   make(map[string]visitState),
		position: make(map[string]int),
	}
}

// run explores everything reachable from root using an explicit frame stack
func (t *traversal) run(root string) {
	t.visit(root)

	for len(t.stack) > 0 {
		top := len(t.stack) - 1
		f := &t.stack[top]
		if f.next < len(f.deps) {
			dep := f.deps[f.next]
			f.next++
			t.visit(dep)
			continue
		}

		pkg := f.pkg
		t.stack = t.stack[:top]
		t.path = t.path[:len(t.path)-1]
		delete(t.position, pkg)
		t.states[pkg] = stateFinished
	}
}

// visit either closes a cycle, prunes, or pushes pkg onto the path
func (t *traversal) visit(pkg string) {
	switch t.states[pkg] {
	case stateOnStack:
		start := t.position[pkg]
		cycle := make(Cycle, 0, len(t.path)-start+1)
		cycle = append(cycle, t.path[start:]...)
		cycle = append(cycle, pkg)
		t.cycles = append(t.cycles, cycle)
		return
	case stateFinished:
		return
	}

	if len(t.path) >= t.maxDepth {
		return
	}

	t.states[pkg] = stateOnStack
	t.position[pkg] = len(t.path)
	t.path = append(t.path, pkg)
	t.stack = append(t.stack, frame{pkg: pkg, deps: t.graph.Dependencies(pkg)})
}
