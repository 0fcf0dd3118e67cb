package dependencies

import (
	"fmt"
	"strings"
)

// CytoscapeNode represents a node in Cytoscape.js format
type CytoscapeNode struct {
	Data CytoscapeNodeData `json:"data"`
}

// CytoscapeNodeData contains node data for Cytoscape.js
type CytoscapeNodeData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "package", "current", "dependency", "dependent"
	// InCycle marks packages that belong to a reported cycle
	InCycle bool `json:"in_cycle,omitempty"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains edge data for Cytoscape.js
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type,omitempty"` // "direct", "transitive", "depends-on"
	Cycle  bool   `json:"cycle,omitempty"`
}

// CytoscapeGraph represents the complete graph in Cytoscape.js format
type CytoscapeGraph struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// Direction selects which side of a focused package is rendered
type Direction string

const (
	DirectionDependencies Direction = "dependencies"
	DirectionDependents   Direction = "dependents"
	DirectionBoth         Direction = "both"
)

// View limits what a rendering includes. The zero value renders the whole graph.
type View struct {
	// Focus restricts the rendering to one package and its neighbourhood.
	Focus string
	// Direction defaults to DirectionDependencies.
	Direction Direction
	// Transitive follows dependencies beyond the first hop.
	Transitive bool
	// MaxDepth bounds transitive expansion. Zero or negative means unlimited.
	MaxDepth int
}

type renderNode struct {
	id  string
	typ string
}

type renderEdge struct {
	source, target string
	typ            string
}

type selection struct {
	nodes   []renderNode
	edges   []renderEdge
	inCycle map[string]bool
	cycleOf map[string]bool // "from->to" edges on a reported cycle
}

func edgeID(from, to string) string {
	return from + "->" + to
}

func selectGraph(g *Graph, cycles []Cycle, v View) *selection {
	s := &selection{
		inCycle: make(map[string]bool),
		cycleOf: make(map[string]bool),
	}
	for _, c := range cycles {
		for i := 0; i+1 < len(c); i++ {
			s.inCycle[c[i]] = true
			s.cycleOf[edgeID(c[i], c[i+1])] = true
		}
	}

	if v.Focus == "" {
		for _, n := range g.Nodes() {
			s.nodes = append(s.nodes, renderNode{id: n, typ: "package"})
		}
		for _, from := range g.Packages() {
			for _, to := range g.Dependencies(from) {
				s.edges = append(s.edges, renderEdge{source: from, target: to, typ: "direct"})
			}
		}
		return s
	}

	direction := v.Direction
	if direction == "" {
		direction = DirectionDependencies
	}

	visited := map[string]bool{v.Focus: true}
	s.nodes = append(s.nodes, renderNode{id: v.Focus, typ: "current"})

	if direction == DirectionDependencies || direction == DirectionBoth {
		maxDepth := 1
		if v.Transitive {
			maxDepth = -1
			if v.MaxDepth > 0 {
				maxDepth = v.MaxDepth
			}
		}
		s.addDependencies(g, v.Focus, visited, maxDepth, 0)
	}

	if direction == DirectionDependents || direction == DirectionBoth {
		for _, dependent := range g.Dependents(v.Focus) {
			if !visited[dependent] {
				s.nodes = append(s.nodes, renderNode{id: dependent, typ: "dependent"})
				visited[dependent] = true
			}
			s.edges = append(s.edges, renderEdge{source: dependent, target: v.Focus, typ: "depends-on"})
		}
	}

	return s
}

// addDependencies adds dependencies of pkg up to maxDepth hops (negative means unlimited)
func (s *selection) addDependencies(g *Graph, pkg string, visited map[string]bool, maxDepth, depth int) {
	if maxDepth >= 0 && depth >= maxDepth {
		return
	}

	edgeType := "direct"
	if depth > 0 {
		edgeType = "transitive"
	}

	for _, dep := range g.Dependencies(pkg) {
		if !visited[dep] {
			s.nodes = append(s.nodes, renderNode{id: dep, typ: "dependency"})
			visited[dep] = true
			s.addDependencies(g, dep, visited, maxDepth, depth+1)
		}
		s.edges = append(s.edges, renderEdge{source: pkg, target: dep, typ: edgeType})
	}
}

// ToCytoscape renders g in Cytoscape.js format, flagging members of cycles
func ToCytoscape(g *Graph, cycles []Cycle, v View) CytoscapeGraph {
	s := selectGraph(g, cycles, v)

	out := CytoscapeGraph{
		Nodes: make([]CytoscapeNode, 0, len(s.nodes)),
		Edges: make([]CytoscapeEdge, 0, len(s.edges)),
	}
	for _, n := range s.nodes {
		out.Nodes = append(out.Nodes, CytoscapeNode{
			Data: CytoscapeNodeData{
				ID:      n.id,
				Name:    n.id,
				Type:    n.typ,
				InCycle: s.inCycle[n.id],
			},
		})
	}
	for _, e := range s.edges {
		id := edgeID(e.source, e.target)
		out.Edges = append(out.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     id,
				Source: e.source,
				Target: e.target,
				Type:   e.typ,
				Cycle:  s.cycleOf[id],
			},
		})
	}
	return out
}

// ToDOT renders g in Graphviz DOT format. Cycle edges are drawn in red.
func ToDOT(g *Graph, cycles []Cycle, v View) string {
	s := selectGraph(g, cycles, v)

	var b strings.Builder
	b.WriteString("digraph packages {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	for _, n := range s.nodes {
		attrs := make([]string, 0, 2)
		if n.typ == "current" {
			attrs = append(attrs, "style=bold")
		}
		if s.inCycle[n.id] {
			attrs = append(attrs, "color=red")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&b, "  %q;\n", n.id)
		} else {
			fmt.Fprintf(&b, "  %q [%s];\n", n.id, strings.Join(attrs, ", "))
		}
	}

	for _, e := range s.edges {
		attrs := make([]string, 0, 2)
		if e.typ == "transitive" {
			attrs = append(attrs, "style=dashed")
		}
		if s.cycleOf[edgeID(e.source, e.target)] {
			attrs = append(attrs, "color=red")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&b, "  %q -> %q;\n", e.source, e.target)
		} else {
			fmt.Fprintf(&b, "  %q -> %q [%s];\n", e.source, e.target, strings.Join(attrs, ", "))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// ToText renders one "from -> to" line per edge. Edges on a cycle are
// suffixed with " [cycle]". Packages without edges are listed alone.
func ToText(g *Graph, cycles []Cycle, v View) string {
	s := selectGraph(g, cycles, v)

	var b strings.Builder
	linked := make(map[string]bool, len(s.nodes))
	for _, e := range s.edges {
		linked[e.source] = true
		linked[e.target] = true
		b.WriteString(e.source)
		b.WriteString(" -> ")
		b.WriteString(e.target)
		if s.cycleOf[edgeID(e.source, e.target)] {
			b.WriteString(" [cycle]")
		}
		b.WriteByte('\n')
	}
	for _, n := range s.nodes {
		if !linked[n.id] {
			b.WriteString(n.id)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ParseDirection converts a flag value into a Direction. The empty string
// selects DirectionDependencies.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", DirectionDependencies:
		return DirectionDependencies, nil
	case DirectionDependents:
		return DirectionDependents, nil
	case DirectionBoth:
		return DirectionBoth, nil
	default:
		return "", fmt.Errorf("unknown direction %q (must be %s, %s or %s)", s, DirectionDependencies, DirectionDependents, DirectionBoth)
	}
}
