package dependencies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphOf(edges map[string][]string) *Graph {
	g := NewGraph()
	for from, to := range edges {
		g.AddEdges(from, to...)
	}
	return g
}

func TestDetector_Detect(t *testing.T) {
	tests := []struct {
		name     string
		edges    map[string][]string
		maxDepth int
		expected []Cycle
	}{
		{
			name:     "empty graph",
			edges:    map[string][]string{},
			maxDepth: 10,
			expected: []Cycle{},
		},
		{
			name: "chain is acyclic",
			edges: map[string][]string{
				"user":   {"common"},
				"common": {"base"},
			},
			maxDepth: 10,
			expected: []Cycle{},
		},
		{
			name: "diamond is acyclic",
			edges: map[string][]string{
				"a": {"b", "c"},
				"b": {"d"},
				"c": {"d"},
			},
			maxDepth: 10,
			expected: []Cycle{},
		},
		{
			name: "three package cycle starts at first root",
			edges: map[string][]string{
				"A": {"B"},
				"B": {"C"},
				"C": {"A"},
			},
			maxDepth: 10,
			expected: []Cycle{{"A", "B", "C", "A"}},
		},
		{
			name: "self dependency",
			edges: map[string][]string{
				"A": {"A"},
			},
			maxDepth: 10,
			expected: []Cycle{{"A", "A"}},
		},
		{
			name: "self dependency at depth one",
			edges: map[string][]string{
				"A": {"A"},
			},
			maxDepth: 1,
			expected: []Cycle{{"A", "A"}},
		},
		{
			name: "two package cycle",
			edges: map[string][]string{
				"a": {"b"},
				"b": {"a"},
			},
			maxDepth: 2,
			expected: []Cycle{{"a", "b", "a"}},
		},
		{
			name: "two package cycle beyond depth one",
			edges: map[string][]string{
				"a": {"b"},
				"b": {"a"},
			},
			maxDepth: 1,
			expected: []Cycle{},
		},
		{
			name: "three package cycle beyond depth two",
			edges: map[string][]string{
				"A": {"B"},
				"B": {"C"},
				"C": {"A"},
			},
			maxDepth: 2,
			expected: []Cycle{},
		},
		{
			name: "three package cycle at depth three",
			edges: map[string][]string{
				"A": {"B"},
				"B": {"C"},
				"C": {"A"},
			},
			maxDepth: 3,
			expected: []Cycle{{"A", "B", "C", "A"}},
		},
		{
			name: "disjoint cycles",
			edges: map[string][]string{
				"a": {"b"},
				"b": {"a"},
				"c": {"d"},
				"d": {"c"},
			},
			maxDepth: 10,
			expected: []Cycle{{"a", "b", "a"}, {"c", "d", "c"}},
		},
		{
			name: "cycle below acyclic prefix",
			edges: map[string][]string{
				"app":  {"core"},
				"core": {"util"},
				"util": {"core"},
			},
			maxDepth: 10,
			expected: []Cycle{{"core", "util", "core"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cycles := NewDetector(tt.maxDepth, TraversalShared).Detect(graphOf(tt.edges))
			assert.Equal(t, tt.expected, cycles)
		})
	}
}

func TestDetector_DepthBoundary(t *testing.T) {
	g := graphOf(map[string][]string{
		"p1": {"p2"},
		"p2": {"p3"},
		"p3": {"p1"},
	})

	assert.Empty(t, NewDetector(2, TraversalShared).Detect(g))

	cycles := NewDetector(10, TraversalShared).Detect(g)
	require.Len(t, cycles, 1)
	assert.Equal(t, 3, cycles[0].Size())
}

func TestDetector_Deterministic(t *testing.T) {
	g := graphOf(map[string][]string{
		"a": {"b", "c", "d"},
		"b": {"c", "a"},
		"c": {"a", "d"},
		"d": {"b"},
	})

	d := NewDetector(10, TraversalShared)
	first := d.Detect(g)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, d.Detect(g))
	}
}

func TestDetector_CyclesAreClosed(t *testing.T) {
	g := graphOf(map[string][]string{
		"a": {"b", "c"},
		"b": {"c", "a"},
		"c": {"a", "b"},
	})

	for _, mode := range []TraversalMode{TraversalShared, TraversalPerRoot} {
		for _, c := range NewDetector(10, mode).Detect(g) {
			require.GreaterOrEqual(t, len(c), 2)
			assert.Equal(t, c[0], c[len(c)-1], "cycle %v is not closed", c)
			for i := 0; i+1 < len(c); i++ {
				assert.True(t, g.HasEdge(c[i], c[i+1]), "cycle %v uses missing edge %s -> %s", c, c[i], c[i+1])
			}
		}
	}
}

func TestDetector_PerRootFindsCyclesSharedMisses(t *testing.T) {
	// The shared traversal finishes c while exploring a -> b -> c, so the
	// a -> c -> a cycle is never closed.
	g := graphOf(map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": {"a"},
	})

	shared := NewDetector(10, TraversalShared).Detect(g)
	assert.Equal(t, []Cycle{{"a", "b", "c", "a"}}, shared)

	perRoot := NewDetector(10, TraversalPerRoot).Detect(g)
	assert.Equal(t, []Cycle{{"a", "b", "c", "a"}, {"c", "a", "c"}}, perRoot)
}

func TestDetector_PerRootDeduplicatesRotations(t *testing.T) {
	g := graphOf(map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	})

	cycles := NewDetector(10, TraversalPerRoot).Detect(g)
	assert.Equal(t, []Cycle{{"A", "B", "C", "A"}}, cycles)
}

func TestDetector_NilGraph(t *testing.T) {
	assert.Nil(t, NewDetector(10, TraversalShared).Detect(nil))
}

func TestNewDetector_Defaults(t *testing.T) {
	d := NewDetector(0, "")
	assert.Equal(t, 1, d.MaxDepth())
	assert.Equal(t, TraversalShared, d.Mode())
}

func TestParseTraversalMode(t *testing.T) {
	mode, err := ParseTraversalMode("")
	require.NoError(t, err)
	assert.Equal(t, TraversalShared, mode)

	mode, err = ParseTraversalMode("per-root")
	require.NoError(t, err)
	assert.Equal(t, TraversalPerRoot, mode)

	_, err = ParseTraversalMode("bfs")
	assert.Error(t, err)
}

func TestCycle_String(t *testing.T) {
	c := Cycle{"p1", "p2", "p3", "p1"}
	assert.Equal(t, "p1 → p2 → p3 → p1", c.String())
	assert.Equal(t, 3, c.Size())
}

func TestCycle_Normalize(t *testing.T) {
	assert.Equal(t, Cycle{"a", "b", "c", "a"}, Cycle{"c", "a", "b", "c"}.Normalize())
	assert.Equal(t, Cycle{"a", "b", "c", "a"}, Cycle{"a", "b", "c", "a"}.Normalize())
	assert.Equal(t, Cycle{"x", "x"}, Cycle{"x", "x"}.Normalize())
}
