// Package dependency estimates the dependency structure of a set of
// labeling functions: which pairs of columns of a label matrix are too
// correlated to treat as conditionally independent voters. The resulting
// edge set feeds the generative label model, which allocates joint
// parameters for each dependent pair.
package dependency

import (
	"sort"
)

// Abstain is the sentinel vote meaning "no vote". Abstentions are excluded
// from every pairwise statistic; they are never treated as a class.
const Abstain = -1

// Edge is an unordered dependency pair between labeling functions I and J,
// held in canonical form I < J.
type Edge struct {
	I, J int
}

// NewEdge returns the canonical form of the pair (i, j).
func NewEdge(i, j int) Edge {
	if i > j {
		i, j = j, i
	}
	return Edge{I: i, J: j}
}

// EdgeSet is a set of undirected dependency edges. The zero value is not
// usable; construct with NewEdgeSet.
type EdgeSet map[Edge]struct{}

// NewEdgeSet creates an empty EdgeSet.
func NewEdgeSet() EdgeSet {
	return make(EdgeSet)
}

// Add inserts the pair (i, j). Self-pairs are ignored; duplicates collapse.
func (s EdgeSet) Add(i, j int) {
	if i == j {
		return
	}
	s[NewEdge(i, j)] = struct{}{}
}

// Contains reports whether the pair (i, j) is in the set, in either order.
func (s EdgeSet) Contains(i, j int) bool {
	_, ok := s[NewEdge(i, j)]
	return ok
}

// Len returns the number of edges.
func (s EdgeSet) Len() int {
	return len(s)
}

// Slice returns the edges sorted by (I, J), for deterministic iteration.
func (s EdgeSet) Slice() []Edge {
	edges := make([]Edge, 0, len(s))
	for e := range s {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].I != edges[b].I {
			return edges[a].I < edges[b].I
		}
		return edges[a].J < edges[b].J
	})
	return edges
}

// MaxIndex returns the largest function index referenced by the set, or -1
// for an empty set.
func (s EdgeSet) MaxIndex() int {
	max := -1
	for e := range s {
		if e.J > max {
			max = e.J
		}
	}
	return max
}
