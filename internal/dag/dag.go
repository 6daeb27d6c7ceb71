// Package dag implements the dependency graph of a collection pipeline: nodes are sources and
// operator stages, an edge runs from an input to the stage that consumes it.
package dag

import (
	"fmt"
	"sort"
	"strings"
)

// Graph is a directed graph with labeled nodes kept in insertion order.
type Graph struct {
	Nodes   []string
	byLabel map[string]int
	edges   map[string]map[string]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{byLabel: map[string]int{}, edges: map[string]map[string]bool{}}
}

// AddNode adds a node. It returns false if the label is already taken.
func (g *Graph) AddNode(label string) bool {
	if _, ok := g.byLabel[label]; ok {
		return false
	}
	g.byLabel[label] = len(g.Nodes)
	g.Nodes = append(g.Nodes, label)
	g.edges[label] = map[string]bool{}
	return true
}

func (g *Graph) HasNode(label string) bool {
	_, ok := g.byLabel[label]
	return ok
}

// AddEdge adds an edge between two existing nodes.
func (g *Graph) AddEdge(from, to string) error {
	if !g.HasNode(from) {
		return fmt.Errorf("unknown node %q", from)
	}
	if !g.HasNode(to) {
		return fmt.Errorf("unknown node %q", to)
	}
	g.edges[from][to] = true
	return nil
}

func (g *Graph) HasEdge(from, to string) bool {
	return g.edges[from] != nil && g.edges[from][to]
}

// Edges returns the successors of a node in insertion order.
func (g *Graph) Edges(from string) []string {
	edges := make([]string, 0, len(g.edges[from]))
	for k := range g.edges[from] {
		edges = append(edges, k)
	}
	sort.Slice(edges, func(i, j int) bool { return g.byLabel[edges[i]] < g.byLabel[edges[j]] })
	return edges
}

// Roots returns the nodes without an incoming edge.
func (g *Graph) Roots() []string {
	indeg := g.indegrees()
	roots := []string{}
	for _, n := range g.Nodes {
		if indeg[n] == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

// Sort returns the nodes in a topological order, breaking ties by insertion order. It fails if
// the graph has a cycle.
func (g *Graph) Sort() ([]string, error) {
	indeg := g.indegrees()
	ready := g.Roots()
	order := make([]string, 0, len(g.Nodes))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		for _, m := range g.Edges(n) {
			indeg[m]--
			if indeg[m] == 0 {
				ready = append(ready, m)
			}
		}
		sort.Slice(ready, func(i, j int) bool { return g.byLabel[ready[i]] < g.byLabel[ready[j]] })
	}
	if len(order) < len(g.Nodes) {
		cyclic := []string{}
		for _, n := range g.Nodes {
			if indeg[n] > 0 {
				cyclic = append(cyclic, n)
			}
		}
		return nil, fmt.Errorf("cycle among %s", strings.Join(cyclic, ", "))
	}
	return order, nil
}

func (g *Graph) indegrees() map[string]int {
	indeg := make(map[string]int, len(g.Nodes))
	for _, from := range g.Nodes {
		for to := range g.edges[from] {
			indeg[to]++
		}
	}
	return indeg
}
