// Package visualize renders collection pipelines as diagrams.
package visualize

import (
	"fmt"

	"github.com/emicklei/dot"
)

// Graph is the visualization graph of a pipeline.
type Graph struct {
	Name   string
	Nodes  []Node
	Edges  []Edge
	Output string
}

// Node is a source or an operator stage.
type Node struct {
	Name   string
	Op     string // empty for sources
	Expr   string
	Source bool
}

// Edge connects an input to the stage consuming it. Position is the index of the input for
// multi-input stages, -1 otherwise.
type Edge struct {
	From, To string
	Position int
}

// Generator renders a graph in some diagram format.
type Generator interface {
	Generate(g *Graph) string
}

// NewGenerator returns the generator for a format, "dot" or "mermaid".
func NewGenerator(format string) (Generator, error) {
	switch format {
	case "dot", "":
		return &DotGenerator{}, nil
	case "mermaid":
		return &MermaidGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown diagram format %q", format)
	}
}

// label renders a stage as "name: op(expr)".
func (n Node) label() string {
	if n.Source {
		return n.Name
	}
	if n.Expr == "" {
		return fmt.Sprintf("%s: %s", n.Name, n.Op)
	}
	return fmt.Sprintf("%s: %s(%s)", n.Name, n.Op, n.Expr)
}

// BuildDotGraph creates a dot.Graph from the visualization graph. The result can be rendered in
// different formats.
func BuildDotGraph(g *Graph) *dot.Graph {
	return buildGraph(g, styleDot)
}

// BuildMermaidGraph creates a dot.Graph whose node shapes and styles use Mermaid syntax.
func BuildMermaidGraph(g *Graph) *dot.Graph {
	return buildGraph(g, styleMermaid)
}

type styler func(node dot.Node, n Node, output bool)

func styleDot(node dot.Node, n Node, output bool) {
	switch {
	case n.Source:
		node.Attr("shape", "ellipse").
			Attr("style", "filled").
			Attr("fillcolor", "lightgreen")
	case output:
		node.Attr("shape", "box").
			Attr("style", "filled,rounded").
			Attr("fillcolor", "lightcyan").
			Attr("penwidth", "2")
	default:
		node.Attr("shape", "box").
			Attr("style", "filled,rounded").
			Attr("fillcolor", "lightblue").
			Attr("color", "darkblue")
	}
}

// styleMermaid sets dot.MermaidShape values; dot's Mermaid writer type-asserts the shape attribute.
func styleMermaid(node dot.Node, n Node, output bool) {
	switch {
	case n.Source:
		node.Attr("shape", dot.MermaidShapeStadium).Attr("style", "fill:lightgreen")
	case output:
		node.Attr("shape", dot.MermaidShapeRound).Attr("style", "fill:lightcyan,stroke-width:2px")
	default:
		node.Attr("shape", dot.MermaidShapeRound).Attr("style", "fill:lightblue,stroke:darkblue")
	}
}

func buildGraph(g *Graph, style styler) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "LR")
	graph.Attr("newrank", "true")
	if g.Name != "" {
		graph.Attr("label", g.Name)
		graph.Attr("labelloc", "t")
		graph.Attr("fontsize", "16")
	}

	nodes := make(map[string]dot.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		node := graph.Node(n.Name).Attr("label", n.label()).Attr("fontname", "helvetica")
		style(node, n, n.Name == g.Output)
		nodes[n.Name] = node
	}

	for _, e := range g.Edges {
		from, fromExists := nodes[e.From]
		to, toExists := nodes[e.To]
		if !fromExists || !toExists {
			continue
		}
		edge := graph.Edge(from, to)
		if e.Position >= 0 {
			edge.Attr("label", fmt.Sprintf("#%d", e.Position)).
				Attr("fontname", "helvetica").
				Attr("fontsize", "10")
		}
	}

	return graph
}
