package scenario

import (
	"github.com/l7mp/rxcollections/pkg/visualize"
)

// Diagram returns the visualization graph of the scenario pipeline.
func (s *Scenario) Diagram(name string) *visualize.Graph {
	g := &visualize.Graph{Name: name, Output: s.Output}
	for _, src := range s.Sources {
		g.Nodes = append(g.Nodes, visualize.Node{Name: src.Name, Source: true})
	}
	for _, st := range s.Pipeline {
		g.Nodes = append(g.Nodes, visualize.Node{Name: st.Name, Op: st.Op, Expr: st.Expr})
		if st.Op != "concat" {
			g.Edges = append(g.Edges, visualize.Edge{From: st.Input, To: st.Name, Position: -1})
			continue
		}
		for i, in := range st.Inputs {
			g.Edges = append(g.Edges, visualize.Edge{From: in, To: st.Name, Position: i})
		}
	}
	return g
}
