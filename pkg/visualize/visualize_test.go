package visualize

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestVisualize(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Visualize Suite")
}

var _ = Describe("Visualize", func() {
	g := &Graph{
		Name: "demo",
		Nodes: []Node{
			{Name: "a", Source: true},
			{Name: "b", Source: true},
			{Name: "all", Op: "concat"},
			{Name: "big", Op: "where", Expr: "x > 10"},
		},
		Edges: []Edge{
			{From: "a", To: "all", Position: 0},
			{From: "b", To: "all", Position: 1},
			{From: "all", To: "big", Position: -1},
			{From: "nope", To: "big", Position: -1},
		},
		Output: "big",
	}

	It("should label stages with their operator", func() {
		Expect(g.Nodes[0].label()).To(Equal("a"))
		Expect(g.Nodes[2].label()).To(Equal("all: concat"))
		Expect(g.Nodes[3].label()).To(Equal("big: where(x > 10)"))
	})

	It("should render dot", func() {
		gen, err := NewGenerator("dot")
		Expect(err).NotTo(HaveOccurred())
		out := gen.Generate(g)
		Expect(out).To(HavePrefix("digraph"))
		Expect(out).To(ContainSubstring("big: where(x > 10)"))
		Expect(out).To(ContainSubstring("#1"))
		Expect(out).To(ContainSubstring("lightcyan"))
	})

	It("should skip dangling edges", func() {
		Expect((&DotGenerator{}).Generate(g)).NotTo(ContainSubstring("nope"))
	})

	It("should render mermaid", func() {
		gen, err := NewGenerator("mermaid")
		Expect(err).NotTo(HaveOccurred())
		out := gen.Generate(g)
		Expect(out).To(HavePrefix("```mermaid\n"))
		Expect(out).To(HaveSuffix("```\n"))
		Expect(out).To(ContainSubstring("all: concat"))
		Expect(out).To(ContainSubstring(`(["a"]);`))
		Expect(out).To(ContainSubstring(`("all: concat");`))
		Expect(out).To(ContainSubstring("fill:lightcyan"))
		Expect(out).To(ContainSubstring(`-->|"#1"|`))
	})

	It("should keep graphviz shapes for dot", func() {
		out := (&DotGenerator{}).Generate(g)
		Expect(out).To(ContainSubstring("ellipse"))
		Expect(out).To(ContainSubstring("filled,rounded"))
	})

	It("should reject unknown formats", func() {
		_, err := NewGenerator("svg")
		Expect(err).To(HaveOccurred())
	})
})
