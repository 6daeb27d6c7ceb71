// Package scenario loads and runs collection scenarios: a set of list sources, a pipeline of
// operators over them and a sequence of mutations. Every notification of the output stage is
// printed as it is published.
package scenario

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/l7mp/rxcollections/internal/dag"
	"github.com/l7mp/rxcollections/pkg/expression"
)

// Scenario is the top-level scenario document.
type Scenario struct {
	// Sources are the mutable lists of the scenario.
	Sources []SourceSpec `json:"sources"`
	// Pipeline is a sequence of operator stages.
	Pipeline []StageSpec `json:"pipeline,omitempty"`
	// Output names the stage or source whose notifications are printed. Defaults to the last
	// stage, or the first source if there are no stages.
	Output string `json:"output,omitempty"`
	// Steps are the mutations to run, in order.
	Steps []Step `json:"steps,omitempty"`
}

// SourceSpec declares a list source and its initial items.
type SourceSpec struct {
	Name  string `json:"name"`
	Items []any  `json:"items,omitempty"`
}

// StageSpec declares an operator. Name defaults to "stage-<index>". Input defaults to the previous
// stage, or the first source for the first stage. Stages may be listed in any order as long as
// the inputs form no cycle.
type StageSpec struct {
	Name   string   `json:"name,omitempty"`
	Op     string   `json:"op"`
	Input  string   `json:"input,omitempty"`
	Inputs []string `json:"inputs,omitempty"`
	// Expr is a CEL expression over the item "x": a predicate for where, a mapping for select and
	// the sort key for sort and sortset.
	Expr string `json:"expr,omitempty"`
}

// Step is one mutation of a source.
type Step struct {
	Source string `json:"source"`
	Op     string `json:"op"`
	Index  int    `json:"index,omitempty"`
	Count  int    `json:"count,omitempty"`
	Item   any    `json:"item,omitempty"`
	Old    any    `json:"old,omitempty"`
	Items  []any  `json:"items,omitempty"`
}

// Load reads a scenario from a YAML or JSON file.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(b)
}

// Parse decodes a scenario from YAML or JSON.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	s.normalize()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) normalize() {
	for i := range s.Sources {
		s.Sources[i].Items = normalizeAll(s.Sources[i].Items)
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		st.Item, st.Old = expression.Normalize(st.Item), expression.Normalize(st.Old)
		st.Items = normalizeAll(st.Items)
	}
	if len(s.Sources) == 0 {
		return
	}

	// resolve the positional defaults so that the stages can be built in any order
	prev := s.Sources[0].Name
	for i := range s.Pipeline {
		st := &s.Pipeline[i]
		if st.Name == "" {
			st.Name = fmt.Sprintf("stage-%d", i)
		}
		if st.Op != "concat" && st.Input == "" {
			st.Input = prev
		}
		prev = st.Name
	}
	if s.Output == "" {
		s.Output = prev
	}
}

func normalizeAll(vs []any) []any {
	for i := range vs {
		vs[i] = expression.Normalize(vs[i])
	}
	return vs
}

func (s *Scenario) validate() error {
	if len(s.Sources) == 0 {
		return fmt.Errorf("invalid scenario: no sources")
	}
	for _, src := range s.Sources {
		if src.Name == "" {
			return fmt.Errorf("invalid scenario: empty source name")
		}
	}
	g, err := s.Graph()
	if err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	if !g.HasNode(s.Output) {
		return fmt.Errorf("invalid scenario: unknown output %q", s.Output)
	}
	isSource := map[string]bool{}
	for _, src := range s.Sources {
		isSource[src.Name] = true
	}
	for i, st := range s.Steps {
		if !isSource[st.Source] {
			return fmt.Errorf("invalid scenario: step %d: unknown source %q", i, st.Source)
		}
	}
	return nil
}

// Graph returns the dependency graph of the scenario: an edge runs from every input to the stage
// consuming it.
func (s *Scenario) Graph() (*dag.Graph, error) {
	g := dag.New()
	for _, src := range s.Sources {
		if !g.AddNode(src.Name) {
			return nil, fmt.Errorf("duplicate name %q", src.Name)
		}
	}
	for _, st := range s.Pipeline {
		if !g.AddNode(st.Name) {
			return nil, fmt.Errorf("duplicate name %q", st.Name)
		}
	}
	for _, st := range s.Pipeline {
		for _, in := range st.inputs() {
			if err := g.AddEdge(in, st.Name); err != nil {
				return nil, fmt.Errorf("stage %q: input: %w", st.Name, err)
			}
		}
	}
	if _, err := g.Sort(); err != nil {
		return nil, err
	}
	return g, nil
}

func (st StageSpec) inputs() []string {
	if st.Op == "concat" {
		return st.Inputs
	}
	return []string{st.Input}
}
