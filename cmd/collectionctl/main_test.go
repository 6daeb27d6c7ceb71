package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCollectionctl(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Collectionctl Suite")
}

var _ = Describe("collectionctl", func() {
	It("should print the version", func() {
		out := &bytes.Buffer{}
		cmd := newRootCmd(out)
		cmd.SetArgs([]string{"version"})
		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(HavePrefix("version dev (n/a)"))
	})

	It("should run a scenario and dump metrics", func() {
		path := filepath.Join(GinkgoT().TempDir(), "s.yaml")
		Expect(os.WriteFile(path, []byte(`
sources:
- name: words
  items: [b, a]
pipeline:
- name: sorted
  op: sort
steps:
- {source: words, op: add, item: c}
`), 0o600)).To(Succeed())

		out := &bytes.Buffer{}
		cmd := newRootCmd(out)
		cmd.SetArgs([]string{"run", "-f", path, "--metrics", "--zap-log-level", "error"})
		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("sorted: Reset(index=-1, old=[], new=[], current=[a b])"))
		Expect(out.String()).To(ContainSubstring("sorted: Add(index=2, old=[], new=[c], current=[a b c])"))
		Expect(out.String()).To(ContainSubstring(`rxcollections_notifications_published_total{action="Add",collection="words"} 2`))
	})

	It("should render the pipeline graph", func() {
		path := filepath.Join(GinkgoT().TempDir(), "g.yaml")
		Expect(os.WriteFile(path, []byte(`
sources: [{name: a}, {name: b}]
pipeline:
- {name: both, op: concat, inputs: [a, b]}
- {name: big, op: where, expr: "x > 1"}
`), 0o600)).To(Succeed())

		out := &bytes.Buffer{}
		cmd := newRootCmd(out)
		cmd.SetArgs([]string{"graph", "-f", path, "-o", "mermaid"})
		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(HavePrefix("```mermaid"))
		Expect(out.String()).To(ContainSubstring("both: concat"))
		Expect(out.String()).To(ContainSubstring(`(["a"]);`))

		cmd = newRootCmd(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"graph", "-f", path, "-o", "png"})
		Expect(cmd.Execute()).NotTo(Succeed())
	})

	It("should fail on a missing file", func() {
		cmd := newRootCmd(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"run", "-f", "/nonexistent.yaml"})
		Expect(cmd.Execute()).NotTo(Succeed())
	})
})
