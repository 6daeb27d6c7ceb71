package snapshot

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSnapshot(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Snapshot Suite")
}

type entry struct {
	Key  int
	Name string
}

func byKey(a, b entry) int { return Ascending(a.Key, b.Key) }

var _ = Describe("List", func() {
	It("should never modify the receiver", func() {
		l := NewList(nil, 1, 2, 3)
		l2 := l.Insert(1, 9)
		l3 := l.RemoveRange(0, 2)
		l4 := l.Set(2, 7)
		l5 := l.Splice(1, 1, 4, 5)

		Expect(l.Items()).To(Equal([]int{1, 2, 3}))
		Expect(l2.Items()).To(Equal([]int{1, 9, 2, 3}))
		Expect(l3.Items()).To(Equal([]int{3}))
		Expect(l4.Items()).To(Equal([]int{1, 2, 7}))
		Expect(l5.Items()).To(Equal([]int{1, 4, 5, 3}))
	})

	It("should copy the input slice", func() {
		in := []int{1, 2}
		l := NewList(nil, in...)
		in[0] = 100
		Expect(l.At(0)).To(Equal(1))
	})

	It("should keep slices independent of later appends", func() {
		l := NewList(nil, 1, 2, 3, 4)
		s := l.Slice(0, 2)
		s2 := s.Append(9)
		Expect(l.Items()).To(Equal([]int{1, 2, 3, 4}))
		Expect(s2.Items()).To(Equal([]int{1, 2, 9}))
	})

	It("should look up elements with the equality function", func() {
		ci := func(a, b string) bool { return strings.EqualFold(a, b) }
		l := NewList(ci, "a", "B", "c")
		Expect(l.IndexOf("b")).To(Equal(1))
		Expect(l.Contains("C")).To(BeTrue())
		Expect(l.IndexOf("d")).To(Equal(-1))
		Expect(l.Equal(NewList(ci, "A", "b", "C"))).To(BeTrue())
	})

	It("should compare structurally by default", func() {
		l := NewList(nil, map[string]any{"a": 1}, map[string]any{"b": []int{1, 2}})
		Expect(l.Contains(map[string]any{"b": []int{1, 2}})).To(BeTrue())
		Expect(l.Equal(NewList(nil, map[string]any{"a": 1}))).To(BeFalse())
	})

	It("should treat empty lists as equal", func() {
		Expect(EmptyList[int](nil).Equal(NewList[int](nil))).To(BeTrue())
		Expect(EmptyList[int](nil).IsEmpty()).To(BeTrue())
	})
})

var _ = Describe("SortedList", func() {
	It("should sort on construction", func() {
		s := NewSortedList(Ascending[int], nil, 3, 1, 2)
		Expect(s.Items()).To(Equal([]int{1, 2, 3}))
	})

	It("should place equal elements after existing ones", func() {
		s := NewSortedList(byKey, nil, entry{1, "a"}, entry{2, "b"})
		s, i := s.Insert(entry{1, "c"})
		Expect(i).To(Equal(1))
		Expect(s.Items()).To(Equal([]entry{{1, "a"}, {1, "c"}, {2, "b"}}))
	})

	It("should keep construction stable", func() {
		s := NewSortedList(byKey, nil, entry{2, "x"}, entry{1, "a"}, entry{2, "y"}, entry{1, "b"})
		Expect(s.Items()).To(Equal([]entry{{1, "a"}, {1, "b"}, {2, "x"}, {2, "y"}}))
	})

	It("should find elements within their run", func() {
		s := NewSortedList(byKey, nil, entry{1, "a"}, entry{1, "b"}, entry{2, "c"})
		Expect(s.IndexOf(entry{1, "b"})).To(Equal(1))
		Expect(s.IndexOf(entry{1, "z"})).To(Equal(-1))
		Expect(s.LowerBound(entry{Key: 1})).To(Equal(0))
		Expect(s.UpperBound(entry{Key: 1})).To(Equal(2))
	})

	It("should tell whether a replacement keeps the order", func() {
		s := NewSortedList(Ascending[int], nil, 1, 3, 5)
		Expect(s.Fits(1, 4)).To(BeTrue())
		Expect(s.Fits(1, 6)).To(BeFalse())
		Expect(s.Fits(0, 0)).To(BeTrue())
		Expect(s.Fits(2, 2)).To(BeFalse())
	})
})

var _ = Describe("SortedSet", func() {
	It("should drop duplicates and keep the order", func() {
		s := NewSortedSet(Descending[int], 1, 3, 3, 2)
		Expect(s.Items()).To(Equal([]int{3, 2, 1}))
		Expect(s.Len()).To(Equal(3))
	})

	It("should identify elements by the comparer", func() {
		s := NewSortedSet(byKey, entry{1, "a"})
		Expect(s.Contains(entry{1, "other"})).To(BeTrue())
		Expect(s.Add(entry{1, "b"}).Items()).To(Equal([]entry{{1, "a"}}))
	})

	It("should be persistent", func() {
		s := NewSortedSet(Ascending[string], "a", "b")
		s2 := s.Add("c").Remove("a")
		Expect(s.Items()).To(Equal([]string{"a", "b"}))
		Expect(s2.Items()).To(Equal([]string{"b", "c"}))
		Expect(s.Remove("zz").Equal(s)).To(BeTrue())
	})

	It("should handle the zero value", func() {
		var s SortedSet[int]
		Expect(s.Len()).To(Equal(0))
		Expect(s.Contains(1)).To(BeFalse())
		Expect(s.Items()).To(BeEmpty())
		Expect(s.Equal(NewSortedSet(Ascending[int]))).To(BeTrue())
	})
})

var _ = Describe("SortedMultiset", func() {
	It("should count multiplicities", func() {
		m := NewSortedMultiset(Ascending[int])
		m, n := m.Add(1)
		Expect(n).To(Equal(1))
		m, n = m.Add(1)
		Expect(n).To(Equal(2))
		m, _ = m.Add(0)
		Expect(m.Distinct()).To(Equal(2))
		Expect(m.Set().Items()).To(Equal([]int{0, 1}))

		m, n = m.Remove(1)
		Expect(n).To(Equal(1))
		m, n = m.Remove(1)
		Expect(n).To(Equal(0))
		_, n = m.Remove(1)
		Expect(n).To(Equal(-1))
		Expect(m.Set().Items()).To(Equal([]int{0}))
	})
})

var _ = Describe("Dictionary", func() {
	It("should let later entries win on construction", func() {
		d := NewDictionary[string, int](nil, KeyValue[string, int]{"a", 1}, KeyValue[string, int]{"a", 2})
		Expect(d.Len()).To(Equal(1))
		v, ok := d.Get("a")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(2))
	})

	It("should be persistent", func() {
		d := NewDictionary[string, int](nil)
		d2 := d.Set("a", 1).Set("b", 2)
		d3 := d2.Delete("a")
		Expect(d.IsEmpty()).To(BeTrue())
		Expect(d2.ToMap()).To(Equal(map[string]int{"a": 1, "b": 2}))
		Expect(d3.ToMap()).To(Equal(map[string]int{"b": 2}))
		Expect(d3.Delete("zz").Equal(d3)).To(BeTrue())
	})

	It("should compare values with the equality function", func() {
		ci := func(a, b string) bool { return strings.EqualFold(a, b) }
		d1 := NewDictionary(ci, KeyValue[int, string]{1, "x"})
		d2 := NewDictionary(ci, KeyValue[int, string]{1, "X"})
		Expect(d1.Equal(d2)).To(BeTrue())
		Expect(d1.Equal(d2.Set(2, "y"))).To(BeFalse())
	})

	It("should support composite keys", func() {
		type key struct{ ns, name string }
		d := NewDictionary[key, int](nil).Set(key{"a", "b"}, 1).Set(key{"a", "c"}, 2)
		Expect(d.ContainsKey(key{"a", "b"})).To(BeTrue())
		Expect(d.ContainsKey(key{"b", "a"})).To(BeFalse())
		Expect(d.Items()).To(ConsistOf(KeyValue[key, int]{key{"a", "b"}, 1}, KeyValue[key, int]{key{"a", "c"}, 2}))
	})

	It("should pick a hasher by key kind", func() {
		type name string
		type key struct{ ns, name string }
		Expect(newHasher[string]()).NotTo(BeAssignableToTypeOf(formatHasher[string]{}))
		Expect(newHasher[name]()).NotTo(BeAssignableToTypeOf(formatHasher[name]{}))
		Expect(newHasher[key]()).To(BeAssignableToTypeOf(formatHasher[key]{}))
		Expect(newHasher[any]()).To(BeAssignableToTypeOf(formatHasher[any]{}))

		d := NewDictionary[name, int](nil).Set("a", 1).Set("b", 2).Delete("a")
		Expect(d.ToMap()).To(Equal(map[name]int{"b": 2}))
		m := NewDictionary[any, int](nil).Set(1, 1).Set("1", 2)
		Expect(m.Len()).To(Equal(2))
	})

	It("should handle the zero value", func() {
		var d Dictionary[string, int]
		Expect(d.Len()).To(Equal(0))
		Expect(d.ContainsKey("a")).To(BeFalse())
		Expect(d.Set("a", 1).Len()).To(Equal(1))
	})

	It("should print entries", func() {
		Expect(KeyValue[string, int]{"a", 1}.String()).To(Equal("a:1"))
	})
})

var _ = Describe("Comparers", func() {
	It("should reverse an ordering", func() {
		Expect(Reverse(Ascending[int])(1, 2)).To(BeNumerically(">", 0))
		Expect(Descending(1, 2)).To(BeNumerically(">", 0))
		Expect(Ascending("a", "a")).To(Equal(0))
	})
})
