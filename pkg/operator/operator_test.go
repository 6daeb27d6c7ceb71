package operator

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/l7mp/rxcollections/internal/testutils"
	"github.com/l7mp/rxcollections/pkg/metrics"
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/snapshot"
	"github.com/l7mp/rxcollections/pkg/source"
	"github.com/l7mp/rxcollections/pkg/stream"
	"github.com/l7mp/rxcollections/pkg/util"
)

func TestOperator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Operator Suite")
}

func even(v int) bool { return v%2 == 0 }

func index[N interface{ Index() (int, bool) }](n N) int {
	i, ok := n.Index()
	Expect(ok).To(BeTrue())
	return i
}

func sorted(items []int) bool {
	for i := 1; i < len(items); i++ {
		if items[i-1] > items[i] {
			return false
		}
	}
	return true
}

var _ = Describe("Where", func() {
	var (
		src *source.List[int]
		rec *testutils.Recorder[notification.List[int]]
		sub stream.Subscription
	)

	BeforeEach(func() {
		src = source.NewList[int]()
		rec = testutils.NewRecorder[notification.List[int]]()
		sub = Where(src, even).Subscribe(rec)
	})

	AfterEach(func() { sub.Dispose() })

	It("should start with a Reset", func() {
		Expect(rec.Len()).To(Equal(1))
		n := rec.Values()[0]
		Expect(n.Action()).To(Equal(notification.Reset))
		Expect(n.Current().IsEmpty()).To(BeTrue())
	})

	It("should drop items not satisfying the predicate", func() {
		src.Add(1)
		Expect(rec.Len()).To(Equal(1))

		src.Add(2)
		Expect(rec.Len()).To(Equal(2))
		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Add))
		Expect(n.NewItems()).To(Equal([]int{2}))
		Expect(n.Current().Items()).To(Equal([]int{2}))
	})

	It("should map upstream positions to filtered positions", func() {
		src.AddRange(1, 2, 3, 4)
		Expect(src.Insert(3, 6)).To(Succeed())

		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Add))
		Expect(index(n)).To(Equal(1))
		Expect(n.Current().Items()).To(Equal([]int{2, 6, 4}))

		Expect(src.RemoveAt(4)).To(Succeed())
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Remove))
		Expect(index(n)).To(Equal(2))
		Expect(n.OldItems()).To(Equal([]int{4}))
	})

	It("should translate single-slot replacements", func() {
		src.AddRange(1, 2, 3, 6, 4)
		Expect(src.SetItem(0, 8)).To(Succeed())
		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Add))
		Expect(index(n)).To(Equal(0))
		Expect(n.Current().Items()).To(Equal([]int{8, 2, 6, 4}))

		Expect(src.SetItem(1, 5)).To(Succeed())
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Remove))
		Expect(index(n)).To(Equal(1))

		Expect(src.SetItem(3, 10)).To(Succeed())
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Replace))
		Expect(index(n)).To(Equal(1))
		Expect(n.Current().Items()).To(Equal([]int{8, 10, 4}))

		before := rec.Len()
		Expect(src.SetItem(2, 7)).To(Succeed())
		Expect(rec.Len()).To(Equal(before))
	})

	It("should translate multi-item replacements", func() {
		src.AddRange(1, 2, 3, 4)
		Expect(src.ReplaceRange(1, 2, 6, 7, 8)).To(Succeed())
		Expect(src.Current().Items()).To(Equal([]int{1, 6, 7, 8, 4}))

		n, _ := rec.Last()
		Expect(n.Current().Items()).To(Equal([]int{6, 8, 4}))
		Expect(testutils.CheckSound[int](rec.Values(), nil)).To(Succeed())
	})

	It("should re-derive on upstream Reset", func() {
		src.AddRange(1, 2)
		Expect(src.Sort(0, 2, snapshot.Descending[int])).To(Succeed())
		src.ResetTo(4, 5, 6)
		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Reset))
		Expect(n.Current().Items()).To(Equal([]int{4, 6}))
	})

	It("should produce sound diffs", func() {
		src.AddRange(5, 2, 8, 3)
		Expect(src.Insert(0, 4)).To(Succeed())
		src.Remove(8)
		src.Replace(3, 12)
		Expect(src.InsertRange(2, 1, 2, 3)).To(Succeed())
		Expect(src.RemoveRange(1, 3)).To(Succeed())
		src.RemoveAll(func(v int) bool { return v > 10 })
		src.Clear()

		Expect(testutils.CheckSound[int](rec.Values(), nil)).To(Succeed())
	})

	It("should start late subscribers with a Reset of the current state", func() {
		src.AddRange(1, 2, 3, 4)
		late := testutils.NewRecorder[notification.List[int]]()
		out := Where(src, even)
		s1 := out.Subscribe(testutils.NewRecorder[notification.List[int]]())
		src.Add(6)
		s2 := out.Subscribe(late)
		defer s1.Dispose()
		defer s2.Dispose()

		Expect(late.Values()).To(HaveLen(1))
		Expect(late.Values()[0].Action()).To(Equal(notification.Reset))
		Expect(late.Values()[0].Current().Items()).To(Equal([]int{2, 4, 6}))
	})

	It("should be readable with First", func() {
		src.AddRange(1, 2)
		n, err := stream.First(context.Background(), Where(src, even))
		Expect(err).NotTo(HaveOccurred())
		Expect(n.Action()).To(Equal(notification.Reset))
		Expect(n.Current().Items()).To(Equal([]int{2}))
	})
})

var _ = Describe("Shared computation", func() {
	It("should evaluate once for all subscribers and restart after the last one leaves", func() {
		m := metrics.New()
		Expect(m.Register(prometheus.NewRegistry())).To(Succeed())

		src := source.NewList[int]()
		calls := 0
		out := Where(src, func(v int) bool { calls++; return even(v) }, source.WithName("evens"),
			source.WithMetrics(m))

		r1 := testutils.NewRecorder[notification.List[int]]()
		r2 := testutils.NewRecorder[notification.List[int]]()
		s1 := out.Subscribe(r1)
		s2 := out.Subscribe(r2)
		Expect(testutil.ToFloat64(m.Subscribers.WithLabelValues("evens"))).To(Equal(2.0))

		src.Add(2)
		Expect(calls).To(Equal(1))
		Expect(r1.Len()).To(Equal(2))
		Expect(r2.Len()).To(Equal(2))

		s1.Dispose()
		s2.Dispose()
		s2.Dispose()
		Expect(testutil.ToFloat64(m.Subscribers.WithLabelValues("evens"))).To(Equal(0.0))

		src.Add(4)
		Expect(r1.Len()).To(Equal(2))
		Expect(calls).To(Equal(1))

		r3 := testutils.NewRecorder[notification.List[int]]()
		s3 := out.Subscribe(r3)
		defer s3.Dispose()
		Expect(r3.Values()).To(HaveLen(1))
		Expect(r3.Values()[0].Action()).To(Equal(notification.Reset))
		Expect(r3.Values()[0].Current().Items()).To(Equal([]int{2, 4}))
		Expect(testutil.ToFloat64(m.Recomputed.WithLabelValues("evens"))).To(Equal(2.0))
	})
})

var _ = Describe("Termination", func() {
	It("should propagate upstream errors", func() {
		src := source.NewList[int]()
		rec := testutils.NewRecorder[notification.List[string]]()
		Select(Where(src, even), strconv.Itoa).Subscribe(rec)

		boom := errors.New("boom")
		src.Fail(boom)
		Expect(rec.Err()).To(MatchError(boom))
	})

	It("should propagate completion", func() {
		src := source.NewList[int]()
		rec := testutils.NewRecorder[notification.SortedList[int]]()
		Sort(src, snapshot.Ascending[int]).Subscribe(rec)
		src.Complete()
		Expect(rec.Completed()).To(BeTrue())
	})
})

var _ = Describe("Select", func() {
	It("should map items positionally", func() {
		src := source.NewList[int]()
		rec := testutils.NewRecorder[notification.List[string]]()
		sub := Select(src, func(v int) string { return strconv.Itoa(v * 10) }).Subscribe(rec)
		defer sub.Dispose()

		src.AddRange(1, 2, 3)
		Expect(src.SetItem(1, 5)).To(Succeed())
		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Replace))
		Expect(index(n)).To(Equal(1))
		Expect(n.OldItems()).To(Equal([]string{"20"}))
		Expect(n.NewItems()).To(Equal([]string{"50"}))
		Expect(n.Current().Items()).To(Equal([]string{"10", "50", "30"}))

		Expect(testutils.CheckSound[string](rec.Values(), nil)).To(Succeed())
	})

	It("should maintain unindexed upstreams by value", func() {
		src := source.NewSortedSet(snapshot.Ascending[int])
		rec := testutils.NewRecorder[notification.List[int]]()
		sub := Select(src, func(v int) int { return -v }).Subscribe(rec)
		defer sub.Dispose()

		src.AddRange(1, 2)
		src.Replace(1, 3)
		src.Remove(2)
		n, _ := rec.Last()
		Expect(n.Current().Items()).To(Equal([]int{-3}))
		Expect(testutils.CheckSound[int](rec.Values(), nil)).To(Succeed())
	})
})

var _ = Describe("Sort", func() {
	type item struct {
		Key  int
		Name string
	}
	byKey := func(a, b item) int { return a.Key - b.Key }

	It("should keep every intermediate state sorted", func() {
		src := source.NewList[int]()
		rec := testutils.NewRecorder[notification.SortedList[int]]()
		sub := Sort(src, snapshot.Ascending[int]).Subscribe(rec)
		defer sub.Dispose()

		src.Add(3)
		src.Add(1)
		src.Add(2)

		ns := rec.Values()
		Expect(ns).To(HaveLen(4))
		for _, n := range ns[1:] {
			Expect(n.Action()).To(Equal(notification.Add))
			Expect(sorted(n.Current().Items())).To(BeTrue())
		}
		Expect(index(ns[2])).To(Equal(0))
		Expect(ns[3].Current().Items()).To(Equal([]int{1, 2, 3}))
	})

	It("should insert one notification per item and be stable", func() {
		src := source.NewList[item]()
		rec := testutils.NewRecorder[notification.SortedList[item]]()
		sub := Sort(src, byKey).Subscribe(rec)
		defer sub.Dispose()

		src.AddRange(item{1, "a"}, item{0, "b"}, item{1, "c"})
		Expect(rec.Len()).To(Equal(4))
		n, _ := rec.Last()
		Expect(n.Current().Items()).To(Equal([]item{{0, "b"}, {1, "a"}, {1, "c"}}))
	})

	It("should replace by removal and re-insertion", func() {
		src := source.NewList[int]()
		src.AddRange(3, 1, 2)
		rec := testutils.NewRecorder[notification.SortedList[int]]()
		sub := Sort(src, snapshot.Ascending[int]).Subscribe(rec)
		defer sub.Dispose()

		src.Replace(3, 0)
		ns := rec.Values()
		Expect(ns).To(HaveLen(3))
		Expect(ns[1].Action()).To(Equal(notification.Remove))
		Expect(ns[1].Current().Items()).To(Equal([]int{1, 2}))
		Expect(ns[2].Action()).To(Equal(notification.Add))
		Expect(index(ns[2])).To(Equal(0))
		Expect(ns[2].Current().Items()).To(Equal([]int{0, 1, 2}))
	})

	It("should emit a single Reset on upstream Reset", func() {
		src := source.NewList[int]()
		rec := testutils.NewRecorder[notification.SortedList[int]]()
		sub := Sort(src, snapshot.Descending[int]).Subscribe(rec)
		defer sub.Dispose()

		src.ResetTo(2, 9, 4)
		Expect(rec.Len()).To(Equal(2))
		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Reset))
		Expect(n.Current().Items()).To(Equal([]int{9, 4, 2}))

		src.RemoveAll(func(v int) bool { return v > 5 })
		Expect(src.RemoveAt(0)).To(Succeed())
		Expect(testutils.CheckSound[int](rec.Values(), nil)).To(Succeed())
	})

	It("should compose with Where", func() {
		src := source.NewList[int]()
		rec := testutils.NewRecorder[notification.SortedList[int]]()
		sub := Sort(Where(src, even), snapshot.Ascending[int]).Subscribe(rec)
		defer sub.Dispose()

		src.AddRange(8, 3, 2, 6)
		Expect(src.SetItem(0, 7)).To(Succeed())
		Expect(src.SetItem(1, 4)).To(Succeed())
		n, _ := rec.Last()
		Expect(n.Current().Items()).To(Equal([]int{2, 4, 6}))
		Expect(testutils.CheckSound[int](rec.Values(), nil)).To(Succeed())
	})
})

var _ = Describe("SortSet", func() {
	It("should count multiplicities", func() {
		src := source.NewList[int]()
		rec := testutils.NewRecorder[notification.SortedSet[int]]()
		sub := SortSet(src, snapshot.Ascending[int]).Subscribe(rec)
		defer sub.Dispose()

		src.AddRange(2, 1, 1)
		Expect(rec.Len()).To(Equal(2))
		n, _ := rec.Last()
		Expect(n.Current().Items()).To(Equal([]int{1, 2}))

		src.Remove(1)
		Expect(rec.Len()).To(Equal(2))

		src.Remove(1)
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Remove))
		Expect(n.OldItems()).To(Equal([]int{1}))
		Expect(n.Current().Items()).To(Equal([]int{2}))

		Expect(src.SetItem(0, 5)).To(Succeed())
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Replace))
		Expect(n.Current().Items()).To(Equal([]int{5}))
		Expect(testutils.CheckSound[int](rec.Values(), nil)).To(Succeed())
	})

	It("should count an existing upstream on subscription", func() {
		src := source.NewList[string]()
		src.AddRange("b", "a", "b")
		rec := testutils.NewRecorder[notification.SortedSet[string]]()
		sub := SortSet(src, snapshot.Ascending[string]).Subscribe(rec)
		defer sub.Dispose()

		Expect(rec.Values()[0].Current().Items()).To(Equal([]string{"a", "b"}))
		Expect(src.RemoveAt(0)).To(Succeed())
		Expect(rec.Len()).To(Equal(1))
	})
})

var _ = Describe("Sorted set projections", func() {
	It("should filter and map sets", func() {
		src := source.NewSortedSet(snapshot.Ascending[int])
		src.AddRange(1, 2, 3, 4)

		evens := testutils.NewRecorder[notification.SortedSet[int]]()
		s1 := WhereSortedSet(src, even, snapshot.Descending[int]).Subscribe(evens)
		defer s1.Dispose()
		Expect(evens.Values()[0].Current().Items()).To(Equal([]int{4, 2}))

		parity := testutils.NewRecorder[notification.SortedSet[int]]()
		s2 := SelectSortedSet(src, func(v int) int { return v % 2 }, snapshot.Ascending[int]).Subscribe(parity)
		defer s2.Dispose()
		Expect(parity.Values()[0].Current().Items()).To(Equal([]int{0, 1}))

		src.Remove(1)
		Expect(parity.Len()).To(Equal(1))
		src.Remove(3)
		n, _ := parity.Last()
		Expect(n.Current().Items()).To(Equal([]int{0}))

		src.Add(6)
		n2, _ := evens.Last()
		Expect(n2.Current().Items()).To(Equal([]int{6, 4, 2}))
	})
})

var _ = Describe("Dictionary projections", func() {
	type kv = snapshot.KeyValue[string, int]

	var src *source.Dictionary[string, int]

	BeforeEach(func() {
		src = source.NewDictionary[string, int]()
		Expect(src.AddRange(kv{Key: "A", Value: 1}, kv{Key: "B", Value: 2})).To(Succeed())
	})

	It("should filter on values", func() {
		rec := testutils.NewRecorder[notification.Dictionary[string, int]]()
		sub := WhereDictionary(src, func(v int) bool { return v > 1 }).Subscribe(rec)
		defer sub.Dispose()
		Expect(rec.Values()[0].Current().ToMap()).To(Equal(map[string]int{"B": 2}))

		src.SetItem("A", 3)
		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Add))
		Expect(n.NewItems()).To(Equal([]kv{{Key: "A", Value: 3}}))

		src.SetItem("B", 0)
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Remove))
		Expect(n.Current().ToMap()).To(Equal(map[string]int{"A": 3}))

		src.SetItem("A", 4)
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Replace))
		Expect(testutils.CheckSound[kv](rec.Values(), nil)).To(Succeed())
	})

	It("should map values and keep keys", func() {
		rec := testutils.NewRecorder[notification.Dictionary[string, string]]()
		sub := SelectDictionary(src, strconv.Itoa).Subscribe(rec)
		defer sub.Dispose()

		src.SetItem("A", 3)
		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Replace))
		Expect(n.OldItems()).To(Equal([]snapshot.KeyValue[string, string]{{Key: "A", Value: "1"}}))
		Expect(n.Current().ToMap()).To(Equal(map[string]string{"A": "3", "B": "2"}))

		src.Remove("B")
		src.SetItems(kv{Key: "C", Value: 5}, kv{Key: "D", Value: 6})
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Reset))
		Expect(n.Current().ToMap()).To(Equal(map[string]string{"A": "3", "C": "5", "D": "6"}))
	})

	It("should observe a single key", func() {
		rec := testutils.NewRecorder[int]()
		sub := ObserveKey[string, int](src, "C").Subscribe(rec)
		defer sub.Dispose()
		Expect(rec.Len()).To(BeZero())

		Expect(src.Add("C", 7)).To(Succeed())
		src.SetItem("C", 8)
		src.SetItem("A", 9)
		src.Remove("C")
		src.SetItem("A", 10)

		Expect(rec.Values()).To(Equal([]int{7, 8, 8}))
	})
})

var _ = Describe("Concat", func() {
	var (
		a, b, c *source.List[int]
		rec     *testutils.Recorder[notification.List[int]]
		sub     stream.Subscription
	)

	BeforeEach(func() {
		a, b, c = source.NewList[int](), source.NewList[int](), source.NewList[int]()
		a.AddRange(1, 2)
		c.Add(5)
		rec = testutils.NewRecorder[notification.List[int]]()
		sub = Concat([]stream.Observable[notification.List[int]]{a, b, c}).Subscribe(rec)
	})

	AfterEach(func() { sub.Dispose() })

	It("should start with a Reset of the concatenation", func() {
		Expect(rec.Values()).To(HaveLen(1))
		Expect(rec.Values()[0].Action()).To(Equal(notification.Reset))
		Expect(rec.Values()[0].Current().Items()).To(Equal([]int{1, 2, 5}))
	})

	It("should offset child indices by the preceding segments", func() {
		b.Add(3)
		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Add))
		Expect(index(n)).To(Equal(2))
		Expect(n.Current().Items()).To(Equal([]int{1, 2, 3, 5}))

		Expect(c.Insert(0, 4)).To(Succeed())
		n, _ = rec.Last()
		Expect(index(n)).To(Equal(3))
		Expect(n.Current().Items()).To(Equal([]int{1, 2, 3, 4, 5}))

		Expect(c.SetItem(1, 6)).To(Succeed())
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Replace))
		Expect(index(n)).To(Equal(4))

		Expect(a.RemoveAt(0)).To(Succeed())
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Remove))
		Expect(index(n)).To(Equal(0))
		Expect(n.Current().Items()).To(Equal([]int{2, 3, 4, 6}))
	})

	It("should translate child Resets into segment changes", func() {
		a.ResetTo(7, 8, 9)
		n, _ := rec.Last()
		Expect(n.Action()).To(Equal(notification.Replace))
		Expect(index(n)).To(Equal(0))
		Expect(n.OldItems()).To(Equal([]int{1, 2}))
		Expect(n.Current().Items()).To(Equal([]int{7, 8, 9, 5}))

		c.Clear()
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Remove))
		Expect(index(n)).To(Equal(3))

		b.ResetTo(0)
		n, _ = rec.Last()
		Expect(n.Action()).To(Equal(notification.Add))
		Expect(index(n)).To(Equal(3))
		Expect(n.Current().Items()).To(Equal([]int{7, 8, 9, 0}))

		Expect(testutils.CheckSound[int](rec.Values(), nil)).To(Succeed())
	})

	It("should keep merged state equal to the children", func() {
		for i := 0; i < 20; i++ {
			switch i % 4 {
			case 0:
				a.Add(i)
			case 1:
				Expect(b.Insert(0, i)).To(Succeed())
			case 2:
				c.AddRange(i, i+1)
			case 3:
				Expect(b.RemoveAt(0)).To(Succeed())
			}
			n, _ := rec.Last()
			want := append(append(a.Current().ToSlice(), b.Current().ToSlice()...), c.Current().ToSlice()...)
			Expect(n.Current().Items()).To(Equal(want))
		}
		Expect(testutils.CheckSound[int](rec.Values(), nil)).To(Succeed())
	})

	It("should fail with the first child error and complete with the last child", func() {
		a.Complete()
		b.Complete()
		Expect(rec.Completed()).To(BeFalse())
		c.Complete()
		Expect(rec.Completed()).To(BeTrue())
	})

	It("should fail when a child fails", func() {
		boom := errors.New("boom")
		b.Fail(boom)
		c.Fail(errors.New("other"))
		Expect(rec.Err()).To(MatchError(boom))
	})
})

var _ = Describe("Concat under concurrent upstreams", func() {
	It("should apply notifications atomically in arrival order", func() {
		a, b := source.NewList[int](), source.NewList[int]()
		rec := testutils.NewRecorder[notification.List[int]]()
		sub := Concat([]stream.Observable[notification.List[int]]{Where(a, even), b, a}).Subscribe(rec)
		defer sub.Dispose()

		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func(g int) {
				defer GinkgoRecover()
				defer wg.Done()
				target := a
				if g%2 == 1 {
					target = b
				}
				for j := 0; j < 300; j++ {
					if j%5 == 4 {
						_ = target.RemoveAt(0)
						continue
					}
					target.Add(g*1000 + j)
				}
			}(g)
		}
		wg.Wait()

		Expect(testutils.CheckSound[int](rec.Values(), nil)).To(Succeed())
		want := slices.Concat(util.Filter(even, a.Current().ToSlice()), b.Current().ToSlice(), a.Current().ToSlice())
		n, ok := rec.Last()
		Expect(ok).To(BeTrue())
		Expect(n.Current().Items()).To(Equal(want))
	})
})

var _ = Describe("Concat with silent children", func() {
	It("should emit nothing until every child reported", func() {
		a := source.NewList[int]()
		b := source.NewList[int](source.Deferred())
		rec := testutils.NewRecorder[notification.List[int]]()
		sub := Concat([]stream.Observable[notification.List[int]]{a, b}).Subscribe(rec)
		defer sub.Dispose()

		a.Add(1)
		Expect(rec.Len()).To(BeZero())

		b.AddRange(2, 3)
		Expect(rec.Values()).To(HaveLen(1))
		Expect(rec.Values()[0].Action()).To(Equal(notification.Reset))
		Expect(rec.Values()[0].Current().Items()).To(Equal([]int{1, 2, 3}))
	})

	It("should merge sorted children", func() {
		a := source.NewSortedList(snapshot.Ascending[int])
		b := source.NewSortedList(snapshot.Ascending[int])
		rec := testutils.NewRecorder[notification.List[int]]()
		sub := Concat([]stream.Observable[notification.SortedList[int]]{a, b}).Subscribe(rec)
		defer sub.Dispose()

		b.AddRange(5, 3)
		a.Add(9)
		a.Add(1)
		n, _ := rec.Last()
		Expect(index(n)).To(Equal(0))
		Expect(n.Current().Items()).To(Equal([]int{1, 9, 3, 5}))
	})

	It("should emit an empty Reset without children", func() {
		rec := testutils.NewRecorder[notification.List[int]]()
		sub := Concat([]stream.Observable[notification.List[int]]{}).Subscribe(rec)
		defer sub.Dispose()
		Expect(rec.Values()).To(HaveLen(1))
		Expect(rec.Values()[0].Current().IsEmpty()).To(BeTrue())
	})
})

var _ = Describe("segmentTree", func() {
	It("should compute offsets", func() {
		t := newSegmentTree(5)
		for i, s := range []int{2, 0, 3, 1, 4} {
			t.set(i, s)
		}
		Expect(t.total()).To(Equal(10))
		Expect([]int{t.offset(0), t.offset(1), t.offset(2), t.offset(3), t.offset(4)}).
			To(Equal([]int{0, 2, 2, 5, 6}))

		t.set(2, 0)
		Expect(t.offset(4)).To(Equal(3))
	})
})
