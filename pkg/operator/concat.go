package operator

import (
	"slices"
	"sync"

	"github.com/go-logr/logr"

	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/source"
	"github.com/l7mp/rxcollections/pkg/stream"
)

// segmentTree keeps the sizes of a fixed number of segments in a power-of-two array: leaves
// hold the segment sizes, inner nodes the sum of their children.
type segmentTree struct {
	leaves int
	sizes  []int
}

func newSegmentTree(n int) *segmentTree {
	leaves := 1
	for leaves < n {
		leaves <<= 1
	}
	return &segmentTree{leaves: leaves, sizes: make([]int, 2*leaves)}
}

func (t *segmentTree) set(i, size int) {
	k := t.leaves + i
	t.sizes[k] = size
	for k > 1 {
		k >>= 1
		t.sizes[k] = t.sizes[2*k] + t.sizes[2*k+1]
	}
}

// offset returns the total size of the segments strictly before segment i.
func (t *segmentTree) offset(i int) int {
	off := 0
	for k := t.leaves + i; k > 1; k >>= 1 {
		if k&1 == 1 {
			off += t.sizes[k-1]
		}
	}
	return off
}

func (t *segmentTree) total() int { return t.sizes[1] }

// merge is the state of one Concat epoch.
type merge[T any] struct {
	mu        sync.Mutex
	out       *source.List[T]
	tree      *segmentTree
	segments  [][]T
	reported  []bool
	pending   int
	completed int
	failed    bool
	log       logr.Logger
}

// Concat merges ordered children into a single list holding their items in child order. Child
// changes are translated by the total size of the children before them. Nothing is emitted until
// every child has reported its initial state; the output then starts with a Reset of the
// concatenation. The output fails with the first child error and completes when every child has
// completed.
func Concat[T any, N Notification[T, N]](children []stream.Observable[N], opts ...source.Option) stream.Observable[notification.List[T]] {
	cfg := source.NewConfig("concat", opts...)
	return publish("concat", cfg, func(log logr.Logger, o stream.Observer[notification.List[T]]) stream.Subscription {
		m := &merge[T]{
			out:      source.NewList[T](cfg.Options(), source.Deferred()),
			tree:     newSegmentTree(len(children)),
			segments: make([][]T, len(children)),
			reported: make([]bool, len(children)),
			pending:  len(children),
			log:      log,
		}
		if len(children) == 0 {
			m.out.ResetTo()
		}

		subs := make([]stream.Subscription, 0, len(children)+1)
		for i, child := range children {
			subs = append(subs, stream.Normalize(child).Subscribe(stream.ObserverFuncs[N]{
				NextFunc: func(n N) {
					if n.Action() == notification.Reset {
						cfg.Metrics.ObserveRecomputed(cfg.Name)
					}
					m.apply(i, n.Change())
				},
				ErrorFunc:     func(err error) { m.fail(i, err) },
				CompletedFunc: func() { m.complete(i) },
			}))
		}
		subs = append(subs, m.out.Subscribe(o))

		return stream.Composite(subs...)
	})
}

func (m *merge[T]) apply(i int, c notification.Change[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed {
		return
	}

	old := m.segments[i]
	cur := slices.Clone(c.Current())
	m.segments[i] = cur
	m.tree.set(i, len(cur))

	if !m.reported[i] {
		m.reported[i] = true
		m.pending--
		if m.pending == 0 {
			m.log.V(4).Info("all children reported", "items", m.tree.total())
			m.out.ResetTo(slices.Concat(m.segments...)...)
		}
		return
	}
	if m.pending > 0 {
		return
	}

	if err := m.translate(i, old, c); err != nil {
		m.log.Error(err, "failed to apply child notification", "child", i, "action", c.Action.String())
		m.failed = true
		m.out.Fail(err)
	}
}

// translate applies the change of child i, whose segment used to be old, to the merged list.
func (m *merge[T]) translate(i int, old []T, c notification.Change[T]) error {
	offset := m.tree.offset(i)

	if !c.Indexed() {
		// unordered or reset: swap the whole segment
		switch {
		case len(old) == 0 && len(m.segments[i]) == 0:
			return nil
		case len(old) == 0:
			return m.out.InsertRange(offset, m.segments[i]...)
		case len(m.segments[i]) == 0:
			return m.out.RemoveRange(offset, len(old))
		default:
			return m.out.ReplaceRange(offset, len(old), m.segments[i]...)
		}
	}

	index := offset + c.Index
	switch c.Action {
	case notification.Add:
		return m.out.InsertRange(index, c.NewItems...)
	case notification.Remove:
		return m.out.RemoveRange(index, len(c.OldItems))
	case notification.Replace:
		return m.out.ReplaceRange(index, len(c.OldItems), c.NewItems...)
	}
	return inconsistent("unexpected indexed %s from child %d", c.Action, i)
}

func (m *merge[T]) fail(i int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed {
		return
	}
	m.log.V(1).Info("child failed", "child", i, "error", err.Error())
	m.failed = true
	m.out.Fail(err)
}

func (m *merge[T]) complete(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed++
	if m.completed == len(m.segments) && !m.failed {
		m.log.V(1).Info("all children completed", "last", i)
		m.out.Complete()
	}
}
