package source

import (
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/snapshot"
	"github.com/l7mp/rxcollections/pkg/stream"
)

var _ stream.Observable[notification.List[int]] = &List[int]{}

// List is a mutable observable list.
type List[T any] struct {
	*cell[notification.List[T]]
}

// NewList creates an empty list source.
func NewList[T any](opts ...Option) *List[T] {
	cfg := NewConfig("list", opts...)
	return &List[T]{cell: newCell(notification.NewList[T](equalFor[T](cfg)), cfg)}
}

// Current returns the latest snapshot.
func (s *List[T]) Current() snapshot.List[T] { return s.Notification().Current() }

// Count returns the number of items.
func (s *List[T]) Count() int { return s.Current().Len() }

// Item returns the item at index.
func (s *List[T]) Item(index int) (T, error) {
	cur := s.Current()
	if index < 0 || index >= cur.Len() {
		var zero T
		return zero, notification.NewIndexError("item", index, 1, cur.Len())
	}
	return cur.At(index), nil
}

func (s *List[T]) apply(op string, f func(notification.List[T]) notification.List[T]) {
	_ = s.update(op, func(n notification.List[T]) (notification.List[T], error) { return f(n), nil })
}

// Add appends v.
func (s *List[T]) Add(v T) {
	s.apply("add", func(n notification.List[T]) notification.List[T] { return n.Add(v) })
}

// AddRange appends vs in order.
func (s *List[T]) AddRange(vs ...T) {
	s.apply("addrange", func(n notification.List[T]) notification.List[T] { return n.AddRange(vs) })
}

// Insert places v at index.
func (s *List[T]) Insert(index int, v T) error {
	return s.update("insert", func(n notification.List[T]) (notification.List[T], error) { return n.Insert(index, v) })
}

// InsertRange places vs starting at index.
func (s *List[T]) InsertRange(index int, vs ...T) error {
	return s.update("insertrange", func(n notification.List[T]) (notification.List[T], error) {
		return n.InsertRange(index, vs)
	})
}

// Remove removes the first item equal to v, if any.
func (s *List[T]) Remove(v T) {
	s.apply("remove", func(n notification.List[T]) notification.List[T] { return n.Remove(v) })
}

// RemoveAt deletes the item at index.
func (s *List[T]) RemoveAt(index int) error {
	return s.update("removeat", func(n notification.List[T]) (notification.List[T], error) { return n.RemoveAt(index) })
}

// RemoveRange deletes count items starting at index.
func (s *List[T]) RemoveRange(index, count int) error {
	return s.update("removerange", func(n notification.List[T]) (notification.List[T], error) {
		return n.RemoveRange(index, count)
	})
}

// Replace replaces the first item equal to oldValue with newValue, or adds newValue when
// oldValue is absent.
func (s *List[T]) Replace(oldValue, newValue T) {
	s.apply("replace", func(n notification.List[T]) notification.List[T] { return n.Replace(oldValue, newValue) })
}

// SetItem overwrites the item at index.
func (s *List[T]) SetItem(index int, v T) error {
	return s.update("setitem", func(n notification.List[T]) (notification.List[T], error) { return n.SetItem(index, v) })
}

// ReplaceRange replaces the count items starting at index with vs.
func (s *List[T]) ReplaceRange(index, count int, vs ...T) error {
	return s.update("replacerange", func(n notification.List[T]) (notification.List[T], error) {
		return n.ReplaceRange(index, count, vs)
	})
}

// Clear removes every item.
func (s *List[T]) Clear() {
	s.apply("clear", func(n notification.List[T]) notification.List[T] { return n.Clear() })
}

// Sort sorts the count items starting at index.
func (s *List[T]) Sort(index, count int, cmp snapshot.CompareFunc[T]) error {
	return s.update("sort", func(n notification.List[T]) (notification.List[T], error) {
		return n.Sort(index, count, cmp)
	})
}

// Reverse reverses the count items starting at index.
func (s *List[T]) Reverse(index, count int) error {
	return s.update("reverse", func(n notification.List[T]) (notification.List[T], error) {
		return n.Reverse(index, count)
	})
}

// RemoveAll removes every item matching pred.
func (s *List[T]) RemoveAll(pred func(T) bool) {
	s.apply("removeall", func(n notification.List[T]) notification.List[T] { return n.RemoveAll(pred) })
}

// ResetTo replaces the whole content with items.
func (s *List[T]) ResetTo(items ...T) {
	s.apply("resetto", func(n notification.List[T]) notification.List[T] { return n.ResetTo(items) })
}
