package source

import (
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/snapshot"
)

// SortedList is a mutable observable list kept sorted by a comparer. Items comparing equal keep
// their insertion order.
type SortedList[T any] struct {
	*cell[notification.SortedList[T]]
}

// NewSortedList creates an empty sorted list source ordered by cmp.
func NewSortedList[T any](cmp snapshot.CompareFunc[T], opts ...Option) *SortedList[T] {
	cfg := NewConfig("sortedlist", opts...)
	return &SortedList[T]{cell: newCell(notification.NewSortedList(cmp, equalFor[T](cfg)), cfg)}
}

// Current returns the latest snapshot.
func (s *SortedList[T]) Current() snapshot.SortedList[T] { return s.Notification().Current() }

// Count returns the number of items.
func (s *SortedList[T]) Count() int { return s.Current().Len() }

// Item returns the item at index.
func (s *SortedList[T]) Item(index int) (T, error) {
	cur := s.Current()
	if index < 0 || index >= cur.Len() {
		var zero T
		return zero, notification.NewIndexError("item", index, 1, cur.Len())
	}
	return cur.At(index), nil
}

func (s *SortedList[T]) apply(op string, f func(notification.SortedList[T]) notification.SortedList[T]) {
	_ = s.update(op, func(n notification.SortedList[T]) (notification.SortedList[T], error) { return f(n), nil })
}

// Add inserts v after any equal items.
func (s *SortedList[T]) Add(v T) {
	s.apply("add", func(n notification.SortedList[T]) notification.SortedList[T] { return n.Add(v) })
}

// AddRange inserts every item of vs.
func (s *SortedList[T]) AddRange(vs ...T) {
	s.apply("addrange", func(n notification.SortedList[T]) notification.SortedList[T] { return n.AddRange(vs) })
}

// Remove deletes the first item equal to v, if any.
func (s *SortedList[T]) Remove(v T) {
	s.apply("remove", func(n notification.SortedList[T]) notification.SortedList[T] { return n.Remove(v) })
}

// RemoveAt deletes the item at index.
func (s *SortedList[T]) RemoveAt(index int) error {
	return s.update("removeat", func(n notification.SortedList[T]) (notification.SortedList[T], error) {
		return n.RemoveAt(index)
	})
}

// RemoveRange deletes count items starting at index.
func (s *SortedList[T]) RemoveRange(index, count int) error {
	return s.update("removerange", func(n notification.SortedList[T]) (notification.SortedList[T], error) {
		return n.RemoveRange(index, count)
	})
}

// Replace swaps oldValue for newValue, in place when the order allows it.
func (s *SortedList[T]) Replace(oldValue, newValue T) {
	s.apply("replace", func(n notification.SortedList[T]) notification.SortedList[T] {
		return n.Replace(oldValue, newValue)
	})
}

// Clear removes every item.
func (s *SortedList[T]) Clear() {
	s.apply("clear", func(n notification.SortedList[T]) notification.SortedList[T] { return n.Clear() })
}

// ResetTo replaces the whole content with items.
func (s *SortedList[T]) ResetTo(items ...T) {
	s.apply("resetto", func(n notification.SortedList[T]) notification.SortedList[T] { return n.ResetTo(items) })
}
