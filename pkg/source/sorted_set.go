package source

import (
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/snapshot"
)

// SortedSet is a mutable observable set of unique elements ordered by a comparer.
type SortedSet[T any] struct {
	*cell[notification.SortedSet[T]]
}

// NewSortedSet creates an empty set source ordered by cmp.
func NewSortedSet[T any](cmp snapshot.CompareFunc[T], opts ...Option) *SortedSet[T] {
	cfg := NewConfig("sortedset", opts...)
	return &SortedSet[T]{cell: newCell(notification.NewSortedSet(cmp), cfg)}
}

// Current returns the latest snapshot.
func (s *SortedSet[T]) Current() snapshot.SortedSet[T] { return s.Notification().Current() }

// Count returns the number of elements.
func (s *SortedSet[T]) Count() int { return s.Current().Len() }

// Contains reports whether v is in the set.
func (s *SortedSet[T]) Contains(v T) bool { return s.Current().Contains(v) }

func (s *SortedSet[T]) apply(op string, f func(notification.SortedSet[T]) notification.SortedSet[T]) {
	_ = s.update(op, func(n notification.SortedSet[T]) (notification.SortedSet[T], error) { return f(n), nil })
}

// Add inserts v unless an equal item is present.
func (s *SortedSet[T]) Add(v T) {
	s.apply("add", func(n notification.SortedSet[T]) notification.SortedSet[T] { return n.Add(v) })
}

// AddRange inserts every item of vs.
func (s *SortedSet[T]) AddRange(vs ...T) {
	s.apply("addrange", func(n notification.SortedSet[T]) notification.SortedSet[T] { return n.AddRange(vs) })
}

// Remove deletes v, if present.
func (s *SortedSet[T]) Remove(v T) {
	s.apply("remove", func(n notification.SortedSet[T]) notification.SortedSet[T] { return n.Remove(v) })
}

// RemoveRange deletes every item of vs.
func (s *SortedSet[T]) RemoveRange(vs ...T) {
	s.apply("removerange", func(n notification.SortedSet[T]) notification.SortedSet[T] { return n.RemoveRange(vs) })
}

// Replace swaps oldValue for newValue.
func (s *SortedSet[T]) Replace(oldValue, newValue T) {
	s.apply("replace", func(n notification.SortedSet[T]) notification.SortedSet[T] {
		return n.Replace(oldValue, newValue)
	})
}

// Clear removes every item.
func (s *SortedSet[T]) Clear() {
	s.apply("clear", func(n notification.SortedSet[T]) notification.SortedSet[T] { return n.Clear() })
}

// ResetTo replaces the whole content with items.
func (s *SortedSet[T]) ResetTo(items ...T) {
	s.apply("resetto", func(n notification.SortedSet[T]) notification.SortedSet[T] { return n.ResetTo(items) })
}
