package snapshot

import "github.com/benbjohnson/immutable"

// SortedSet is an immutable set of unique elements ordered by a comparer. Two elements are the
// same element iff the comparer returns zero.
type SortedSet[T any] struct {
	m   *immutable.SortedMap[T, struct{}]
	cmp CompareFunc[T]
}

// NewSortedSet creates a SortedSet from items, dropping duplicates.
func NewSortedSet[T any](cmp CompareFunc[T], items ...T) SortedSet[T] {
	b := immutable.NewSortedMapBuilder[T, struct{}](comparer[T]{cmp: cmp})
	for _, v := range items {
		b.Set(v, struct{}{})
	}
	return SortedSet[T]{m: b.Map(), cmp: cmp}
}

func (s SortedSet[T]) sortedMap() *immutable.SortedMap[T, struct{}] {
	if s.m == nil {
		return immutable.NewSortedMap[T, struct{}](comparer[T]{cmp: s.cmp})
	}
	return s.m
}

// Len returns the number of elements.
func (s SortedSet[T]) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// IsEmpty is true for a SortedSet with no elements.
func (s SortedSet[T]) IsEmpty() bool { return s.Len() == 0 }

// Comparer returns the ordering of the set.
func (s SortedSet[T]) Comparer() CompareFunc[T] { return s.cmp }

// Contains reports whether v is in the set.
func (s SortedSet[T]) Contains(v T) bool {
	if s.m == nil {
		return false
	}
	_, ok := s.m.Get(v)
	return ok
}

// Add returns a new SortedSet containing v. The receiver is returned if v is already there.
func (s SortedSet[T]) Add(v T) SortedSet[T] {
	if s.Contains(v) {
		return s
	}
	return SortedSet[T]{m: s.sortedMap().Set(v, struct{}{}), cmp: s.cmp}
}

// Remove returns a new SortedSet without v. The receiver is returned if v is not there.
func (s SortedSet[T]) Remove(v T) SortedSet[T] {
	if !s.Contains(v) {
		return s
	}
	return SortedSet[T]{m: s.m.Delete(v), cmp: s.cmp}
}

// Items returns the elements in order.
func (s SortedSet[T]) Items() []T {
	ret := make([]T, 0, s.Len())
	if s.m == nil {
		return ret
	}
	it := s.m.Iterator()
	for !it.Done() {
		k, _, _ := it.Next()
		ret = append(ret, k)
	}
	return ret
}

// Equal reports whether two sets hold the same elements.
func (s SortedSet[T]) Equal(o SortedSet[T]) bool {
	if s.Len() != o.Len() {
		return false
	}
	if s.m == o.m || s.Len() == 0 {
		return true
	}
	a, b := s.m.Iterator(), o.m.Iterator()
	for !a.Done() && !b.Done() {
		ka, _, _ := a.Next()
		kb, _, _ := b.Next()
		if s.cmp(ka, kb) != 0 {
			return false
		}
	}
	return true
}
