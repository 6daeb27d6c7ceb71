package snapshot

import "github.com/benbjohnson/immutable"

// SortedMultiset is an immutable sorted bag: each distinct element carries a positive
// multiplicity.
type SortedMultiset[T any] struct {
	m   *immutable.SortedMap[T, int]
	cmp CompareFunc[T]
}

// NewSortedMultiset creates an empty multiset.
func NewSortedMultiset[T any](cmp CompareFunc[T]) SortedMultiset[T] {
	return SortedMultiset[T]{m: immutable.NewSortedMap[T, int](comparer[T]{cmp: cmp}), cmp: cmp}
}

// Count returns the multiplicity of v.
func (s SortedMultiset[T]) Count(v T) int {
	n, _ := s.m.Get(v)
	return n
}

// Distinct returns the number of distinct elements.
func (s SortedMultiset[T]) Distinct() int { return s.m.Len() }

// Add increases the multiplicity of v by one and returns the new multiset and multiplicity.
func (s SortedMultiset[T]) Add(v T) (SortedMultiset[T], int) {
	n := s.Count(v) + 1
	return SortedMultiset[T]{m: s.m.Set(v, n), cmp: s.cmp}, n
}

// Remove decreases the multiplicity of v by one and returns the new multiset and multiplicity.
// Removing an element that is not present returns the receiver and -1.
func (s SortedMultiset[T]) Remove(v T) (SortedMultiset[T], int) {
	n := s.Count(v)
	switch n {
	case 0:
		return s, -1
	case 1:
		return SortedMultiset[T]{m: s.m.Delete(v), cmp: s.cmp}, 0
	default:
		return SortedMultiset[T]{m: s.m.Set(v, n-1), cmp: s.cmp}, n - 1
	}
}

// Set returns the distinct elements as a SortedSet.
func (s SortedMultiset[T]) Set() SortedSet[T] {
	b := immutable.NewSortedMapBuilder[T, struct{}](comparer[T]{cmp: s.cmp})
	it := s.m.Iterator()
	for !it.Done() {
		k, _, _ := it.Next()
		b.Set(k, struct{}{})
	}
	return SortedSet[T]{m: b.Map(), cmp: s.cmp}
}
