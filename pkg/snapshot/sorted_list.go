package snapshot

import (
	"slices"
	"sort"
)

// SortedList is an immutable List kept sorted by a comparer. Elements comparing equal keep their
// insertion order: a new element is placed after every element it compares equal to.
type SortedList[T any] struct {
	list List[T]
	cmp  CompareFunc[T]
}

// NewSortedList creates a SortedList from items, sorting them stably.
func NewSortedList[T any](cmp CompareFunc[T], eq EqualFunc[T], items ...T) SortedList[T] {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, cmp)
	return SortedList[T]{list: List[T]{items: sorted, eq: orDefault(eq)}, cmp: cmp}
}

// Len returns the number of elements.
func (s SortedList[T]) Len() int { return s.list.Len() }

// IsEmpty is true for a SortedList with no elements.
func (s SortedList[T]) IsEmpty() bool { return s.list.IsEmpty() }

// At returns the element at position i.
func (s SortedList[T]) At(i int) T { return s.list.At(i) }

// Items returns the elements in order. The result must be treated as read-only.
func (s SortedList[T]) Items() []T { return s.list.Items() }

// Comparer returns the ordering of the list.
func (s SortedList[T]) Comparer() CompareFunc[T] { return s.cmp }

// Equaler returns the element equality of the list.
func (s SortedList[T]) Equaler() EqualFunc[T] { return s.list.Equaler() }

// List returns the elements as a plain List.
func (s SortedList[T]) List() List[T] { return s.list }

// LowerBound returns the first position whose element does not compare less than v.
func (s SortedList[T]) LowerBound(v T) int {
	items := s.list.items
	return sort.Search(len(items), func(i int) bool { return s.cmp(items[i], v) >= 0 })
}

// UpperBound returns the first position whose element compares greater than v. This is where
// Insert places v.
func (s SortedList[T]) UpperBound(v T) int {
	items := s.list.items
	return sort.Search(len(items), func(i int) bool { return s.cmp(items[i], v) > 0 })
}

// IndexOf returns the position of an element equal to v, or -1. Only the run of elements that
// compare equal to v is scanned.
func (s SortedList[T]) IndexOf(v T) int {
	eq := s.list.Equaler()
	items := s.list.items
	for i := s.LowerBound(v); i < len(items) && s.cmp(items[i], v) == 0; i++ {
		if eq(items[i], v) {
			return i
		}
	}
	return -1
}

// Insert returns a new SortedList with v at its sorted position, and that position.
func (s SortedList[T]) Insert(v T) (SortedList[T], int) {
	i := s.UpperBound(v)
	return SortedList[T]{list: s.list.Insert(i, v), cmp: s.cmp}, i
}

// InsertAt returns a new SortedList with vs inserted before position i. The caller guarantees
// that the result is still sorted, see Fits.
func (s SortedList[T]) InsertAt(i int, vs ...T) SortedList[T] {
	return SortedList[T]{list: s.list.Insert(i, vs...), cmp: s.cmp}
}

// RemoveRange returns a new SortedList without count elements starting at i.
func (s SortedList[T]) RemoveRange(i, count int) SortedList[T] {
	return SortedList[T]{list: s.list.RemoveRange(i, count), cmp: s.cmp}
}

// Set returns a new SortedList with the element at i replaced by v. The caller guarantees that
// the result is still sorted, see Fits.
func (s SortedList[T]) Set(i int, v T) SortedList[T] {
	return SortedList[T]{list: s.list.Set(i, v), cmp: s.cmp}
}

// Fits reports whether v may replace the element at position i without breaking the order.
func (s SortedList[T]) Fits(i int, v T) bool {
	items := s.list.items
	if i > 0 && s.cmp(items[i-1], v) > 0 {
		return false
	}
	if i < len(items)-1 && s.cmp(v, items[i+1]) > 0 {
		return false
	}
	return true
}

// Equal reports whether two SortedLists hold equal elements in the same order.
func (s SortedList[T]) Equal(o SortedList[T]) bool { return s.list.Equal(o.list) }
