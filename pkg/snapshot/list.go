package snapshot

import "slices"

// List is an immutable ordered sequence. Modifying operations copy the backing array, the
// receiver is never changed, so two Lists may safely share a backing array.
type List[T any] struct {
	items []T
	eq    EqualFunc[T]
}

// NewList creates a List holding a copy of items. A nil eq selects DefaultEqual.
func NewList[T any](eq EqualFunc[T], items ...T) List[T] {
	return List[T]{items: slices.Clone(items), eq: orDefault(eq)}
}

// EmptyList returns an empty List.
func EmptyList[T any](eq EqualFunc[T]) List[T] {
	return List[T]{eq: orDefault(eq)}
}

// Len returns the number of elements.
func (l List[T]) Len() int { return len(l.items) }

// IsEmpty is true for a List with no elements.
func (l List[T]) IsEmpty() bool { return len(l.items) == 0 }

// At returns the element at position i. It panics if i is out of range.
func (l List[T]) At(i int) T { return l.items[i] }

// Items returns the elements as a slice. The result must be treated as read-only.
func (l List[T]) Items() []T { return l.items }

// ToSlice returns a mutable copy of the elements.
func (l List[T]) ToSlice() []T { return slices.Clone(l.items) }

// Equaler returns the element equality used by the List.
func (l List[T]) Equaler() EqualFunc[T] { return orDefault(l.eq) }

// IndexOf returns the position of the first element equal to v, or -1.
func (l List[T]) IndexOf(v T) int {
	eq := l.Equaler()
	for i := range l.items {
		if eq(l.items[i], v) {
			return i
		}
	}
	return -1
}

// Contains reports whether v is in the List.
func (l List[T]) Contains(v T) bool { return l.IndexOf(v) >= 0 }

// Insert returns a new List with vs inserted before position i.
func (l List[T]) Insert(i int, vs ...T) List[T] {
	if len(vs) == 0 {
		return l
	}
	items := make([]T, 0, len(l.items)+len(vs))
	items = append(items, l.items[:i]...)
	items = append(items, vs...)
	items = append(items, l.items[i:]...)
	return List[T]{items: items, eq: l.eq}
}

// Append returns a new List with vs added at the end.
func (l List[T]) Append(vs ...T) List[T] { return l.Insert(len(l.items), vs...) }

// RemoveRange returns a new List without the count elements starting at i.
func (l List[T]) RemoveRange(i, count int) List[T] {
	if count == 0 {
		return l
	}
	items := make([]T, 0, len(l.items)-count)
	items = append(items, l.items[:i]...)
	items = append(items, l.items[i+count:]...)
	return List[T]{items: items, eq: l.eq}
}

// Splice returns a new List where the count elements starting at i are replaced by vs.
func (l List[T]) Splice(i, count int, vs ...T) List[T] {
	items := make([]T, 0, len(l.items)-count+len(vs))
	items = append(items, l.items[:i]...)
	items = append(items, vs...)
	items = append(items, l.items[i+count:]...)
	return List[T]{items: items, eq: l.eq}
}

// Set returns a new List with the element at i replaced by v.
func (l List[T]) Set(i int, v T) List[T] {
	items := slices.Clone(l.items)
	items[i] = v
	return List[T]{items: items, eq: l.eq}
}

// Slice returns the elements in [i, j) as a List sharing the backing array.
func (l List[T]) Slice(i, j int) List[T] {
	return List[T]{items: l.items[i:j:j], eq: l.eq}
}

// Equal reports whether two Lists hold equal elements in the same order.
func (l List[T]) Equal(o List[T]) bool {
	if len(l.items) != len(o.items) {
		return false
	}
	if len(l.items) == 0 || &l.items[0] == &o.items[0] {
		return true
	}
	eq := l.Equaler()
	for i := range l.items {
		if !eq(l.items[i], o.items[i]) {
			return false
		}
	}
	return true
}
