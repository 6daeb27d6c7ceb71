package notification

import (
	"fmt"
	"slices"

	"github.com/l7mp/rxcollections/pkg/snapshot"
)

// SortedList is a notification on a list kept sorted by a comparer.
type SortedList[T any] struct {
	action   Action
	current  snapshot.SortedList[T]
	oldItems []T
	newItems []T
	index    int
}

var _ Notification[SortedList[int]] = SortedList[int]{}
var _ Changer[int] = SortedList[int]{}

// NewSortedList returns the Reset notification of an empty sorted list.
func NewSortedList[T any](cmp snapshot.CompareFunc[T], eq snapshot.EqualFunc[T]) SortedList[T] {
	return ResetSortedList(snapshot.NewSortedList(cmp, eq))
}

// ResetSortedList returns a Reset notification carrying current.
func ResetSortedList[T any](current snapshot.SortedList[T]) SortedList[T] {
	return SortedList[T]{action: Reset, current: current, index: NoIndex}
}

func (n SortedList[T]) Action() Action                     { return n.action }
func (n SortedList[T]) Current() snapshot.SortedList[T]    { return n.current }
func (n SortedList[T]) OldItems() []T                      { return n.oldItems }
func (n SortedList[T]) NewItems() []T                      { return n.newItems }
func (n SortedList[T]) Comparer() snapshot.CompareFunc[T]  { return n.current.Comparer() }
func (n SortedList[T]) AsReset() SortedList[T]             { return ResetSortedList(n.current) }
func (n SortedList[T]) SameState(other SortedList[T]) bool { return n.current.Equal(other.current) }

// Index returns the position of the first affected element. It is absent for Reset.
func (n SortedList[T]) Index() (int, bool) { return n.index, n.index != NoIndex }

// Change implements Changer.
func (n SortedList[T]) Change() Change[T] {
	cur := n.current
	return Change[T]{
		Action:   n.action,
		OldItems: n.oldItems,
		NewItems: n.newItems,
		Index:    n.index,
		current:  cur.Items,
	}
}

// ToList converts the notification into a plain List notification with the same diff.
func (n SortedList[T]) ToList() List[T] {
	return List[T]{
		action:   n.action,
		current:  n.current.List(),
		oldItems: n.oldItems,
		newItems: n.newItems,
		index:    n.index,
	}
}

// String implements fmt.Stringer.
func (n SortedList[T]) String() string {
	return fmt.Sprintf("%s(index=%d, old=%v, new=%v, current=%v)", n.action, n.index,
		n.oldItems, n.newItems, n.current.Items())
}

// Add inserts v at its sorted position.
func (n SortedList[T]) Add(v T) SortedList[T] {
	next, i := n.current.Insert(v)
	return SortedList[T]{action: Add, current: next, newItems: []T{v}, index: i}
}

// AddRange inserts vs. If the sorted vs all land between the same two neighbors the result is a
// single Add at that position, otherwise the result is a Reset.
func (n SortedList[T]) AddRange(vs []T) SortedList[T] {
	switch len(vs) {
	case 0:
		return n
	case 1:
		return n.Add(vs[0])
	}
	sorted := slices.Clone(vs)
	slices.SortStableFunc(sorted, n.current.Comparer())
	first, last := n.current.UpperBound(sorted[0]), n.current.UpperBound(sorted[len(sorted)-1])
	if first == last {
		return SortedList[T]{
			action:   Add,
			current:  n.current.InsertAt(first, sorted...),
			newItems: sorted,
			index:    first,
		}
	}
	items := append(n.current.List().ToSlice(), vs...)
	return ResetSortedList(snapshot.NewSortedList(n.current.Comparer(), n.current.Equaler(), items...))
}

// Remove deletes an element equal to v. The receiver is returned if there is none.
func (n SortedList[T]) Remove(v T) SortedList[T] {
	i := n.current.IndexOf(v)
	if i < 0 {
		return n
	}
	next, _ := n.RemoveRange(i, 1)
	return next
}

// RemoveAt deletes the element at index.
func (n SortedList[T]) RemoveAt(index int) (SortedList[T], error) {
	if err := checkRange("remove-at", index, 1, n.current.Len()); err != nil {
		return n, err
	}
	return n.RemoveRange(index, 1)
}

// RemoveRange deletes count elements starting at index.
func (n SortedList[T]) RemoveRange(index, count int) (SortedList[T], error) {
	if err := checkRange("remove-range", index, count, n.current.Len()); err != nil {
		return n, err
	}
	if count == 0 {
		return n, nil
	}
	return SortedList[T]{
		action:   Remove,
		current:  n.current.RemoveRange(index, count),
		oldItems: n.current.List().Slice(index, index+count).ToSlice(),
		index:    index,
	}, nil
}

// Replace swaps an element equal to oldValue for newValue. The update is in place if newValue
// sorts into the same slot, otherwise the result is a Reset. If oldValue is not present
// newValue is added instead.
func (n SortedList[T]) Replace(oldValue, newValue T) SortedList[T] {
	i := n.current.IndexOf(oldValue)
	if i < 0 {
		return n.Add(newValue)
	}
	old := n.current.At(i)
	if n.current.Equaler()(old, newValue) {
		return n
	}
	if n.current.Fits(i, newValue) {
		return SortedList[T]{
			action:   Replace,
			current:  n.current.Set(i, newValue),
			oldItems: []T{old},
			newItems: []T{newValue},
			index:    i,
		}
	}
	next, _ := n.current.RemoveRange(i, 1).Insert(newValue)
	return ResetSortedList(next)
}

// Clear removes every element.
func (n SortedList[T]) Clear() SortedList[T] {
	if n.current.IsEmpty() {
		return n
	}
	return NewSortedList(n.current.Comparer(), n.current.Equaler())
}

// ResetTo replaces the whole content by items, sorted.
func (n SortedList[T]) ResetTo(items []T) SortedList[T] {
	return ResetSortedList(snapshot.NewSortedList(n.current.Comparer(), n.current.Equaler(), items...))
}
