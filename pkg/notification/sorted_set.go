package notification

import (
	"fmt"

	"github.com/l7mp/rxcollections/pkg/snapshot"
)

// SortedSet is a notification on a set of unique elements ordered by a comparer. Sets are not
// index-aware.
type SortedSet[T any] struct {
	action   Action
	current  snapshot.SortedSet[T]
	oldItems []T
	newItems []T
}

var _ Notification[SortedSet[int]] = SortedSet[int]{}
var _ Changer[int] = SortedSet[int]{}

// NewSortedSet returns the Reset notification of an empty set.
func NewSortedSet[T any](cmp snapshot.CompareFunc[T]) SortedSet[T] {
	return ResetSortedSet(snapshot.NewSortedSet(cmp))
}

// ResetSortedSet returns a Reset notification carrying current.
func ResetSortedSet[T any](current snapshot.SortedSet[T]) SortedSet[T] {
	return SortedSet[T]{action: Reset, current: current}
}

func (n SortedSet[T]) Action() Action                    { return n.action }
func (n SortedSet[T]) Current() snapshot.SortedSet[T]    { return n.current }
func (n SortedSet[T]) OldItems() []T                     { return n.oldItems }
func (n SortedSet[T]) NewItems() []T                     { return n.newItems }
func (n SortedSet[T]) AsReset() SortedSet[T]             { return ResetSortedSet(n.current) }
func (n SortedSet[T]) SameState(other SortedSet[T]) bool { return n.current.Equal(other.current) }

// Change implements Changer.
func (n SortedSet[T]) Change() Change[T] {
	cur := n.current
	return Change[T]{
		Action:   n.action,
		OldItems: n.oldItems,
		NewItems: n.newItems,
		Index:    NoIndex,
		current:  cur.Items,
	}
}

// String implements fmt.Stringer.
func (n SortedSet[T]) String() string {
	return fmt.Sprintf("%s(old=%v, new=%v, current=%v)", n.action, n.oldItems, n.newItems,
		n.current.Items())
}

// Add inserts v. Adding an element already in the set returns the receiver.
func (n SortedSet[T]) Add(v T) SortedSet[T] {
	return n.AddRange([]T{v})
}

// AddRange inserts the elements of vs that are not yet in the set. NewItems lists only the
// elements actually added.
func (n SortedSet[T]) AddRange(vs []T) SortedSet[T] {
	cur, added := n.current, []T{}
	for _, v := range vs {
		if cur.Contains(v) {
			continue
		}
		cur = cur.Add(v)
		added = append(added, v)
	}
	if len(added) == 0 {
		return n
	}
	return SortedSet[T]{action: Add, current: cur, newItems: added}
}

// Remove deletes v. Removing an element not in the set returns the receiver.
func (n SortedSet[T]) Remove(v T) SortedSet[T] {
	return n.RemoveRange([]T{v})
}

// RemoveRange deletes the elements of vs that are in the set.
func (n SortedSet[T]) RemoveRange(vs []T) SortedSet[T] {
	cur, removed := n.current, []T{}
	for _, v := range vs {
		if !cur.Contains(v) {
			continue
		}
		cur = cur.Remove(v)
		removed = append(removed, v)
	}
	if len(removed) == 0 {
		return n
	}
	return SortedSet[T]{action: Remove, current: cur, oldItems: removed}
}

// Replace swaps oldValue for newValue. If oldValue is not in the set newValue is added; if
// newValue is already in the set oldValue is only removed.
func (n SortedSet[T]) Replace(oldValue, newValue T) SortedSet[T] {
	switch {
	case !n.current.Contains(oldValue):
		return n.Add(newValue)
	case n.current.Comparer()(oldValue, newValue) == 0:
		return n
	case n.current.Contains(newValue):
		return n.Remove(oldValue)
	}
	return SortedSet[T]{
		action:   Replace,
		current:  n.current.Remove(oldValue).Add(newValue),
		oldItems: []T{oldValue},
		newItems: []T{newValue},
	}
}

// Clear removes every element.
func (n SortedSet[T]) Clear() SortedSet[T] {
	if n.current.IsEmpty() {
		return n
	}
	return NewSortedSet(n.current.Comparer())
}

// ResetTo replaces the whole content by the unique elements of items.
func (n SortedSet[T]) ResetTo(items []T) SortedSet[T] {
	return ResetSortedSet(snapshot.NewSortedSet(n.current.Comparer(), items...))
}
