package notification

import (
	"fmt"
	"slices"

	"github.com/l7mp/rxcollections/pkg/snapshot"
)

// List is a notification on an ordered, index-addressable collection.
type List[T any] struct {
	action   Action
	current  snapshot.List[T]
	oldItems []T
	newItems []T
	index    int
}

var _ Notification[List[int]] = List[int]{}
var _ Changer[int] = List[int]{}

// NewList returns the Reset notification of an empty list. A nil eq selects
// snapshot.DefaultEqual.
func NewList[T any](eq snapshot.EqualFunc[T]) List[T] {
	return ResetList(snapshot.EmptyList(eq))
}

// ResetList returns a Reset notification carrying current.
func ResetList[T any](current snapshot.List[T]) List[T] {
	return List[T]{action: Reset, current: current, index: NoIndex}
}

func (n List[T]) Action() Action               { return n.action }
func (n List[T]) Current() snapshot.List[T]    { return n.current }
func (n List[T]) OldItems() []T                { return n.oldItems }
func (n List[T]) NewItems() []T                { return n.newItems }
func (n List[T]) AsReset() List[T]             { return ResetList(n.current) }
func (n List[T]) SameState(other List[T]) bool { return n.current.Equal(other.current) }

// Index returns the position of the first affected element. It is absent for Reset.
func (n List[T]) Index() (int, bool) { return n.index, n.index != NoIndex }

// Change implements Changer.
func (n List[T]) Change() Change[T] {
	cur := n.current
	return Change[T]{
		Action:   n.action,
		OldItems: n.oldItems,
		NewItems: n.newItems,
		Index:    n.index,
		current:  cur.Items,
	}
}

// String implements fmt.Stringer.
func (n List[T]) String() string {
	return fmt.Sprintf("%s(index=%d, old=%v, new=%v, current=%v)", n.action, n.index,
		n.oldItems, n.newItems, n.current.Items())
}

// Add appends v.
func (n List[T]) Add(v T) List[T] {
	return n.AddRange([]T{v})
}

// AddRange appends vs. An empty vs returns the receiver.
func (n List[T]) AddRange(vs []T) List[T] {
	next, _ := n.InsertRange(n.current.Len(), vs)
	return next
}

// Insert inserts v before position index.
func (n List[T]) Insert(index int, v T) (List[T], error) {
	return n.InsertRange(index, []T{v})
}

// InsertRange inserts vs before position index.
func (n List[T]) InsertRange(index int, vs []T) (List[T], error) {
	if err := checkRange("insert", index, 0, n.current.Len()); err != nil {
		return n, err
	}
	if len(vs) == 0 {
		return n, nil
	}
	vs = slices.Clone(vs)
	return List[T]{
		action:   Add,
		current:  n.current.Insert(index, vs...),
		newItems: vs,
		index:    index,
	}, nil
}

// Remove deletes the first element equal to v. The receiver is returned if there is none.
func (n List[T]) Remove(v T) List[T] {
	i := n.current.IndexOf(v)
	if i < 0 {
		return n
	}
	next, _ := n.RemoveRange(i, 1)
	return next
}

// RemoveAt deletes the element at index.
func (n List[T]) RemoveAt(index int) (List[T], error) {
	if err := checkRange("remove-at", index, 1, n.current.Len()); err != nil {
		return n, err
	}
	return n.RemoveRange(index, 1)
}

// RemoveRange deletes count elements starting at index.
func (n List[T]) RemoveRange(index, count int) (List[T], error) {
	if err := checkRange("remove-range", index, count, n.current.Len()); err != nil {
		return n, err
	}
	if count == 0 {
		return n, nil
	}
	return List[T]{
		action:   Remove,
		current:  n.current.RemoveRange(index, count),
		oldItems: n.current.Slice(index, index+count).ToSlice(),
		index:    index,
	}, nil
}

// Replace swaps the first element equal to oldValue for newValue. If oldValue is not present
// newValue is appended instead.
func (n List[T]) Replace(oldValue, newValue T) List[T] {
	i := n.current.IndexOf(oldValue)
	if i < 0 {
		return n.Add(newValue)
	}
	next, _ := n.SetItem(i, newValue)
	return next
}

// SetItem overwrites the element at index.
func (n List[T]) SetItem(index int, v T) (List[T], error) {
	if err := checkRange("set-item", index, 1, n.current.Len()); err != nil {
		return n, err
	}
	old := n.current.At(index)
	if n.current.Equaler()(old, v) {
		return n, nil
	}
	return List[T]{
		action:   Replace,
		current:  n.current.Set(index, v),
		oldItems: []T{old},
		newItems: []T{v},
		index:    index,
	}, nil
}

// ReplaceRange swaps the count elements starting at index for vs. The two segments may have
// different lengths. Empty segments degrade to a plain Add or Remove.
func (n List[T]) ReplaceRange(index, count int, vs []T) (List[T], error) {
	if err := checkRange("replace-range", index, count, n.current.Len()); err != nil {
		return n, err
	}
	switch {
	case count == 0:
		return n.InsertRange(index, vs)
	case len(vs) == 0:
		return n.RemoveRange(index, count)
	}
	vs = slices.Clone(vs)
	return List[T]{
		action:   Replace,
		current:  n.current.Splice(index, count, vs...),
		oldItems: n.current.Slice(index, index+count).ToSlice(),
		newItems: vs,
		index:    index,
	}, nil
}

// Clear removes every element.
func (n List[T]) Clear() List[T] {
	if n.current.IsEmpty() {
		return n
	}
	return ResetList(snapshot.EmptyList(n.current.Equaler()))
}

// ResetTo replaces the whole content by items.
func (n List[T]) ResetTo(items []T) List[T] {
	return ResetList(snapshot.NewList(n.current.Equaler(), items...))
}

// Sort sorts count elements starting at index. The result is a Reset.
func (n List[T]) Sort(index, count int, cmp snapshot.CompareFunc[T]) (List[T], error) {
	if err := checkRange("sort", index, count, n.current.Len()); err != nil {
		return n, err
	}
	items := n.current.ToSlice()
	slices.SortStableFunc(items[index:index+count], cmp)
	return ResetList(snapshot.NewList(n.current.Equaler(), items...)), nil
}

// Reverse reverses count elements starting at index. The result is a Reset.
func (n List[T]) Reverse(index, count int) (List[T], error) {
	if err := checkRange("reverse", index, count, n.current.Len()); err != nil {
		return n, err
	}
	items := n.current.ToSlice()
	slices.Reverse(items[index : index+count])
	return ResetList(snapshot.NewList(n.current.Equaler(), items...)), nil
}

// RemoveAll deletes every element matching pred. The result is a Reset, or the receiver if
// nothing matches.
func (n List[T]) RemoveAll(pred func(T) bool) List[T] {
	kept := make([]T, 0, n.current.Len())
	for _, v := range n.current.Items() {
		if !pred(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == n.current.Len() {
		return n
	}
	return n.ResetTo(kept)
}
