package testutils

import (
	"fmt"
	"slices"

	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/snapshot"
)

// Replay applies the diff carried by c to items. Indexed changes are applied positionally and
// must match the items found at the index; unindexed changes are applied by value, appending
// additions. A Reset yields the snapshot carried by c.
func Replay[T any](items []T, c notification.Change[T], eq snapshot.EqualFunc[T]) ([]T, error) {
	if eq == nil {
		eq = snapshot.DefaultEqual[T]
	}
	if c.Action == notification.Reset {
		return slices.Clone(c.Current()), nil
	}

	if c.Indexed() {
		i := c.Index
		if i < 0 || i+len(c.OldItems) > len(items) || (c.Action == notification.Add && i > len(items)) {
			return nil, fmt.Errorf("%s: index %d out of range for %d items", c.Action, i, len(items))
		}
		for j, old := range c.OldItems {
			if !eq(items[i+j], old) {
				return nil, fmt.Errorf("%s: item %v at index %d is not %v", c.Action, items[i+j], i+j, old)
			}
		}
		return slices.Concat(items[:i:i], c.NewItems, items[i+len(c.OldItems):]), nil
	}

	ret := slices.Clone(items)
	for _, old := range c.OldItems {
		k := slices.IndexFunc(ret, func(v T) bool { return eq(v, old) })
		if k < 0 {
			return nil, fmt.Errorf("%s: item %v not found", c.Action, old)
		}
		ret = slices.Delete(ret, k, k+1)
	}
	return append(ret, c.NewItems...), nil
}

// CheckSound replays every change of ns on top of the Reset the sequence starts with and verifies
// that each step reproduces the snapshot carried by the notification. Unindexed collections are
// compared regardless of order.
func CheckSound[T any, N notification.Changer[T]](ns []N, eq snapshot.EqualFunc[T]) error {
	if eq == nil {
		eq = snapshot.DefaultEqual[T]
	}
	var items []T
	for k, n := range ns {
		c := n.Change()
		if k == 0 && c.Action != notification.Reset {
			return fmt.Errorf("first notification is %s, not Reset", c.Action)
		}
		next, err := Replay(items, c, eq)
		if err != nil {
			return fmt.Errorf("notification %d: %w", k, err)
		}
		if !sameItems(next, c.Current(), c.Indexed(), eq) {
			return fmt.Errorf("notification %d: replayed %v, carried %v", k, next, c.Current())
		}
		items = next
	}
	return nil
}

func sameItems[T any](a, b []T, ordered bool, eq snapshot.EqualFunc[T]) bool {
	if len(a) != len(b) {
		return false
	}
	if ordered {
		return slices.EqualFunc(a, b, eq)
	}
	rest := slices.Clone(b)
	for _, v := range a {
		k := slices.IndexFunc(rest, func(w T) bool { return eq(v, w) })
		if k < 0 {
			return false
		}
		rest = slices.Delete(rest, k, k+1)
	}
	return true
}
