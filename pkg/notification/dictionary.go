package notification

import (
	"fmt"
	"slices"

	"github.com/l7mp/rxcollections/pkg/snapshot"
)

// Dictionary is a notification on a key-value map. Dictionaries are not index-aware.
type Dictionary[K comparable, V any] struct {
	action   Action
	current  snapshot.Dictionary[K, V]
	oldItems []snapshot.KeyValue[K, V]
	newItems []snapshot.KeyValue[K, V]
}

var _ Notification[Dictionary[string, int]] = Dictionary[string, int]{}
var _ Changer[snapshot.KeyValue[string, int]] = Dictionary[string, int]{}

// NewDictionary returns the Reset notification of an empty dictionary. A nil eq selects
// snapshot.DefaultEqual for values.
func NewDictionary[K comparable, V any](eq snapshot.EqualFunc[V]) Dictionary[K, V] {
	return ResetDictionary(snapshot.NewDictionary[K, V](eq))
}

// ResetDictionary returns a Reset notification carrying current.
func ResetDictionary[K comparable, V any](current snapshot.Dictionary[K, V]) Dictionary[K, V] {
	return Dictionary[K, V]{action: Reset, current: current}
}

func (n Dictionary[K, V]) Action() Action                        { return n.action }
func (n Dictionary[K, V]) Current() snapshot.Dictionary[K, V]    { return n.current }
func (n Dictionary[K, V]) OldItems() []snapshot.KeyValue[K, V]   { return n.oldItems }
func (n Dictionary[K, V]) NewItems() []snapshot.KeyValue[K, V]   { return n.newItems }
func (n Dictionary[K, V]) AsReset() Dictionary[K, V]             { return ResetDictionary(n.current) }
func (n Dictionary[K, V]) SameState(other Dictionary[K, V]) bool { return n.current.Equal(other.current) }

// Change implements Changer.
func (n Dictionary[K, V]) Change() Change[snapshot.KeyValue[K, V]] {
	cur := n.current
	return Change[snapshot.KeyValue[K, V]]{
		Action:   n.action,
		OldItems: n.oldItems,
		NewItems: n.newItems,
		Index:    NoIndex,
		current:  cur.Items,
	}
}

// String implements fmt.Stringer.
func (n Dictionary[K, V]) String() string {
	return fmt.Sprintf("%s(old=%v, new=%v, current=%v)", n.action, n.oldItems, n.newItems,
		n.current.Items())
}

// Add inserts key. Adding an existing key fails with ErrKeyExists.
func (n Dictionary[K, V]) Add(key K, value V) (Dictionary[K, V], error) {
	return n.AddRange([]snapshot.KeyValue[K, V]{{Key: key, Value: value}})
}

// AddRange inserts all entries. If any key already exists, or appears twice in entries, the
// whole batch is rejected with ErrKeyExists.
func (n Dictionary[K, V]) AddRange(entries []snapshot.KeyValue[K, V]) (Dictionary[K, V], error) {
	if len(entries) == 0 {
		return n, nil
	}
	cur := n.current
	for _, kv := range entries {
		if cur.ContainsKey(kv.Key) {
			return n, newKeyExistsError("add", kv.Key)
		}
		cur = cur.Set(kv.Key, kv.Value)
	}
	return Dictionary[K, V]{action: Add, current: cur, newItems: slices.Clone(entries)}, nil
}

// Remove deletes key. Removing a missing key returns the receiver.
func (n Dictionary[K, V]) Remove(key K) Dictionary[K, V] {
	return n.RemoveRange([]K{key})
}

// RemoveRange deletes the keys that are present.
func (n Dictionary[K, V]) RemoveRange(keys []K) Dictionary[K, V] {
	cur, removed := n.current, []snapshot.KeyValue[K, V]{}
	for _, k := range keys {
		v, ok := cur.Get(k)
		if !ok {
			continue
		}
		cur = cur.Delete(k)
		removed = append(removed, snapshot.KeyValue[K, V]{Key: k, Value: v})
	}
	if len(removed) == 0 {
		return n
	}
	return Dictionary[K, V]{action: Remove, current: cur, oldItems: removed}
}

// SetItem maps key to value: a Replace if key is present, an Add if it is not, and the receiver
// if the stored value is already equal.
func (n Dictionary[K, V]) SetItem(key K, value V) Dictionary[K, V] {
	old, ok := n.current.Get(key)
	if !ok {
		next, _ := n.Add(key, value)
		return next
	}
	if n.current.Equaler()(old, value) {
		return n
	}
	return Dictionary[K, V]{
		action:   Replace,
		current:  n.current.Set(key, value),
		oldItems: []snapshot.KeyValue[K, V]{{Key: key, Value: old}},
		newItems: []snapshot.KeyValue[K, V]{{Key: key, Value: value}},
	}
}

// SetItems maps every key in entries to its value. A single entry behaves like SetItem; a bulk
// update is reported as a Reset.
func (n Dictionary[K, V]) SetItems(entries []snapshot.KeyValue[K, V]) Dictionary[K, V] {
	switch len(entries) {
	case 0:
		return n
	case 1:
		return n.SetItem(entries[0].Key, entries[0].Value)
	}
	cur := n.current
	for _, kv := range entries {
		cur = cur.Set(kv.Key, kv.Value)
	}
	return ResetDictionary(cur)
}

// Clear removes every entry.
func (n Dictionary[K, V]) Clear() Dictionary[K, V] {
	if n.current.IsEmpty() {
		return n
	}
	return NewDictionary[K, V](n.current.Equaler())
}

// ResetTo replaces the whole content by entries.
func (n Dictionary[K, V]) ResetTo(entries []snapshot.KeyValue[K, V]) Dictionary[K, V] {
	return ResetDictionary(snapshot.NewDictionary(n.current.Equaler(), entries...))
}
