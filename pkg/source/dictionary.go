package source

import (
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/snapshot"
)

// Dictionary is a mutable observable key-value map.
type Dictionary[K comparable, V any] struct {
	*cell[notification.Dictionary[K, V]]
}

// NewDictionary creates an empty dictionary source. WithEqual sets the value equality.
func NewDictionary[K comparable, V any](opts ...Option) *Dictionary[K, V] {
	cfg := NewConfig("dictionary", opts...)
	return &Dictionary[K, V]{cell: newCell(notification.NewDictionary[K, V](equalFor[V](cfg)), cfg)}
}

// Current returns the latest snapshot.
func (s *Dictionary[K, V]) Current() snapshot.Dictionary[K, V] { return s.Notification().Current() }

// Count returns the number of entries.
func (s *Dictionary[K, V]) Count() int { return s.Current().Len() }

// ContainsKey reports whether key is present.
func (s *Dictionary[K, V]) ContainsKey(key K) bool { return s.Current().ContainsKey(key) }

// Item returns the value stored for key, or ErrKeyNotFound.
func (s *Dictionary[K, V]) Item(key K) (V, error) {
	v, ok := s.Current().Get(key)
	if !ok {
		return v, notification.NewKeyNotFoundError("item", key)
	}
	return v, nil
}

func (s *Dictionary[K, V]) apply(op string, f func(notification.Dictionary[K, V]) notification.Dictionary[K, V]) {
	_ = s.update(op, func(n notification.Dictionary[K, V]) (notification.Dictionary[K, V], error) { return f(n), nil })
}

// Add inserts a new key; an existing key is rejected with ErrKeyExists.
func (s *Dictionary[K, V]) Add(key K, value V) error {
	return s.update("add", func(n notification.Dictionary[K, V]) (notification.Dictionary[K, V], error) {
		return n.Add(key, value)
	})
}

// AddRange inserts all entries or none of them.
func (s *Dictionary[K, V]) AddRange(entries ...snapshot.KeyValue[K, V]) error {
	return s.update("addrange", func(n notification.Dictionary[K, V]) (notification.Dictionary[K, V], error) {
		return n.AddRange(entries)
	})
}

// Remove deletes key, if present.
func (s *Dictionary[K, V]) Remove(key K) {
	s.apply("remove", func(n notification.Dictionary[K, V]) notification.Dictionary[K, V] { return n.Remove(key) })
}

// RemoveRange deletes every key in keys.
func (s *Dictionary[K, V]) RemoveRange(keys ...K) {
	s.apply("removerange", func(n notification.Dictionary[K, V]) notification.Dictionary[K, V] {
		return n.RemoveRange(keys)
	})
}

// SetItem inserts or overwrites key.
func (s *Dictionary[K, V]) SetItem(key K, value V) {
	s.apply("setitem", func(n notification.Dictionary[K, V]) notification.Dictionary[K, V] {
		return n.SetItem(key, value)
	})
}

// SetItems inserts or overwrites every entry.
func (s *Dictionary[K, V]) SetItems(entries ...snapshot.KeyValue[K, V]) {
	s.apply("setitems", func(n notification.Dictionary[K, V]) notification.Dictionary[K, V] {
		return n.SetItems(entries)
	})
}

// Clear removes every entry.
func (s *Dictionary[K, V]) Clear() {
	s.apply("clear", func(n notification.Dictionary[K, V]) notification.Dictionary[K, V] { return n.Clear() })
}

// ResetTo replaces the whole content with entries.
func (s *Dictionary[K, V]) ResetTo(entries ...snapshot.KeyValue[K, V]) {
	s.apply("resetto", func(n notification.Dictionary[K, V]) notification.Dictionary[K, V] {
		return n.ResetTo(entries)
	})
}
