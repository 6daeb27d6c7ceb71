package snapshot

import (
	"fmt"
	"reflect"

	"github.com/benbjohnson/immutable"
	"github.com/cespare/xxhash"
)

// KeyValue is one dictionary entry.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// String implements fmt.Stringer.
func (kv KeyValue[K, V]) String() string { return fmt.Sprintf("%v:%v", kv.Key, kv.Value) }

// newHasher picks immutable's native hasher for integer and string keys and falls back to
// formatHasher for everything else.
func newHasher[K comparable]() immutable.Hasher[K] {
	var zero K
	switch reflect.TypeOf(&zero).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.String:
		return immutable.NewHasher(zero)
	}
	return formatHasher[K]{}
}

// formatHasher hashes composite keys with xxhash over their printed form. Keys equal under ==
// print the same, so equal keys always land in the same bucket.
type formatHasher[K comparable] struct{}

func (formatHasher[K]) Hash(key K) uint32 {
	h := xxhash.Sum64String(fmt.Sprintf("%#v", key))
	return uint32(h ^ (h >> 32))
}

func (formatHasher[K]) Equal(a, b K) bool { return a == b }

// Dictionary is an immutable key-value map.
type Dictionary[K comparable, V any] struct {
	m  *immutable.Map[K, V]
	eq EqualFunc[V]
}

// NewDictionary creates a Dictionary from the given entries. Later entries overwrite earlier
// ones with the same key. A nil eq selects DefaultEqual for comparing values.
func NewDictionary[K comparable, V any](eq EqualFunc[V], entries ...KeyValue[K, V]) Dictionary[K, V] {
	b := immutable.NewMapBuilder[K, V](newHasher[K]())
	for _, kv := range entries {
		b.Set(kv.Key, kv.Value)
	}
	return Dictionary[K, V]{m: b.Map(), eq: orDefault(eq)}
}

func (d Dictionary[K, V]) hamt() *immutable.Map[K, V] {
	if d.m == nil {
		return immutable.NewMap[K, V](newHasher[K]())
	}
	return d.m
}

// Len returns the number of entries.
func (d Dictionary[K, V]) Len() int {
	if d.m == nil {
		return 0
	}
	return d.m.Len()
}

// IsEmpty is true for a Dictionary with no entries.
func (d Dictionary[K, V]) IsEmpty() bool { return d.Len() == 0 }

// Equaler returns the value equality of the Dictionary.
func (d Dictionary[K, V]) Equaler() EqualFunc[V] { return orDefault(d.eq) }

// Get returns the value stored under key.
func (d Dictionary[K, V]) Get(key K) (V, bool) {
	if d.m == nil {
		var zero V
		return zero, false
	}
	return d.m.Get(key)
}

// ContainsKey reports whether key is present.
func (d Dictionary[K, V]) ContainsKey(key K) bool {
	_, ok := d.Get(key)
	return ok
}

// Set returns a new Dictionary with key mapped to value.
func (d Dictionary[K, V]) Set(key K, value V) Dictionary[K, V] {
	return Dictionary[K, V]{m: d.hamt().Set(key, value), eq: d.eq}
}

// Delete returns a new Dictionary without key.
func (d Dictionary[K, V]) Delete(key K) Dictionary[K, V] {
	if !d.ContainsKey(key) {
		return d
	}
	return Dictionary[K, V]{m: d.m.Delete(key), eq: d.eq}
}

// Items returns all entries. The order is deterministic for a given set of keys but otherwise
// unspecified.
func (d Dictionary[K, V]) Items() []KeyValue[K, V] {
	ret := make([]KeyValue[K, V], 0, d.Len())
	if d.m == nil {
		return ret
	}
	it := d.m.Iterator()
	for !it.Done() {
		k, v, _ := it.Next()
		ret = append(ret, KeyValue[K, V]{Key: k, Value: v})
	}
	return ret
}

// ToMap returns the entries as a Go map.
func (d Dictionary[K, V]) ToMap() map[K]V {
	ret := make(map[K]V, d.Len())
	for _, kv := range d.Items() {
		ret[kv.Key] = kv.Value
	}
	return ret
}

// Equal reports whether two Dictionaries hold the same keys mapped to equal values.
func (d Dictionary[K, V]) Equal(o Dictionary[K, V]) bool {
	if d.Len() != o.Len() {
		return false
	}
	if d.m == o.m || d.Len() == 0 {
		return true
	}
	eq := d.Equaler()
	it := d.m.Iterator()
	for !it.Done() {
		k, v, _ := it.Next()
		ov, ok := o.m.Get(k)
		if !ok || !eq(v, ov) {
			return false
		}
	}
	return true
}
