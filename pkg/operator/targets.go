package operator

import (
	"errors"

	"github.com/l7mp/rxcollections/pkg/snapshot"
	"github.com/l7mp/rxcollections/pkg/source"
)

var errNotPositional = errors.New("positional mutation on an unordered target")

// byValue is embedded by targets that cannot be addressed by index.
type byValue[U any] struct{}

func (byValue[U]) positional() bool        { return false }
func (byValue[U]) insert(int, []U) error   { return errNotPositional }
func (byValue[U]) removeAt(int, int) error { return errNotPositional }
func (byValue[U]) replaceAt(int, U) error  { return errNotPositional }

// listTarget maintains a plain list, positionally when the upstream is index-aware.
type listTarget[U any] struct {
	src *source.List[U]
}

func (t listTarget[U]) positional() bool { return true }

func (t listTarget[U]) insert(index int, vs []U) error { return t.src.InsertRange(index, vs...) }

func (t listTarget[U]) removeAt(index, count int) error { return t.src.RemoveRange(index, count) }

func (t listTarget[U]) replaceAt(index int, v U) error { return t.src.SetItem(index, v) }

func (t listTarget[U]) add(vs []U) error {
	t.src.AddRange(vs...)
	return nil
}

func (t listTarget[U]) remove(vs []U) error {
	for _, v := range vs {
		t.src.Remove(v)
	}
	return nil
}

func (t listTarget[U]) replace(oldValue, newValue U) error {
	t.src.Replace(oldValue, newValue)
	return nil
}

func (t listTarget[U]) reset(vs []U) error {
	t.src.ResetTo(vs...)
	return nil
}

// sortedListTarget inserts every item at its sorted position, one notification per item.
type sortedListTarget[U any] struct {
	byValue[U]
	src *source.SortedList[U]
}

func (t sortedListTarget[U]) add(vs []U) error {
	for _, v := range vs {
		t.src.Add(v)
	}
	return nil
}

func (t sortedListTarget[U]) remove(vs []U) error {
	for _, v := range vs {
		t.src.Remove(v)
	}
	return nil
}

// replace is a removal followed by an addition, so that the new item lands at its sorted
// position.
func (t sortedListTarget[U]) replace(oldValue, newValue U) error {
	t.src.Remove(oldValue)
	t.src.Add(newValue)
	return nil
}

func (t sortedListTarget[U]) reset(vs []U) error {
	t.src.ResetTo(vs...)
	return nil
}

// setTarget maintains a sorted set over a multiset of upstream occurrences: an element enters the
// set with its first occurrence and leaves it with its last one.
type setTarget[U any] struct {
	byValue[U]
	src    *source.SortedSet[U]
	counts snapshot.SortedMultiset[U]
}

func newSetTarget[U any](src *source.SortedSet[U], cmp snapshot.CompareFunc[U]) *setTarget[U] {
	return &setTarget[U]{src: src, counts: snapshot.NewSortedMultiset(cmp)}
}

func (t *setTarget[U]) add(vs []U) error {
	added := []U{}
	for _, v := range vs {
		var n int
		if t.counts, n = t.counts.Add(v); n == 1 {
			added = append(added, v)
		}
	}
	t.src.AddRange(added...)
	return nil
}

func (t *setTarget[U]) remove(vs []U) error {
	removed := []U{}
	for _, v := range vs {
		var n int
		if t.counts, n = t.counts.Remove(v); n < 0 {
			return inconsistent("removing untracked element %v", v)
		} else if n == 0 {
			removed = append(removed, v)
		}
	}
	t.src.RemoveRange(removed...)
	return nil
}

func (t *setTarget[U]) replace(oldValue, newValue U) error {
	counts, left := t.counts.Remove(oldValue)
	if left < 0 {
		return inconsistent("replacing untracked element %v", oldValue)
	}
	counts, n := counts.Add(newValue)
	t.counts = counts

	switch {
	case left == 0 && n == 1:
		t.src.Replace(oldValue, newValue)
	case left == 0:
		t.src.Remove(oldValue)
	case n == 1:
		t.src.Add(newValue)
	}
	return nil
}

func (t *setTarget[U]) reset(vs []U) error {
	counts := snapshot.NewSortedMultiset(t.src.Current().Comparer())
	for _, v := range vs {
		counts, _ = counts.Add(v)
	}
	t.counts = counts
	t.src.ResetTo(counts.Set().Items()...)
	return nil
}

// dictionaryTarget maintains a dictionary keyed by the upstream keys.
type dictionaryTarget[K comparable, V any] struct {
	byValue[snapshot.KeyValue[K, V]]
	src *source.Dictionary[K, V]
}

func (t dictionaryTarget[K, V]) add(vs []snapshot.KeyValue[K, V]) error {
	return t.src.AddRange(vs...)
}

func (t dictionaryTarget[K, V]) remove(vs []snapshot.KeyValue[K, V]) error {
	keys := make([]K, len(vs))
	for i, kv := range vs {
		keys[i] = kv.Key
	}
	t.src.RemoveRange(keys...)
	return nil
}

func (t dictionaryTarget[K, V]) replace(_, newValue snapshot.KeyValue[K, V]) error {
	t.src.SetItem(newValue.Key, newValue.Value)
	return nil
}

func (t dictionaryTarget[K, V]) reset(vs []snapshot.KeyValue[K, V]) error {
	t.src.ResetTo(vs...)
	return nil
}
