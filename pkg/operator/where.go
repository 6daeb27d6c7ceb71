package operator

import (
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/snapshot"
	"github.com/l7mp/rxcollections/pkg/source"
	"github.com/l7mp/rxcollections/pkg/stream"
)

// Where keeps the upstream items satisfying pred in a list. Index-aware upstreams are maintained
// positionally: an item lands after every passing item that precedes it upstream.
func Where[T any, N Notification[T, N]](upstream stream.Observable[N], pred func(T) bool,
	opts ...source.Option) stream.Observable[notification.List[T]] {
	return projectList("where", upstream, pred, identity[T], opts)
}

// Select maps every upstream item with sel into a list.
func Select[T, U any, N Notification[T, N]](upstream stream.Observable[N], sel func(T) U,
	opts ...source.Option) stream.Observable[notification.List[U]] {
	return projectList("select", upstream, nil, sel, opts)
}

func projectList[T, U any, N Notification[T, N]](op string, upstream stream.Observable[N], pred func(T) bool,
	sel func(T) U, opts []source.Option) stream.Observable[notification.List[U]] {
	cfg := source.NewConfig(op, opts...)
	return derive(op, cfg, upstream, func() (sink[notification.List[U]], func(notification.Change[T]) error) {
		out := source.NewList[U](cfg.Options())
		p := &projection[T, U]{pred: pred, sel: sel, target: listTarget[U]{src: out}}
		return out, p.apply
	})
}

// WhereDictionary keeps the entries whose value satisfies pred.
func WhereDictionary[K comparable, V any](upstream stream.Observable[notification.Dictionary[K, V]],
	pred func(V) bool, opts ...source.Option) stream.Observable[notification.Dictionary[K, V]] {
	return projectDictionary("where", upstream, pred, identity[V], opts)
}

// SelectDictionary maps every value with sel, keeping the keys.
func SelectDictionary[K comparable, V, W any](upstream stream.Observable[notification.Dictionary[K, V]],
	sel func(V) W, opts ...source.Option) stream.Observable[notification.Dictionary[K, W]] {
	return projectDictionary("select", upstream, nil, sel, opts)
}

func projectDictionary[K comparable, V, W any](op string, upstream stream.Observable[notification.Dictionary[K, V]],
	pred func(V) bool, sel func(V) W, opts []source.Option) stream.Observable[notification.Dictionary[K, W]] {
	cfg := source.NewConfig(op, opts...)

	var keep func(snapshot.KeyValue[K, V]) bool
	if pred != nil {
		keep = func(kv snapshot.KeyValue[K, V]) bool { return pred(kv.Value) }
	}
	mapValue := func(kv snapshot.KeyValue[K, V]) snapshot.KeyValue[K, W] {
		return snapshot.KeyValue[K, W]{Key: kv.Key, Value: sel(kv.Value)}
	}

	return derive(op, cfg, upstream, func() (sink[notification.Dictionary[K, W]], func(notification.Change[snapshot.KeyValue[K, V]]) error) {
		out := source.NewDictionary[K, W](cfg.Options())
		p := &projection[snapshot.KeyValue[K, V], snapshot.KeyValue[K, W]]{
			pred:   keep,
			sel:    mapValue,
			target: dictionaryTarget[K, W]{src: out},
		}
		return out, p.apply
	})
}

// WhereSortedSet keeps the upstream items satisfying pred in a set ordered by cmp.
func WhereSortedSet[T any, N Notification[T, N]](upstream stream.Observable[N], pred func(T) bool,
	cmp snapshot.CompareFunc[T], opts ...source.Option) stream.Observable[notification.SortedSet[T]] {
	return projectSet("where", upstream, pred, identity[T], cmp, opts)
}

// SelectSortedSet maps every upstream item with sel into a set ordered by cmp. Items mapped to
// the same element are counted: the element leaves the set with its last upstream source.
func SelectSortedSet[T, U any, N Notification[T, N]](upstream stream.Observable[N], sel func(T) U,
	cmp snapshot.CompareFunc[U], opts ...source.Option) stream.Observable[notification.SortedSet[U]] {
	return projectSet("select", upstream, nil, sel, cmp, opts)
}

func projectSet[T, U any, N Notification[T, N]](op string, upstream stream.Observable[N], pred func(T) bool,
	sel func(T) U, cmp snapshot.CompareFunc[U], opts []source.Option) stream.Observable[notification.SortedSet[U]] {
	cfg := source.NewConfig(op, opts...)
	return derive(op, cfg, upstream, func() (sink[notification.SortedSet[U]], func(notification.Change[T]) error) {
		out := source.NewSortedSet(cmp, cfg.Options())
		p := &projection[T, U]{pred: pred, sel: sel, target: newSetTarget(out, cmp)}
		return out, p.apply
	})
}
