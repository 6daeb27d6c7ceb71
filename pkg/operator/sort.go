package operator

import (
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/snapshot"
	"github.com/l7mp/rxcollections/pkg/source"
	"github.com/l7mp/rxcollections/pkg/stream"
)

// Sort maintains the upstream items in a list sorted by cmp. Items are inserted one at a time at
// their sorted position, after the items they compare equal to. A replaced item is removed and
// re-inserted; an upstream Reset yields a single Reset of the sorted items.
func Sort[T any, N Notification[T, N]](upstream stream.Observable[N], cmp snapshot.CompareFunc[T],
	opts ...source.Option) stream.Observable[notification.SortedList[T]] {
	cfg := source.NewConfig("sort", opts...)
	return derive("sort", cfg, upstream, func() (sink[notification.SortedList[T]], func(notification.Change[T]) error) {
		out := source.NewSortedList(cmp, cfg.Options())
		p := &projection[T, T]{sel: identity[T], target: sortedListTarget[T]{src: out}}
		return out, p.apply
	})
}

// SortSet maintains the distinct upstream items in a set ordered by cmp. An item leaves the set
// only when its last upstream occurrence is removed.
func SortSet[T any, N Notification[T, N]](upstream stream.Observable[N], cmp snapshot.CompareFunc[T],
	opts ...source.Option) stream.Observable[notification.SortedSet[T]] {
	return projectSet("sortset", upstream, nil, identity[T], cmp, opts)
}
